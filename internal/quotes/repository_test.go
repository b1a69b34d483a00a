package quotes

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryListAppliesDefaultCap(t *testing.T) {
	repo := NewInMemoryRepository()
	for i := 0; i < defaultListLimit+5; i++ {
		_, err := repo.Insert(context.Background(), &CreateSubmissionRequest{
			Name:  fmt.Sprintf("Customer %d", i),
			Email: "jo@x.com",
		})
		require.NoError(t, err)
	}

	subs, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, subs, defaultListLimit, "limit <= 0 falls back to the default cap")
	assert.Equal(t, int64(defaultListLimit+5), subs[0].ID, "newest first")

	subs, err = repo.List(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, subs, 3)
}
