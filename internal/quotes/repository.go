package quotes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Repository stores quote submissions.
type Repository interface {
	// Insert appends one row and returns it with ID and CreatedAt assigned.
	Insert(ctx context.Context, req *CreateSubmissionRequest) (*Submission, error)
	// List returns submissions newest first. A limit <= 0 applies the
	// default cap of 500 rows.
	List(ctx context.Context, limit int) ([]*Submission, error)
	// DeleteByID removes one row. Deleting an absent id is not an error.
	DeleteByID(ctx context.Context, id int64) error
}

// InMemoryRepository keeps submissions in memory. Used in tests and for
// running the server without a database.
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	rows   map[int64]*Submission
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1, rows: make(map[int64]*Submission)}
}

// Insert appends one submission.
func (r *InMemoryRepository) Insert(ctx context.Context, req *CreateSubmissionRequest) (*Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	attachments := req.Attachments
	if attachments == nil {
		attachments = []Attachment{}
	}
	sub := &Submission{
		ID:          r.nextID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Details:     req.Details,
		Attachments: attachments,
		ClientIP:    req.ClientIP,
		UserAgent:   req.UserAgent,
		CreatedAt:   time.Now().UTC(),
	}
	r.rows[sub.ID] = sub
	r.nextID++
	return sub, nil
}

// List returns submissions ordered by descending id.
func (r *InMemoryRepository) List(ctx context.Context, limit int) ([]*Submission, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Submission, 0, len(r.rows))
	for _, sub := range r.rows {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteByID removes one submission if present.
func (r *InMemoryRepository) DeleteByID(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

var _ Repository = (*InMemoryRepository)(nil)
