package uploads

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/grillshine/grillshine/pkg/logging"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store writes uploads to an S3 bucket under an "uploads/" prefix.
type S3Store struct {
	client        S3API
	bucket        string
	publicBaseURL string
	logger        *logging.Logger
}

// NewS3Store creates an S3-backed store. publicBaseURL overrides the default
// virtual-hosted bucket URL, e.g. a CloudFront distribution.
func NewS3Store(client S3API, bucket, publicBaseURL string, logger *logging.Logger) *S3Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &S3Store{
		client:        client,
		bucket:        bucket,
		publicBaseURL: publicBaseURL,
		logger:        logger,
	}
}

// Save uploads the file bytes to the bucket.
func (s *S3Store) Save(ctx context.Context, originalName string, r io.Reader) (*SavedFile, error) {
	key := "uploads/" + objectName(originalName, time.Now())

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(originalName)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("uploads: s3 put %s: %w", key, err)
	}

	s.logger.Debug("attachment written to s3", "key", key, "original", originalName)

	url := joinURL(s.publicBaseURL, key)
	if s.publicBaseURL == "" {
		url = fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
	}
	return &SavedFile{Name: key, URL: url}, nil
}

var _ Store = (*S3Store)(nil)
