package quotes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// defaultListLimit caps unbounded dashboard listings.
const defaultListLimit = 500

// PostgresRepository stores submissions in the relational database.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository initializes a repo backed by *sql.DB.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	if db == nil {
		panic("quotes: db required")
	}
	return &PostgresRepository{db: db}
}

// Insert appends a new row.
func (r *PostgresRepository) Insert(ctx context.Context, req *CreateSubmissionRequest) (*Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	attachments := req.Attachments
	if attachments == nil {
		attachments = []Attachment{}
	}
	attachmentsJSON, err := json.Marshal(attachments)
	if err != nil {
		return nil, fmt.Errorf("quotes: marshal attachments: %w", err)
	}

	sub := &Submission{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Details:     req.Details,
		Attachments: attachments,
		ClientIP:    req.ClientIP,
		UserAgent:   req.UserAgent,
	}
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO quotes (name, email, phone, details, attachments, client_ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		req.Name, req.Email, req.Phone, req.Details, attachmentsJSON, req.ClientIP, req.UserAgent,
	).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("quotes: insert failed: %w", err)
	}
	return sub, nil
}

// List returns submissions ordered by descending id. A limit <= 0 applies the
// default cap.
func (r *PostgresRepository) List(ctx context.Context, limit int) ([]*Submission, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, phone, details, attachments, client_ip, user_agent, created_at
		FROM quotes ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("quotes: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Submission{}
	for rows.Next() {
		var sub Submission
		var attachmentsJSON []byte
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Phone, &sub.Details,
			&attachmentsJSON, &sub.ClientIP, &sub.UserAgent, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("quotes: scan failed: %w", err)
		}
		sub.Attachments = decodeAttachments(attachmentsJSON)
		out = append(out, &sub)
	}
	return out, rows.Err()
}

// DeleteByID removes one row if present.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("quotes: delete failed: %w", err)
	}
	return nil
}

// decodeAttachments tolerates null and malformed column values; rows written
// before the JSONB migration backfill may carry either.
func decodeAttachments(raw []byte) []Attachment {
	if len(raw) == 0 {
		return []Attachment{}
	}
	var attachments []Attachment
	if err := json.Unmarshal(raw, &attachments); err != nil || attachments == nil {
		return []Attachment{}
	}
	return attachments
}

var _ Repository = (*PostgresRepository)(nil)
