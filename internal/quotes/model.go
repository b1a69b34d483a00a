package quotes

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxClientIPLen  = 64
	maxUserAgentLen = 256
)

// Attachment is a stored upload associated with a submission.
type Attachment struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Submission represents one customer quote request.
type Submission struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Details     string       `json:"details"`
	Attachments []Attachment `json:"attachments"`
	ClientIP    string       `json:"client_ip,omitempty"`
	UserAgent   string       `json:"user_agent,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// CreateSubmissionRequest carries the fields of an incoming quote form.
type CreateSubmissionRequest struct {
	Name        string
	Email       string
	Phone       string
	Details     string
	Attachments []Attachment
	ClientIP    string
	UserAgent   string
}

// Validate trims the form fields and checks the required ones. Request metadata
// is truncated rather than rejected.
func (r *CreateSubmissionRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Details = strings.TrimSpace(r.Details)

	if r.Name == "" {
		return ErrMissingName
	}
	if r.Email == "" {
		return ErrMissingEmail
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return ErrInvalidEmail
	}

	r.ClientIP = truncate(r.ClientIP, maxClientIPLen)
	r.UserAgent = truncate(r.UserAgent, maxUserAgentLen)
	return nil
}

// truncate cuts s to at most maxLen bytes without splitting a rune, so the
// result stays valid UTF-8 for storage.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
