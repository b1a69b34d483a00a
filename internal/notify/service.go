package notify

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/grillshine/grillshine/internal/quotes"
	"github.com/grillshine/grillshine/pkg/logging"
)

// Service sends the customer receipt and admin notification for a stored
// submission. Failures are logged and reported to the caller, never fatal.
type Service struct {
	email        EmailSender
	adminEmail   string
	businessName string
	logger       *logging.Logger
}

// NewService creates a notification service. adminEmail may be empty, which
// disables admin notifications.
func NewService(email EmailSender, adminEmail, businessName string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if businessName == "" {
		businessName = "GrillShine"
	}
	return &Service{
		email:        email,
		adminEmail:   adminEmail,
		businessName: businessName,
		logger:       logger,
	}
}

// SubmissionReceived sends the customer receipt and the admin notification.
// Either failing does not stop the other.
func (s *Service) SubmissionReceived(ctx context.Context, sub *quotes.Submission) error {
	if s == nil || s.email == nil {
		return nil
	}

	var errs []error
	if err := s.sendReceipt(ctx, sub); err != nil {
		s.logger.Warn("customer receipt failed", "error", err, "id", sub.ID)
		errs = append(errs, err)
	}
	if err := s.notifyAdmin(ctx, sub); err != nil {
		s.logger.Warn("admin notification failed", "error", err, "id", sub.ID)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Service) sendReceipt(ctx context.Context, sub *quotes.Submission) error {
	body := fmt.Sprintf(`Hi %s,

Thanks for requesting a quote from %s! We received your request and will get
back to you shortly.

What you sent us:
%s

- The %s team`, sub.Name, s.businessName, submissionSummary(sub), s.businessName)

	html := fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2>Thanks for your request, %s!</h2>
<p>We received your quote request and will get back to you shortly.</p>
<pre style="background: #f3f4f6; padding: 12px; border-radius: 8px;">%s</pre>
<p style="color: #6b7280; font-size: 12px;">- The %s team</p>
</div>`, template.HTMLEscapeString(sub.Name), template.HTMLEscapeString(submissionSummary(sub)), s.businessName)

	return s.email.Send(ctx, EmailMessage{
		To:      sub.Email,
		ToName:  sub.Name,
		Subject: fmt.Sprintf("%s - we got your quote request", s.businessName),
		Body:    body,
		HTML:    html,
	})
}

// notifyAdmin no-ops when no admin recipient is configured.
func (s *Service) notifyAdmin(ctx context.Context, sub *quotes.Submission) error {
	if s.adminEmail == "" {
		return nil
	}

	body := fmt.Sprintf(`New quote request #%d

%s

Attachments: %d`, sub.ID, submissionSummary(sub), len(sub.Attachments))

	return s.email.Send(ctx, EmailMessage{
		To:      s.adminEmail,
		Subject: fmt.Sprintf("New quote request from %s", sub.Name),
		Body:    body,
		ReplyTo: sub.Email,
	})
}

func submissionSummary(sub *quotes.Submission) string {
	lines := []string{
		"Name: " + sub.Name,
		"Email: " + sub.Email,
	}
	if sub.Phone != "" {
		lines = append(lines, "Phone: "+sub.Phone)
	}
	if sub.Details != "" {
		lines = append(lines, "Details: "+sub.Details)
	}
	for _, a := range sub.Attachments {
		lines = append(lines, "Photo: "+a.URL)
	}
	return strings.Join(lines, "\n")
}

var _ quotes.Notifier = (*Service)(nil)
