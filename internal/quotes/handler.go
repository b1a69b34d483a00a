package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/grillshine/grillshine/internal/observability/metrics"
	"github.com/grillshine/grillshine/internal/uploads"
	"github.com/grillshine/grillshine/pkg/logging"
)

// fileFields are the multipart field names the quote form may use for uploads.
var fileFields = []string{"attachments", "images", "files"}

// multipartMemoryLimit is how much of a multipart body is held in memory
// before spilling to temp files.
const multipartMemoryLimit = 4 << 20

// Notifier dispatches best-effort notifications for a stored submission.
type Notifier interface {
	SubmissionReceived(ctx context.Context, sub *Submission) error
}

// HandlerConfig wires the intake handler's collaborators.
type HandlerConfig struct {
	Repo           Repository
	Store          uploads.Store
	Notifier       Notifier
	Metrics        *metrics.IntakeMetrics
	Logger         *logging.Logger
	MaxAttachments int
	MaxUploadBytes int64
	ThankYouPath   string
}

// Handler handles HTTP requests for quote submissions.
type Handler struct {
	repo           Repository
	store          uploads.Store
	notifier       Notifier
	metrics        *metrics.IntakeMetrics
	logger         *logging.Logger
	maxAttachments int
	maxUploadBytes int64
	thankYouPath   string
}

// NewHandler creates a new intake handler.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.MaxAttachments <= 0 {
		cfg.MaxAttachments = 8
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20 << 20
	}
	if cfg.ThankYouPath == "" {
		cfg.ThankYouPath = "/thank-you.html"
	}
	return &Handler{
		repo:           cfg.Repo,
		store:          cfg.Store,
		notifier:       cfg.Notifier,
		metrics:        cfg.Metrics,
		logger:         cfg.Logger,
		maxAttachments: cfg.MaxAttachments,
		maxUploadBytes: cfg.MaxUploadBytes,
		thankYouPath:   cfg.ThankYouPath,
	}
}

// Submit handles POST /quote. Validation failures end the request with a 400,
// a failed insert with a 500; attachment and notification failures are logged
// and absorbed.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := h.parseForm(w, r); err != nil {
		h.metrics.ObserveSubmission("bad_form")
		http.Error(w, "could not parse form data", http.StatusBadRequest)
		return
	}

	req := &CreateSubmissionRequest{
		Name:      r.FormValue("name"),
		Email:     r.FormValue("email"),
		Phone:     r.FormValue("phone"),
		Details:   r.FormValue("details"),
		ClientIP:  clientIP(r),
		UserAgent: r.UserAgent(),
	}
	if err := req.Validate(); err != nil {
		h.metrics.ObserveSubmission("rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	req.Attachments = h.saveAttachments(r)

	sub, err := h.repo.Insert(r.Context(), req)
	if err != nil {
		h.logger.Error("failed to store submission", "error", err, "email", req.Email)
		h.metrics.ObserveSubmission("storage_error")
		http.Error(w, "something went wrong, please try again", http.StatusInternalServerError)
		return
	}

	h.logger.Info("quote submission stored",
		"id", sub.ID,
		"name", sub.Name,
		"attachments", len(sub.Attachments),
	)

	if h.notifier != nil {
		if err := h.notifier.SubmissionReceived(r.Context(), sub); err != nil {
			h.logger.Warn("submission notification failed", "error", err, "id", sub.ID)
			h.metrics.ObserveNotificationFailure()
		}
	}

	h.metrics.ObserveSubmission("stored")
	h.metrics.ObserveIntakeLatency(time.Since(start).Seconds())

	// 303 so back-navigation never re-posts the form.
	http.Redirect(w, r, h.thankYouPath, http.StatusSeeOther)
}

// ListJSON handles GET /api/quotes.
func (h *Handler) ListJSON(w http.ResponseWriter, r *http.Request) {
	subs, err := h.repo.List(r.Context(), 0)
	if err != nil {
		h.logger.Error("failed to list submissions", "error", err)
		http.Error(w, "failed to list submissions", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(subs)
}

// ExportCSV handles GET /admin/export and GET /api/quotes.csv.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	subs, err := h.repo.List(r.Context(), 0)
	if err != nil {
		h.logger.Error("failed to list submissions for export", "error", err)
		http.Error(w, "failed to export submissions", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("quotes-%s.csv", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := WriteCSV(w, subs); err != nil {
		h.logger.Error("csv export write failed", "error", err)
	}
}

func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	// MaxBytesReader bounds the whole body; ParseMultipartForm alone only
	// sets the in-memory spill threshold.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/") {
		return r.ParseMultipartForm(multipartMemoryLimit)
	}
	return r.ParseForm()
}

// saveAttachments stores uploaded files best-effort: disallowed extensions and
// per-file failures drop that file only.
func (h *Handler) saveAttachments(r *http.Request) []Attachment {
	saved := []Attachment{}
	if h.store == nil || r.MultipartForm == nil {
		return saved
	}

	for _, field := range fileFields {
		for _, fh := range r.MultipartForm.File[field] {
			if len(saved) >= h.maxAttachments {
				return saved
			}
			if fh.Filename == "" {
				continue
			}
			if !uploads.AllowedExt(fh.Filename) {
				h.logger.Debug("skipping upload with disallowed extension", "filename", fh.Filename)
				continue
			}

			f, err := fh.Open()
			if err != nil {
				h.logger.Warn("failed to open uploaded file", "error", err, "filename", fh.Filename)
				h.metrics.ObserveAttachment("open_error")
				continue
			}
			file, err := h.store.Save(r.Context(), fh.Filename, f)
			f.Close()
			if err != nil {
				h.logger.Warn("failed to save attachment", "error", err, "filename", fh.Filename)
				h.metrics.ObserveAttachment("save_error")
				continue
			}

			h.metrics.ObserveAttachment("saved")
			saved = append(saved, Attachment{Filename: fh.Filename, URL: file.URL})
		}
	}
	return saved
}

// clientIP returns the remote address without the port. The RealIP middleware
// has already substituted proxy headers when present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
