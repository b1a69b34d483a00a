package router

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/grillshine/grillshine/internal/admin"
	"github.com/grillshine/grillshine/internal/quotes"
	"github.com/grillshine/grillshine/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	IntakeHandler  *quotes.Handler
	AdminHandler   *admin.Handler
	Sessions       admin.SessionStore
	APIAuthSecret  string
	MetricsHandler http.Handler

	// StaticDir is served at the site root (index, thank-you page, assets).
	StaticDir string
	// UploadsDir, when set, is served under /uploads (disk-backed attachment
	// store). Left empty for S3-backed storage.
	UploadsDir string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		public.Get("/healthz", healthCheck)
		public.Post("/quote", cfg.IntakeHandler.Submit)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.UploadsDir != "" {
			uploadsFS := http.StripPrefix("/uploads/", http.FileServer(noListingFS{http.Dir(cfg.UploadsDir)}))
			public.Get("/uploads/*", uploadsFS.ServeHTTP)
		}
	})

	// Admin dashboard (session cookie gated)
	r.Get("/admin/login", cfg.AdminHandler.LoginForm)
	r.Post("/admin/login", cfg.AdminHandler.Login)
	r.Group(func(protected chi.Router) {
		protected.Use(admin.RequireSession(cfg.Sessions, cfg.Logger))
		protected.Get("/admin", cfg.AdminHandler.Dashboard)
		protected.Get("/admin/dashboard", cfg.AdminHandler.Dashboard)
		protected.Get("/admin/delete/{id}", cfg.AdminHandler.Delete)
		protected.Get("/admin/export", cfg.IntakeHandler.ExportCSV)
		protected.Get("/admin/logout", cfg.AdminHandler.Logout)
	})

	// Machine API (bearer token gated, closed when no secret is configured)
	r.Route("/api", func(api chi.Router) {
		api.Use(APIToken(cfg.APIAuthSecret))
		api.Get("/quotes", cfg.IntakeHandler.ListJSON)
		api.Get("/quotes.csv", cfg.IntakeHandler.ExportCSV)
	})

	// Everything else is the static marketing site.
	if cfg.StaticDir != "" {
		staticFS := http.FileServer(noListingFS{http.Dir(cfg.StaticDir)})
		r.Handle("/*", staticFS)
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// noListingFS serves files but refuses directory listings. Directories resolve
// only when they carry an index.html, which http.FileServer then serves.
type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		index := strings.TrimSuffix(name, "/") + "/index.html"
		idx, err := n.fs.Open(index)
		if err != nil {
			f.Close()
			return nil, fs.ErrNotExist
		}
		idx.Close()
	}
	return f, nil
}
