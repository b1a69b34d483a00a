package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/grillshine/grillshine/cmd/mainconfig"
	"github.com/grillshine/grillshine/internal/admin"
	"github.com/grillshine/grillshine/internal/api/router"
	appconfig "github.com/grillshine/grillshine/internal/config"
	"github.com/grillshine/grillshine/internal/notify"
	"github.com/grillshine/grillshine/internal/observability/metrics"
	"github.com/grillshine/grillshine/internal/quotes"
	"github.com/grillshine/grillshine/internal/uploads"
	appmigrations "github.com/grillshine/grillshine/migrations"
	"github.com/grillshine/grillshine/pkg/logging"
)

func main() {
	// A missing .env file is fine; production config comes from the environment.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting grillshine API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Repository: Postgres when configured, in-memory otherwise (local dev).
	var repo quotes.Repository
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			logger.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		if err := runMigrations(db); err != nil {
			logger.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		repo = quotes.NewPostgresRepository(db)
	} else {
		logger.Warn("DATABASE_URL not set, submissions held in memory only")
		repo = quotes.NewInMemoryRepository()
	}

	// Attachment store: S3 when a bucket is configured, local disk otherwise.
	var store uploads.Store
	var uploadsDir string
	if cfg.S3Bucket != "" {
		awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		store = uploads.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.PublicBaseURL, logger)
	} else {
		diskStore, err := uploads.NewDiskStore(cfg.UploadDir, "/uploads", logger)
		if err != nil {
			logger.Error("failed to init upload dir", "error", err)
			os.Exit(1)
		}
		store = diskStore
		uploadsDir = diskStore.Dir()
	}

	// Email: SendGrid, SES, or the logging stub.
	var sender notify.EmailSender
	switch {
	case !cfg.EmailEnabled:
		logger.Info("outbound email disabled, using stub sender")
		sender = notify.NewStubEmailSender(logger)
	case cfg.SendGridAPIKey != "":
		sender = notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger)
	case cfg.SESEnabled:
		awsCfg, err := mainconfig.LoadAWSConfig(context.Background(), cfg)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		sender = notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.EmailFrom,
			FromName:  cfg.EmailFromName,
		}, logger)
	default:
		logger.Info("no email transport configured, using stub sender")
		sender = notify.NewStubEmailSender(logger)
	}
	notifier := notify.NewService(sender, cfg.AdminEmail, cfg.EmailFromName, logger)

	// Admin auth + sessions.
	creds, err := admin.NewCredentials(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminPasswordHash)
	if err != nil {
		logger.Error("admin credentials misconfigured", "error", err)
		os.Exit(1)
	}
	var sessions admin.SessionStore
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		sessions = admin.NewRedisSessionStore(redis.NewClient(opts))
	} else {
		sessions = admin.NewMemorySessionStore()
	}

	intakeMetrics := metrics.NewIntakeMetrics(nil)

	intakeHandler := quotes.NewHandler(quotes.HandlerConfig{
		Repo:           repo,
		Store:          store,
		Notifier:       notifier,
		Metrics:        intakeMetrics,
		Logger:         logger,
		MaxAttachments: cfg.MaxAttachments,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Repo:          repo,
		Sessions:      sessions,
		Credentials:   creds,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.Env == "production",
		Logger:        logger,
	})

	r := router.New(&router.Config{
		Logger:         logger,
		IntakeHandler:  intakeHandler,
		AdminHandler:   adminHandler,
		Sessions:       sessions,
		APIAuthSecret:  cfg.APIAuthSecret,
		MetricsHandler: promhttp.Handler(),
		StaticDir:      cfg.StaticDir,
		UploadsDir:     uploadsDir,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// runMigrations applies the embedded migrations in order.
func runMigrations(db *sql.DB) error {
	dbDriver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return err
	}
	srcDriver, err := iofs.New(appmigrations.FS, ".")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", srcDriver, "postgres", dbDriver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}
