package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	PublicBaseURL string

	DatabaseURL string

	StaticDir      string
	UploadDir      string
	MaxAttachments int
	MaxUploadBytes int64

	// S3-backed attachment storage; disk storage is used when Bucket is empty.
	S3Bucket            string
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Outbound email. EmailEnabled=false forces the logging stub regardless of
	// provider credentials.
	EmailEnabled      bool
	SendGridAPIKey    string
	SESEnabled        bool
	EmailFrom         string
	EmailFromName     string
	AdminEmail        string

	// Admin dashboard auth.
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string
	SessionTTL        time.Duration

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// HMAC secret for the /api bearer-token endpoints. Empty keeps them closed.
	APIAuthSecret string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		StaticDir:      getEnv("STATIC_DIR", "web/static"),
		UploadDir:      getEnv("UPLOAD_DIR", "data/uploads"),
		MaxAttachments: getEnvAsInt("MAX_ATTACHMENTS", 8),
		MaxUploadBytes: getEnvAsInt64("MAX_UPLOAD_BYTES", 20<<20),

		S3Bucket:            getEnv("S3_BUCKET", ""),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		EmailEnabled:   getEnvAsBool("EMAIL_ENABLED", true),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		SESEnabled:     getEnvAsBool("SES_ENABLED", false),
		EmailFrom:      getEnv("EMAIL_FROM", "no-reply@grillshine.local"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "GrillShine"),
		AdminEmail:     getEnv("ADMIN_EMAIL", ""),

		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		SessionTTL:        getEnvAsDuration("SESSION_TTL", 12*time.Hour),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		APIAuthSecret: getEnv("API_AUTH_SECRET", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
