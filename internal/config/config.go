package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string

	DatabaseURL string
	RedisURL    string
	CacheTTL    time.Duration

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	AutosaveWindow time.Duration
	SignInPath     string
	SessionIdle    time.Duration

	ChromePath string
	ExportDir  string
	S3         S3Config
}

// S3Config describes an S3 compatible bucket (AWS, R2, MinIO) that receives
// exported PDFs. Bucket empty means no bucket archive.
type S3Config struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

func (c S3Config) Enabled() bool { return c.Bucket != "" }

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so tests do not have to
// touch the real environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:        get("PORT", "3000"),
		LogLevel:    get("LOG_LEVEL", "info"),
		DatabaseURL: get("DATABASE_URL", ""),
		RedisURL:    get("REDIS_URL", ""),
		JWTSecret:   get("SUPABASE_JWT_SECRET", ""),
		JWTIssuer:   get("SUPABASE_JWT_ISSUER", ""),
		JWTAudience: get("SUPABASE_JWT_AUDIENCE", ""),
		SignInPath:  get("SIGN_IN_PATH", "/sign-in"),
		ChromePath:  get("CHROME_PATH", ""),
		ExportDir:   get("EXPORT_DIR", ""),
		S3: S3Config{
			Bucket:    get("EXPORT_S3_BUCKET", ""),
			Endpoint:  get("EXPORT_S3_ENDPOINT", ""),
			Region:    get("EXPORT_S3_REGION", "auto"),
			AccessKey: get("EXPORT_S3_ACCESS_KEY", ""),
			SecretKey: get("EXPORT_S3_SECRET_KEY", ""),
		},
	}

	var err error
	if cfg.AutosaveWindow, err = time.ParseDuration(get("AUTOSAVE_WINDOW", "1s")); err != nil {
		return nil, fmt.Errorf("AUTOSAVE_WINDOW: %w", err)
	}
	if cfg.AutosaveWindow <= 0 {
		return nil, fmt.Errorf("AUTOSAVE_WINDOW must be positive, got %s", cfg.AutosaveWindow)
	}
	if cfg.SessionIdle, err = time.ParseDuration(get("SESSION_IDLE_TIMEOUT", "30m")); err != nil {
		return nil, fmt.Errorf("SESSION_IDLE_TIMEOUT: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(get("CACHE_TTL", "10m")); err != nil {
		return nil, fmt.Errorf("CACHE_TTL: %w", err)
	}
	if cfg.S3.Enabled() && (cfg.S3.AccessKey == "" || cfg.S3.SecretKey == "") {
		return nil, fmt.Errorf("EXPORT_S3_BUCKET is set but EXPORT_S3_ACCESS_KEY/EXPORT_S3_SECRET_KEY are empty")
	}
	return cfg, nil
}
