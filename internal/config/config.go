package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable via STORE_BACKEND.
const (
	StoreBackendMemory    = "memory"
	StoreBackendFirestore = "firestore"
	StoreBackendPostgres  = "postgres"
)

// Object storage providers selectable via STORAGE_PROVIDER.
const (
	StorageProviderLocal = "local"
	StorageProviderGCS   = "gcs"
	StorageProviderS3    = "s3"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Store     StoreConfig
	Firestore FirestoreConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// StoreConfig selects the provider store backend.
type StoreConfig struct {
	Backend string
}

// FirestoreConfig holds document store connection values.
type FirestoreConfig struct {
	ProjectID  string
	Collection string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis
// and with it the apply-endpoint rate limiter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig selects and configures the object storage adapter.
type StorageConfig struct {
	Provider string
	Local    LocalStorageConfig
	GCS      GCSConfig
	S3       S3Config
}

// LocalStorageConfig configures the on-disk adapter.
type LocalStorageConfig struct {
	Dir        string
	PublicPath string
}

// GCSConfig configures the Google Cloud Storage adapter.
type GCSConfig struct {
	Bucket string
}

// S3Config configures the AWS S3 adapter.
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// AuthConfig defines the admin session parameters. AdminPasswordHash is a
// bcrypt hash; when empty, admin login is disabled and moderation routes
// are unreachable.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	AdminPasswordHash     string
}

// RateLimitConfig bounds public application submissions per client IP.
type RateLimitConfig struct {
	MaxRequests   int
	WindowSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "provider-directory"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", StoreBackendMemory),
		},
		Firestore: FirestoreConfig{
			ProjectID:  os.Getenv("FIRESTORE_PROJECT_ID"),
			Collection: getEnv("FIRESTORE_COLLECTION", "providers"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Storage: StorageConfig{
			Provider: getEnv("STORAGE_PROVIDER", StorageProviderLocal),
			Local: LocalStorageConfig{
				Dir:        getEnv("STORAGE_LOCAL_DIR", "public/uploads"),
				PublicPath: getEnv("STORAGE_LOCAL_PUBLIC_PATH", "/uploads"),
			},
			GCS: GCSConfig{
				Bucket: os.Getenv("STORAGE_GCS_BUCKET"),
			},
			S3: S3Config{
				Bucket:          os.Getenv("STORAGE_S3_BUCKET"),
				Region:          getEnv("STORAGE_S3_REGION", "us-east-1"),
				AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			},
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			AdminPasswordHash:     os.Getenv("AUTH_ADMIN_PASSWORD_HASH"),
		},
		RateLimit: RateLimitConfig{
			MaxRequests:   getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 10),
			WindowSeconds: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Window returns the rate limit window duration.
func (r RateLimitConfig) Window() time.Duration {
	if r.WindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(r.WindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
