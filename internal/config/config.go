package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `env:"HOST"`
	Port               string `env:"PORT" envDefault:"5432"`
	User               string `env:"USER"`
	Password           string `env:"PASSWORD"`
	Name               string `env:"NAME"`
	SSLMode            string `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetimeSec int    `env:"CONN_MAX_LIFETIME_SEC" envDefault:"300"`
}

// SQLiteConfig holds the SQLite database location. ":memory:" is accepted.
type SQLiteConfig struct {
	Path string `env:"PATH" envDefault:"cookbook.db"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI      string        `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string        `env:"DATABASE" envDefault:"test"`
	Timeout  time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// Enabled reports whether uploads should go to object storage instead of disk.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// SMTPConfig holds outgoing mail settings.
type SMTPConfig struct {
	Host     string `env:"HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"PORT" envDefault:"587"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

// RateLimitConfig bounds requests per client in a fixed window.
type RateLimitConfig struct {
	Max    int           `env:"MAX" envDefault:"60"`
	Window time.Duration `env:"WINDOW" envDefault:"1m"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string `env:"APP_HOST" envDefault:"localhost:3000"`
	Port      string `env:"PORT" envDefault:"3000"`
	ChatPort  string `env:"CHAT_PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	Timezone  string `env:"TIMEZONE" envDefault:"UTC"`
	UserStore string `env:"USER_STORE" envDefault:"sqlite"`
	StaticDir string `env:"STATIC_DIR" envDefault:"public"`
	UploadDir string `env:"UPLOAD_DIR" envDefault:"uploads"`
	CronSpec  string `env:"CRON_SPEC" envDefault:"* * * * *"`

	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	Database  DatabaseConfig  `envPrefix:"DB_"`
	SQLite    SQLiteConfig    `envPrefix:"SQLITE_"`
	Mongo     MongoConfig     `envPrefix:"MONGO_"`
	MinIO     MinIOConfig     `envPrefix:"MINIO_"`
	SMTP      SMTPConfig      `envPrefix:"SMTP_"`
}

// Supported values for USER_STORE.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	switch cfg.UserStore {
	case StoreSQLite, StorePostgres, StoreMongo:
	default:
		return nil, fmt.Errorf("unsupported USER_STORE %q", cfg.UserStore)
	}
	return cfg, nil
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
