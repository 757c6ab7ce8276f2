package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Client     ClientConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Storage    StorageConfig
	Extraction ExtractionConfig
	Log        LogConfig
}

// ClientConfig configures the API gateway client used by the CLI
type ClientConfig struct {
	BaseURL                 string
	Timeout                 time.Duration
	RateLimitPerSecond      float64
	RateLimitBurst          int
	CircuitBreakerThreshold int
	CircuitBreakerTimeout   time.Duration
	DownloadDir             string
}

type ServerConfig struct {
	Port               string
	Host               string
	Environment        string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowOrigins   []string
	BodyLimit          string
	RateLimitPerSecond int
}

type DatabaseConfig struct {
	Driver          string
	Path            string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	MigrationsPath  string
	SeedsPath       string
	SeedDatabase    bool
}

// StorageConfig configures where uploaded receipt images are kept
type StorageConfig struct {
	UploadDir     string
	MaxUploadSize int64
}

// ExtractionConfig selects the receipt extraction backend
type ExtractionConfig struct {
	Mode string
}

type LogConfig struct {
	Level  string
	Format string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	LogFormatText = "text"
	LogFormatJSON = "json"

	ExtractionModeMock = "mock"
)

func Load() *Config {
	config := &Config{
		Client: ClientConfig{
			BaseURL:                 strings.TrimRight(getEnv("RECEIPTS_API_URL", "http://localhost:8000/api"), "/"),
			Timeout:                 getDurationEnv("RECEIPTS_API_TIMEOUT", 60*time.Second),
			RateLimitPerSecond:      getFloatEnv("RECEIPTS_API_RATE_LIMIT", 10),
			RateLimitBurst:          getIntEnv("RECEIPTS_API_RATE_BURST", 5),
			CircuitBreakerThreshold: getIntEnv("RECEIPTS_API_BREAKER_THRESHOLD", 5),
			CircuitBreakerTimeout:   getDurationEnv("RECEIPTS_API_BREAKER_TIMEOUT", 30*time.Second),
			DownloadDir:             getEnv("RECEIPTS_DOWNLOAD_DIR", "."),
		},
		Server: ServerConfig{
			Port:               getEnv("SERVER_PORT", "8000"),
			Host:               getEnv("SERVER_HOST", "localhost"),
			Environment:        getEnv("APP_ENV", "development"),
			ReadTimeout:        getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:       getDurationEnv("SERVER_WRITE_TIMEOUT", 120*time.Second),
			BodyLimit:          getEnv("SERVER_BODY_LIMIT", "100M"),
			RateLimitPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 20),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverSQLite),
			Path:            getEnv("DB_PATH", "receipts.db"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "receipts_user"),
			Password:        getEnv("DB_PASSWORD", "receipts_password"),
			Name:            getEnv("DB_NAME", "receipts_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			AutoMigrate:     getBoolEnv("AUTO_MIGRATE", true),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "db/migrations"),
			SeedsPath:       getEnv("SEEDS_PATH", "db/seeds"),
			SeedDatabase:    getBoolEnv("SEED_DATABASE", false),
		},
		Storage: StorageConfig{
			UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
			MaxUploadSize: int64(getIntEnv("MAX_UPLOAD_SIZE", 10*1024*1024)),
		},
		Extraction: ExtractionConfig{
			Mode: getEnv("EXTRACTION_MODE", ExtractionModeMock),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", LogFormatText),
		},
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()

	return config
}

// Validate reports configuration combinations the binaries cannot run with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.Database.Driver, DriverSQLite, DriverPostgres)
	}
	if c.Extraction.Mode != ExtractionModeMock {
		return fmt.Errorf("unsupported EXTRACTION_MODE %q", c.Extraction.Mode)
	}
	if c.Storage.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}
	if c.Client.BaseURL == "" {
		return fmt.Errorf("RECEIPTS_API_URL must not be empty")
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// MigrationURL returns the database URL in the form golang-migrate expects
func (c *DatabaseConfig) MigrationURL() string {
	if c.Driver == DriverSQLite {
		return "sqlite3://" + c.Path
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns default
func (c *Config) loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")

	if corsOrigins == "" {
		if c.IsProduction() {
			slog.Warn("CORS_ALLOW_ORIGINS not set in production environment, defaulting to '*'")
		}
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	slog.Debug("CORS allowed origins configured", "origins", origins)
	return origins
}
