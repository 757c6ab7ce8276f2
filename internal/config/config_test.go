package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

// Test defaults when no environment is set
func (s *ConfigTestSuite) TestLoad_Defaults() {
	cfg := Load()

	s.Equal("http://localhost:8000/api", cfg.Client.BaseURL)
	s.Equal(60*time.Second, cfg.Client.Timeout)
	s.Equal("8000", cfg.Server.Port)
	s.Equal(DriverSQLite, cfg.Database.Driver)
	s.Equal(int64(10*1024*1024), cfg.Storage.MaxUploadSize)
	s.Equal([]string{"*"}, cfg.Server.CORSAllowOrigins)
	s.True(cfg.IsDevelopment())
	s.NoError(cfg.Validate())
}

// Test environment overrides, including malformed values falling back
func (s *ConfigTestSuite) TestLoad_EnvOverrides() {
	s.T().Setenv("RECEIPTS_API_URL", "http://api.example.com/api/")
	s.T().Setenv("RECEIPTS_API_TIMEOUT", "5s")
	s.T().Setenv("RECEIPTS_API_RATE_LIMIT", "2.5")
	s.T().Setenv("DB_MAX_CONNECTIONS", "not-a-number")
	s.T().Setenv("AUTO_MIGRATE", "false")
	s.T().Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")
	s.T().Setenv("APP_ENV", "production")

	cfg := Load()

	s.Equal("http://api.example.com/api", cfg.Client.BaseURL)
	s.Equal(5*time.Second, cfg.Client.Timeout)
	s.Equal(2.5, cfg.Client.RateLimitPerSecond)
	s.Equal(25, cfg.Database.MaxConnections)
	s.False(cfg.Database.AutoMigrate)
	s.Equal([]string{"http://a.test", "http://b.test"}, cfg.Server.CORSAllowOrigins)
	s.True(cfg.IsProduction())
}

// Test DSN and migration URLs per driver
func (s *ConfigTestSuite) TestDatabaseURLs() {
	sqlite := DatabaseConfig{Driver: DriverSQLite, Path: "data/receipts.db"}
	s.Equal("data/receipts.db", sqlite.DSN())
	s.Equal("sqlite3://data/receipts.db", sqlite.MigrationURL())

	pg := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", Name: "r", SSLMode: "disable"}
	s.Equal("host=db port=5432 user=u password=p dbname=r sslmode=disable", pg.DSN())
	s.Equal("postgres://u:p@db:5432/r?sslmode=disable", pg.MigrationURL())
}

// Test that Validate rejects unsupported settings
func (s *ConfigTestSuite) TestValidate() {
	cfg := Load()
	cfg.Database.Driver = "mysql"
	s.Error(cfg.Validate())

	cfg = Load()
	cfg.Extraction.Mode = "gpt"
	s.Error(cfg.Validate())

	cfg = Load()
	cfg.Storage.MaxUploadSize = 0
	s.Error(cfg.Validate())
}

func (s *ConfigTestSuite) TestServerAddress() {
	cfg := ServerConfig{Host: "0.0.0.0", Port: "9000"}
	s.Equal("0.0.0.0:9000", cfg.Address())
}
