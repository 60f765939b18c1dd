package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// SQLite
	DataDir string

	// PostgreSQL
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	// Common
	JWTSecret   string
	Environment string
	Address     string
	LogLevel    string

	// Host date settings
	DateFormat      string
	DefaultTimezone string
	ZoneinfoDir     string

	// App settings
	SiteName  string
	PanelHelp string
}

func Load() *Config {
	cfg := &Config{
		DataDir: getEnv("DATA_DIR", "data"),

		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", ""),

		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Address:     getEnv("ADDRESS", ":8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DateFormat:      getEnv("DATE_FORMAT", "dd/MMM/yy h:mm a"),
		DefaultTimezone: getEnv("DEFAULT_TIMEZONE", "Local"),
		ZoneinfoDir:     getEnv("ZONEINFO_DIR", ""),

		SiteName:  getEnv("SITE_NAME", "MyZone"),
		PanelHelp: getEnv("PANEL_HELP", "Dates on this site are shown in the server's timezone. Pick yours and hover any date to see it in **your** time."),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid integer setting, using default")
		return defaultValue
	}

	return intValue
}

// GetDB returns the connection string and whether it points to PostgreSQL.
func (c *Config) GetDB() (string, bool, error) {
	if c.DBHost != "" && c.DBUser != "" && c.DBName != "" {
		pgConn := "host=" + c.DBHost +
			" user=" + c.DBUser +
			" password=" + c.DBPassword +
			" dbname=" + c.DBName +
			" port=" + strconv.Itoa(c.DBPort) +
			" sslmode=disable TimeZone=UTC"
		return pgConn, true, nil
	}

	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return "", false, errors.Wrap(err, "failed to create database directory")
	}
	return filepath.Join(c.DataDir, "myzone.db?_pragma=foreign_keys(1)"), false, nil
}

// Location resolves the host timezone that displayed dates are written in.
func (c *Config) Location() (*time.Location, error) {
	if c.DefaultTimezone == "" || c.DefaultTimezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid DEFAULT_TIMEZONE %q", c.DefaultTimezone)
	}
	return loc, nil
}
