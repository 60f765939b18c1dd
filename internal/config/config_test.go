package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATE_FORMAT", "")
	t.Setenv("DEFAULT_TIMEZONE", "")
	t.Setenv("DB_PORT", "not-a-number")

	cfg := Load()
	assert.Equal(t, "dd/MMM/yy h:mm a", cfg.DateFormat)
	assert.Equal(t, "Local", cfg.DefaultTimezone)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, ":8080", cfg.Address)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATE_FORMAT", "yyyy-MM-dd HH:mm")
	t.Setenv("DEFAULT_TIMEZONE", "Europe/Rome")
	t.Setenv("DB_PORT", "6543")

	cfg := Load()
	assert.Equal(t, "yyyy-MM-dd HH:mm", cfg.DateFormat)
	assert.Equal(t, 6543, cfg.DBPort)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Rome", loc.String())
}

func TestLocation(t *testing.T) {
	cfg := &Config{DefaultTimezone: "Local"}
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.DefaultTimezone = "Nonexistent/Zone"
	_, err = cfg.Location()
	assert.Error(t, err)
}

func TestGetDB(t *testing.T) {
	cfg := &Config{DataDir: filepath.Join(t.TempDir(), "data")}
	path, isPG, err := cfg.GetDB()
	require.NoError(t, err)
	assert.False(t, isPG)
	assert.True(t, strings.HasPrefix(path, cfg.DataDir))

	cfg = &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "myzone", DBPort: 5432}
	path, isPG, err = cfg.GetDB()
	require.NoError(t, err)
	assert.True(t, isPG)
	assert.Contains(t, path, "dbname=myzone")
	assert.Contains(t, path, "port=5432")
}
