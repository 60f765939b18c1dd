package database

import (
	"path/filepath"
	"testing"

	"myzone/internal/config"
	"myzone/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemoryIsolated(t *testing.T) {
	a, err := OpenMemory()
	require.NoError(t, err)
	b, err := OpenMemory()
	require.NoError(t, err)

	require.NoError(t, a.Create(&models.User{Username: "alice", PasswordHash: "x"}).Error)

	var count int64
	require.NoError(t, b.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestInitializeSQLite(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{DataDir: dir}

	db, err := Initialize(cfg)
	require.NoError(t, err)

	tz := "Europe/Rome"
	require.NoError(t, db.Create(&models.User{Username: "alice", PasswordHash: "x", SelectedTimezone: &tz}).Error)

	var got models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&got).Error)
	id, ok := got.Timezone()
	assert.True(t, ok)
	assert.Equal(t, "Europe/Rome", id)

	assert.FileExists(t, filepath.Join(dir, "myzone.db"))
}
