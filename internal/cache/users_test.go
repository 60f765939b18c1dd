package cache

import (
	"testing"

	"myzone/internal/database"
	"myzone/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) *Cache {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	return New(db)
}

func TestCreateAndGetUser(t *testing.T) {
	c := newCache(t)

	user := &models.User{Username: "Alice", PasswordHash: "x"}
	require.NoError(t, c.CreateUser(user))
	require.NotZero(t, user.ID)

	byID, ok := c.GetUserByID(user.ID)
	require.True(t, ok)
	assert.Equal(t, "Alice", byID.Username)

	byName, ok := c.GetUserByUsername("alice")
	require.True(t, ok)
	assert.Equal(t, user.ID, byName.ID)

	_, ok = c.GetUserByUsername("bob")
	assert.False(t, ok)
}

func TestUpdateUserRefreshesCache(t *testing.T) {
	c := newCache(t)

	user := &models.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, c.CreateUser(user))

	user.SetTimezone("Asia/Tokyo")
	require.NoError(t, c.UpdateUser(user))

	got, ok := c.GetUserByID(user.ID)
	require.True(t, ok)
	tz, ok := got.Timezone()
	require.True(t, ok)
	assert.Equal(t, "Asia/Tokyo", tz)

	c.users.Purge()
	got, ok = c.GetUserByUsername("ALICE")
	require.True(t, ok)
	tz, _ = got.Timezone()
	assert.Equal(t, "Asia/Tokyo", tz)
}

func TestCachedUserIsACopy(t *testing.T) {
	c := newCache(t)

	user := &models.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, c.CreateUser(user))

	user.Username = "mallory"
	got, ok := c.GetUserByID(user.ID)
	require.True(t, ok)
	assert.Equal(t, "alice", got.Username)
}
