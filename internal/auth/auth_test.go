package auth

import (
	"testing"

	"myzone/internal/cache"
	"myzone/internal/config"
	"myzone/internal/database"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	return NewService(cache.New(db), &config.Config{JWTSecret: "test-secret"})
}

func TestRegisterAndLogin(t *testing.T) {
	s := newService(t)

	user, err := s.Register("alice", "hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	_, err = s.Register("Alice", "other")
	assert.True(t, errors.Is(err, ErrUserExists))

	logged, token, err := s.Login("alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err = s.Login("alice", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	_, _, err = s.Login("nobody", "hunter22")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	s := newService(t)
	other := NewService(nil, &config.Config{JWTSecret: "another-secret"})

	token, err := other.GenerateToken(1)
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = s.ValidateToken("garbage")
	assert.Error(t, err)
}

func TestSetTimezone(t *testing.T) {
	s := newService(t)

	user, err := s.Register("alice", "hunter22")
	require.NoError(t, err)

	require.NoError(t, s.SetTimezone(user, "Europe/Rome"))
	stored, err := s.GetUserByID(user.ID)
	require.NoError(t, err)
	tz, ok := stored.Timezone()
	require.True(t, ok)
	assert.Equal(t, "Europe/Rome", tz)

	require.NoError(t, s.SetTimezone(user, ""))
	stored, err = s.GetUserByID(user.ID)
	require.NoError(t, err)
	_, ok = stored.Timezone()
	assert.False(t, ok)
}
