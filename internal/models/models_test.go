package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserTimezone(t *testing.T) {
	var nobody *User
	_, ok := nobody.Timezone()
	assert.False(t, ok)

	u := &User{ID: 1}
	_, ok = u.Timezone()
	assert.False(t, ok)

	u.SetTimezone("Asia/Tokyo")
	tz, ok := u.Timezone()
	assert.True(t, ok)
	assert.Equal(t, "Asia/Tokyo", tz)

	u.SetTimezone("")
	assert.Nil(t, u.SelectedTimezone)

	empty := ""
	u.SelectedTimezone = &empty
	_, ok = u.Timezone()
	assert.False(t, ok)
}

func TestUserOwns(t *testing.T) {
	alice := &User{ID: 1}
	bob := &User{ID: 2}

	assert.True(t, alice.Owns(alice))
	assert.False(t, alice.Owns(bob))
	assert.False(t, alice.Owns(nil))

	var anonymous *User
	assert.False(t, anonymous.Owns(alice))
}
