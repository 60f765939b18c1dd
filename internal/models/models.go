package models

import (
	"time"

	"gorm.io/gorm"
)

// Preferences exposes what a user has stored about their display settings.
type Preferences interface {
	// Timezone returns the selected timezone identifier, if any.
	Timezone() (string, bool)
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`

	// Profile fields
	SelectedTimezone *string `gorm:"size:64"`

	// Timestamps
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (u *User) Timezone() (string, bool) {
	if u == nil || u.SelectedTimezone == nil || *u.SelectedTimezone == "" {
		return "", false
	}
	return *u.SelectedTimezone, true
}

// SetTimezone stores id as the selected timezone. An empty id clears it.
func (u *User) SetTimezone(id string) {
	if id == "" {
		u.SelectedTimezone = nil
		return
	}
	u.SelectedTimezone = &id
}

// Owns reports whether u is looking at its own profile.
func (u *User) Owns(profile *User) bool {
	return u != nil && profile != nil && u.ID == profile.ID
}
