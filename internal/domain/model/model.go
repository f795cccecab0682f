package model

import (
	"time"
)

type User struct {
	ID              int64      `json:"id" gorm:"primaryKey"`
	FirstName       string     `json:"firstName" gorm:"not null"`
	LastName        string     `json:"lastName" gorm:"not null"`
	Email           string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash    string     `json:"-" gorm:"not null"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (u User) Verified() bool {
	return u.EmailVerifiedAt != nil
}

// RefreshToken is a persisted session-continuation credential. Issuance is
// write-only: rows accumulate one per login and are never rotated or revoked,
// so a user may hold tokens for several devices at once.
type RefreshToken struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"uniqueIndex;not null"`
	UserID    int64     `json:"userId" gorm:"index;not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"index;not null"`
}

func (t RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type Task struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"userId" gorm:"index;not null"`
	User        User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TokenPair is what a successful registration or login hands back: a
// stateless one-hour session token and the opaque refresh token that was
// persisted alongside it.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
