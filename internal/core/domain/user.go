package domain

import (
	"errors"
	"time"
)

// AccountStatus is the persistent administrative state of an account. It is
// independent of the temporary lock carried by LockedUntil: LOCKED and
// DISABLED require an administrator to clear, LockedUntil clears itself.
type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusLocked   AccountStatus = "LOCKED"
	StatusDisabled AccountStatus = "DISABLED"
)

const (
	// MaxFailedAttempts is the number of consecutive failed logins after
	// which an account is temporarily locked.
	MaxFailedAttempts = 5
	// LockDuration is how long a temporary lock lasts.
	LockDuration = 30 * time.Minute
)

var ErrInvalidCredentials = errors.New("invalid username or password")
var ErrAccountBlocked = errors.New("account is locked or disabled")
var ErrAccountTemporarilyLocked = errors.New("account temporarily locked, try again later")
var ErrDuplicateUsername = errors.New("username already exists")
var ErrUserNotFound = errors.New("user not found")

// Account is the core aggregate: a durable user identity with credentials
// and lock state.
type Account struct {
	ID             string        `json:"id"`
	Username       string        `json:"username"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone,omitempty"`
	PasswordHash   string        `json:"-"`
	Salt           string        `json:"-"`
	Status         AccountStatus `json:"status"`
	FailedAttempts int           `json:"failed_attempts"`
	LockedUntil    *time.Time    `json:"locked_until,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// IsTemporarilyLocked reports whether the self-expiring lock is still in
// force at the given instant. Expiry is lazy: nothing clears LockedUntil in
// the background, it simply stops mattering once the instant has passed.
func (a *Account) IsTemporarilyLocked(now time.Time) bool {
	return a.LockedUntil != nil && a.LockedUntil.After(now)
}
