package service

import (
	"time"

	"github.com/zeyang/login-system/internal/core/domain"
)

// LockoutState classifies an account's login eligibility at an instant.
type LockoutState int

const (
	// Eligible accounts may attempt a login.
	Eligible LockoutState = iota
	// TemporarilyLocked accounts are inside an unexpired LockedUntil
	// window; the state clears itself once the window passes.
	TemporarilyLocked
	// AdministrativelyBlocked accounts have a non-ACTIVE status and stay
	// blocked until an administrator intervenes.
	AdministrativelyBlocked
)

// LockoutPolicy is the pure decision logic over an account's failed-attempt
// count and lock expiry. It never touches storage; callers persist the
// mutated account.
type LockoutPolicy struct{}

func NewLockoutPolicy() *LockoutPolicy {
	return &LockoutPolicy{}
}

// Evaluate returns the account's lockout state at the given instant. The
// administrative status wins over the temporary lock.
func (p *LockoutPolicy) Evaluate(account *domain.Account, now time.Time) LockoutState {
	if account.Status != domain.StatusActive {
		return AdministrativelyBlocked
	}
	if account.IsTemporarilyLocked(now) {
		return TemporarilyLocked
	}
	return Eligible
}

// RecordFailure increments the failed-attempt counter and, when the new
// count reaches the threshold, starts a temporary lock window.
func (p *LockoutPolicy) RecordFailure(account *domain.Account, now time.Time) {
	account.FailedAttempts++
	if account.FailedAttempts >= domain.MaxFailedAttempts {
		until := now.Add(domain.LockDuration)
		account.LockedUntil = &until
	}
}

// RecordSuccess clears the counter and any temporary lock.
func (p *LockoutPolicy) RecordSuccess(account *domain.Account) {
	account.FailedAttempts = 0
	account.LockedUntil = nil
}
