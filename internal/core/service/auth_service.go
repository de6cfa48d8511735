package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/zeyang/login-system/internal/core/domain"
	"github.com/zeyang/login-system/internal/core/ports"
)

// AuthService orchestrates a login attempt: account lookup, lockout
// evaluation, password verification, counter updates, and the audit write.
// All writes for one attempt are a single logical unit; a persistence
// failure aborts the attempt instead of logging a stale state.
type AuthService struct {
	users     ports.UserRepository
	audit     ports.AuditRepository
	hasher    *PasswordHasher
	lockout   *LockoutPolicy
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger

	// now is injectable so lock expiry can be exercised in tests.
	now func() time.Time
}

func NewAuthService(users ports.UserRepository, audit ports.AuditRepository, hasher *PasswordHasher, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		audit:     audit,
		hasher:    hasher,
		lockout:   NewLockoutPolicy(),
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Login authenticates username/password and returns a signed access token
// with the account. An unknown username and a wrong password both fail with
// domain.ErrInvalidCredentials so callers cannot enumerate usernames.
func (s *AuthService) Login(ctx context.Context, username, password string, client domain.ClientInfo) (string, *domain.Account, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup account: %w", err)
	}

	now := s.now()
	switch s.lockout.Evaluate(account, now) {
	case AdministrativelyBlocked:
		return "", nil, domain.ErrAccountBlocked
	case TemporarilyLocked:
		return "", nil, domain.ErrAccountTemporarilyLocked
	}

	if !s.hasher.Verify(password, account.Salt, account.PasswordHash) {
		s.lockout.RecordFailure(account, now)
		account.UpdatedAt = now
		if err := s.users.Update(ctx, account); err != nil {
			return "", nil, fmt.Errorf("persist failed attempt: %w", err)
		}
		if err := s.writeAudit(ctx, account, domain.ActionLoginFailure, client, now); err != nil {
			return "", nil, err
		}
		s.logger.Warn().
			Str("username", username).
			Int("failed_attempts", account.FailedAttempts).
			Str("ip", client.IP).
			Msg("login failed")
		return "", nil, domain.ErrInvalidCredentials
	}

	s.lockout.RecordSuccess(account)
	account.UpdatedAt = now
	if err := s.users.Update(ctx, account); err != nil {
		return "", nil, fmt.Errorf("persist login: %w", err)
	}
	if err := s.writeAudit(ctx, account, domain.ActionLoginSuccess, client, now); err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(account)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info().Str("username", username).Str("ip", client.IP).Msg("login succeeded")
	return token, account, nil
}

// Logout records a LOGOUT audit event. It never mutates the account and is
// a no-op upstream when no session exists.
func (s *AuthService) Logout(ctx context.Context, account *domain.Account, client domain.ClientInfo) error {
	return s.writeAudit(ctx, account, domain.ActionLogout, client, s.now())
}

func (s *AuthService) writeAudit(ctx context.Context, account *domain.Account, action domain.AuthAction, client domain.ClientInfo, now time.Time) error {
	entry := &domain.AuthLog{
		AccountID: account.ID,
		Action:    action,
		IPAddress: client.IP,
		UserAgent: client.UserAgent,
		Location:  client.Location,
		CreatedAt: now,
	}
	if err := s.audit.Insert(ctx, entry); err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

func (s *AuthService) generateToken(account *domain.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub":      account.ID,
		"username": account.Username,
		"exp":      s.now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
