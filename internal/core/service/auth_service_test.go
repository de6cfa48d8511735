package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/zeyang/login-system/internal/core/domain"
)

type stubUserRepo struct {
	accounts  map[string]*domain.Account
	updateErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	if a.LockedUntil != nil {
		until := *a.LockedUntil
		clone.LockedUntil = &until
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[account.Username]; exists {
		return nil, domain.ErrDuplicateUsername
	}
	copy := cloneAccount(account)
	if copy.ID == "" {
		copy.ID = "id_" + account.Username
	}
	r.accounts[copy.Username] = cloneAccount(copy)
	return cloneAccount(copy), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	if a, ok := r.accounts[username]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Update(_ context.Context, account *domain.Account) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.accounts[account.Username]; !ok {
		return domain.ErrUserNotFound
	}
	r.accounts[account.Username] = cloneAccount(account)
	return nil
}

type stubAuditRepo struct {
	entries   []domain.AuthLog
	insertErr error
}

func (r *stubAuditRepo) Insert(_ context.Context, entry *domain.AuthLog) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *stubAuditRepo) FindByAccount(_ context.Context, accountID string) ([]domain.AuthLog, error) {
	var out []domain.AuthLog
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].AccountID == accountID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *stubAuditRepo) FindByTimeRange(_ context.Context, start, end time.Time) ([]domain.AuthLog, error) {
	var out []domain.AuthLog
	for _, e := range r.entries {
		if !e.CreatedAt.Before(start) && !e.CreatedAt.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubAuditRepo) lastAction() domain.AuthAction {
	if len(r.entries) == 0 {
		return ""
	}
	return r.entries[len(r.entries)-1].Action
}

var testClient = domain.ClientInfo{IP: "203.0.113.9", UserAgent: "go-test"}

func newTestAuthService(users *stubUserRepo, audit *stubAuditRepo) *AuthService {
	return NewAuthService(users, audit, NewPasswordHasher(), "secret", time.Hour, zerolog.Nop())
}

func seedAccount(t *testing.T, repo *stubUserRepo, username, password string) *domain.Account {
	t.Helper()

	hasher := NewPasswordHasher()
	salt, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt: %v", err)
	}

	account, err := repo.Create(context.Background(), &domain.Account{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hasher.Hash(password, salt),
		Salt:         salt,
		Status:       domain.StatusActive,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return account
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUserRepo()
	audit := &stubAuditRepo{}
	svc := newTestAuthService(users, audit)
	seedAccount(t, users, "alice", "pw123")

	token, account, err := svc.Login(context.Background(), "alice", "pw123", testClient)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if account == nil || account.Username != "alice" {
		t.Fatalf("unexpected account: %+v", account)
	}
	if audit.lastAction() != domain.ActionLoginSuccess {
		t.Fatalf("expected LOGIN_SUCCESS audit entry, got %q", audit.lastAction())
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["username"] != "alice" {
		t.Fatalf("expected username claim alice, got %v", claims["username"])
	}
}

func TestAuthService_Login_UnknownUserIndistinguishable(t *testing.T) {
	users := newStubUserRepo()
	audit := &stubAuditRepo{}
	svc := newTestAuthService(users, audit)
	seedAccount(t, users, "alice", "pw123")

	_, _, unknownErr := svc.Login(context.Background(), "ghost", "pw123", testClient)
	_, _, wrongPwErr := svc.Login(context.Background(), "alice", "wrong", testClient)

	if unknownErr != domain.ErrInvalidCredentials {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if wrongPwErr != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPwErr)
	}
}

func TestAuthService_Login_FailureIncrementsAndAudits(t *testing.T) {
	users := newStubUserRepo()
	audit := &stubAuditRepo{}
	svc := newTestAuthService(users, audit)
	seedAccount(t, users, "alice", "pw123")

	if _, _, err := svc.Login(context.Background(), "alice", "wrong", testClient); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	stored := users.accounts["alice"]
	if stored.FailedAttempts != 1 {
		t.Fatalf("expected 1 failed attempt, got %d", stored.FailedAttempts)
	}
	if audit.lastAction() != domain.ActionLoginFailure {
		t.Fatalf("expected LOGIN_FAILURE audit entry, got %q", audit.lastAction())
	}
	if audit.entries[0].IPAddress != testClient.IP || audit.entries[0].UserAgent != testClient.UserAgent {
		t.Fatalf("audit entry missing client metadata: %+v", audit.entries[0])
	}
}

func TestAuthService_Login_LocksAfterFiveFailures(t *testing.T) {
	users := newStubUserRepo()
	audit := &stubAuditRepo{}
	svc := newTestAuthService(users, audit)
	seedAccount(t, users, "alice", "pw123")

	for i := 0; i < domain.MaxFailedAttempts; i++ {
		// The fifth failure still reports a credential error, not a lock.
		if _, _, err := svc.Login(context.Background(), "alice", "wrong", testClient); err != domain.ErrInvalidCredentials {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	if users.accounts["alice"].LockedUntil == nil {
		t.Fatalf("expected account to be locked after %d failures", domain.MaxFailedAttempts)
	}

	// Correct password is refused while the lock holds.
	if _, _, err := svc.Login(context.Background(), "alice", "pw123", testClient); err != domain.ErrAccountTemporarilyLocked {
		t.Fatalf("expected ErrAccountTemporarilyLocked, got %v", err)
	}
}

func TestAuthService_Login_LockExpiresLazily(t *testing.T) {
	users := newStubUserRepo()
	audit := &stubAuditRepo{}
	svc := newTestAuthService(users, audit)
	seedAccount(t, users, "alice", "pw123")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	current := base
	svc.now = func() time.Time { return current }

	for i := 0; i < domain.MaxFailedAttempts; i++ {
		_, _, _ = svc.Login(context.Background(), "alice", "wrong", testClient)
	}
	if _, _, err := svc.Login(context.Background(), "alice", "pw123", testClient); err != domain.ErrAccountTemporarilyLocked {
		t.Fatalf("expected lock to hold, got %v", err)
	}

	current = base.Add(domain.LockDuration + time.Minute)

	_, account, err := svc.Login(context.Background(), "alice", "pw123", testClient)
	if err != nil {
		t.Fatalf("expected login after lock expiry, got %v", err)
	}
	if account.FailedAttempts != 0 {
		t.Fatalf("expected counter reset, got %d", account.FailedAttempts)
	}
	if account.LockedUntil != nil {
		t.Fatalf("expected LockedUntil cleared, got %v", account.LockedUntil)
	}
}

func TestAuthService_Login_AdministrativelyBlocked(t *testing.T) {
	users := newStubUserRepo()
	audit := &stubAuditRepo{}
	svc := newTestAuthService(users, audit)
	seedAccount(t, users, "alice", "pw123")
	users.accounts["alice"].Status = domain.StatusDisabled

	if _, _, err := svc.Login(context.Background(), "alice", "pw123", testClient); err != domain.ErrAccountBlocked {
		t.Fatalf("expected ErrAccountBlocked, got %v", err)
	}
	if len(audit.entries) != 0 {
		t.Fatalf("blocked attempt must not reach the audit log")
	}
}

func TestAuthService_Login_PersistFailureAborts(t *testing.T) {
	users := newStubUserRepo()
	audit := &stubAuditRepo{}
	svc := newTestAuthService(users, audit)
	seedAccount(t, users, "alice", "pw123")
	users.updateErr = errors.New("mongo down")

	_, _, err := svc.Login(context.Background(), "alice", "pw123", testClient)
	if err == nil || err == domain.ErrInvalidCredentials {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
	if len(audit.entries) != 0 {
		t.Fatalf("audit entry written despite persistence failure")
	}
}

func TestAuthService_Login_AuditFailureAborts(t *testing.T) {
	users := newStubUserRepo()
	audit := &stubAuditRepo{insertErr: errors.New("sink down")}
	svc := newTestAuthService(users, audit)
	seedAccount(t, users, "alice", "pw123")

	if _, _, err := svc.Login(context.Background(), "alice", "pw123", testClient); err == nil {
		t.Fatalf("expected error when audit write fails")
	}
}

func TestAuthService_Logout_WritesAudit(t *testing.T) {
	users := newStubUserRepo()
	audit := &stubAuditRepo{}
	svc := newTestAuthService(users, audit)
	account := seedAccount(t, users, "alice", "pw123")

	if err := svc.Logout(context.Background(), account, testClient); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if audit.lastAction() != domain.ActionLogout {
		t.Fatalf("expected LOGOUT audit entry, got %q", audit.lastAction())
	}

	// Logout never mutates the account.
	if users.accounts["alice"].FailedAttempts != 0 || users.accounts["alice"].LockedUntil != nil {
		t.Fatalf("logout mutated account state")
	}
}
