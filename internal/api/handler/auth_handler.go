package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/zeyang/login-system/internal/api/metrics"
	"github.com/zeyang/login-system/internal/core/domain"
	"github.com/zeyang/login-system/internal/core/ports"
)

// sessionHeader carries the opaque session id issued at login.
const sessionHeader = "X-Session-Id"

type AuthHandler struct {
	auth     ports.AuthService
	users    ports.UserService
	sessions ports.SessionStore
	tokens   ports.TokenStore
	attempts ports.AttemptStore
	log      zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, users ports.UserService, sessions ports.SessionStore, tokens ports.TokenStore, attempts ports.AttemptStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, sessions: sessions, tokens: tokens, attempts: attempts, log: log}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,max=20"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token     string          `json:"token,omitempty"`
	SessionID string          `json:"session_id,omitempty"`
	User      *domain.Account `json:"user,omitempty"`
	Message   string          `json:"message,omitempty"`
}

// Register creates a new user account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.users.Register(c.Request().Context(), req.Username, req.Password, req.Email, req.Phone)
	if err != nil {
		if err == domain.ErrDuplicateUsername {
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, authResponse{User: account, Message: "registered"})
}

// Login authenticates a user, opens a session, and returns an access token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  map[string]string
// @Failure      423   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()

	// Cache-local lock flag, checked before touching the durable account
	// state. Independent of the lockout fields on the account record.
	locked, err := h.attempts.IsAccountLocked(ctx, req.Username)
	if err != nil {
		return err
	}
	if locked {
		metrics.LoginAttemptsTotal.WithLabelValues("locked").Inc()
		return domain.ErrAccountTemporarilyLocked
	}

	token, account, err := h.auth.Login(ctx, req.Username, req.Password, clientInfo(c))
	if err != nil {
		h.recordLoginFailure(c, req.Username, err)
		return err
	}

	if err := h.attempts.ResetFailedAttempts(ctx, req.Username); err != nil {
		return err
	}

	sessionID := uuid.NewString()
	if err := h.sessions.Save(ctx, sessionID, account); err != nil {
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, SessionID: sessionID, User: account, Message: "login successful"})
}

func (h *AuthHandler) recordLoginFailure(c echo.Context, username string, err error) {
	switch err {
	case domain.ErrInvalidCredentials:
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
		// The attempt already failed with a credential error; a broken
		// counter write must not turn that 401 into a 500.
		if rerr := h.attempts.RecordFailedAttempt(c.Request().Context(), username); rerr != nil {
			h.log.Error().Err(rerr).Str("username", username).Msg("failed to record login attempt")
		}
	case domain.ErrAccountBlocked:
		metrics.LoginAttemptsTotal.WithLabelValues("blocked").Inc()
	case domain.ErrAccountTemporarilyLocked:
		metrics.LoginAttemptsTotal.WithLabelValues("locked").Inc()
		metrics.LockoutsTotal.Inc()
	default:
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
	}
}

// Logout closes the caller's session and records a LOGOUT audit event. It
// is idempotent: a missing or expired session still yields 200.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Param        X-Session-Id  header  string  false  "Session id issued at login"
// @Success      200  {object}  authResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID := c.Request().Header.Get(sessionHeader)
	if sessionID == "" {
		return c.JSON(http.StatusOK, authResponse{Message: "logged out"})
	}

	ctx := c.Request().Context()
	account, err := h.sessions.Get(ctx, sessionID)
	if err != nil && err != domain.ErrUserNotFound {
		return err
	}
	if account != nil {
		if err := h.auth.Logout(ctx, account, clientInfo(c)); err != nil {
			return err
		}
	}
	if err := h.sessions.Remove(ctx, sessionID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Message: "logged out"})
}
