package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zeyang/login-system/internal/core/ports"
)

// TokenHandler exposes the opaque API-token operations. Issuance requires
// an authenticated caller; the token itself is the credential for refresh
// and invalidation.
type TokenHandler struct {
	tokens ports.TokenStore
}

func NewTokenHandler(tokens ports.TokenStore) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

type tokenRequest struct {
	Token string `json:"token" validate:"required"`
}

type tokenResponse struct {
	Token     string `json:"token,omitempty"`
	AccountID string `json:"account_id,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Create issues a fresh API token for the authenticated account.
//
// @Summary      Issue an API token
// @Tags         tokens
// @Produce      json
// @Success      201  {object}  tokenResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/token [post]
func (h *TokenHandler) Create(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	token, err := h.tokens.Create(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tokenResponse{Token: token, AccountID: accountID})
}

// Validate resolves a token to its account id.
//
// @Summary      Validate an API token
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Token to validate"
// @Success      200   {object}  tokenResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/auth/token/validate [post]
func (h *TokenHandler) Validate(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	accountID, ok, err := h.tokens.Validate(c.Request().Context(), req.Token)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "unknown or expired token")
	}
	return c.JSON(http.StatusOK, tokenResponse{AccountID: accountID})
}

// Refresh extends a token's TTL without rotating its value.
//
// @Summary      Refresh an API token
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Token to refresh"
// @Success      200   {object}  tokenResponse
// @Router       /api/auth/token/refresh [post]
func (h *TokenHandler) Refresh(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.tokens.Refresh(c.Request().Context(), req.Token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Message: "token refreshed"})
}

// Invalidate deletes a token immediately.
//
// @Summary      Invalidate an API token
// @Tags         tokens
// @Accept       json
// @Produce      json
// @Param        body  body      tokenRequest  true  "Token to invalidate"
// @Success      200   {object}  tokenResponse
// @Router       /api/auth/token [delete]
func (h *TokenHandler) Invalidate(c echo.Context) error {
	var req tokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.tokens.Invalidate(c.Request().Context(), req.Token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Message: "token invalidated"})
}
