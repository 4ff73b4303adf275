package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/agileboard/backend/internal/blacklist"
	"github.com/agileboard/backend/internal/hash"
	"github.com/agileboard/backend/internal/logging"
	authmw "github.com/agileboard/backend/internal/middleware/auth"
	"github.com/agileboard/backend/internal/models"
	"github.com/agileboard/backend/internal/mykafka"
	"github.com/agileboard/backend/internal/repo"
	"github.com/agileboard/backend/internal/tokens"
)

type AuthHandler struct {
	Repo     *repo.GormRepo
	Codec    *tokens.Codec
	Ledger   *blacklist.Ledger
	Producer *mykafka.Producer
}

type UserOut struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func userOut(u *models.User) UserOut {
	return UserOut{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}

// authenticate resolves email+password to a user. Every failure mode (no
// such user, wrong password, deactivated account) collapses to nil so the
// caller can only report the one generic message.
func (h *AuthHandler) authenticate(ctx context.Context, email, password string) *models.User {
	user, err := h.Repo.UserByEmail(ctx, email)
	if err != nil {
		return nil
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil
	}
	if !user.IsActive {
		return nil
	}
	return user
}

func (h *AuthHandler) issueAndTrack(user *models.User) (string, error) {
	token, expiresAt, err := h.Codec.Issue(user.ID, user.Email)
	if err != nil {
		return "", err
	}
	h.Ledger.Track(token, user.ID, expiresAt)
	return token, nil
}

func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 422, "error", err)
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid body")
	}

	user := h.authenticate(ctx, req.Email, req.Password)
	if user == nil {
		l.Warn("login_failed", "status", 401)
		return authmw.Unauthorized(c, "Incorrect email or password")
	}

	token, err := h.issueAndTrack(user)
	if err != nil {
		l.Error("login_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create token")
	}

	h.publishEvent(c, "user_logged_in", user.ID)
	l.Info("login_successful", "user_id", user.ID)

	return c.JSON(http.StatusCreated, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         userOut(user),
	})
}

// Token is the OAuth2 password-grant shaped endpoint; the form username
// field carries the email.
func (h *AuthHandler) Token(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_token")

	email := c.FormValue("username")
	password := c.FormValue("password")

	user := h.authenticate(ctx, email, password)
	if user == nil {
		l.Warn("token_failed", "status", 401)
		return authmw.Unauthorized(c, "Incorrect email or password")
	}

	token, err := h.issueAndTrack(user)
	if err != nil {
		l.Error("token_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create token")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, userOut(authmw.CurrentUser(c)))
}

// Logout revokes every active token of the current user.
func (h *AuthHandler) Logout(c echo.Context) error {
	user := authmw.CurrentUser(c)
	h.Ledger.RevokeAll(user.ID)

	h.publishEvent(c, "user_logged_out", user.ID)
	logging.FromContext(c.Request().Context()).Info("logout_all", "user_id", user.ID)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Successfully logged out from all devices",
	})
}

// LogoutCurrent revokes only the token used on this request.
func (h *AuthHandler) LogoutCurrent(c echo.Context) error {
	user := authmw.CurrentUser(c)
	h.Ledger.RevokeOne(authmw.CurrentToken(c))

	logging.FromContext(c.Request().Context()).Info("logout_current", "user_id", user.ID)

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Successfully logged out from current device",
	})
}

// Register always refuses: accounts are provisioned by admins via /users.
func (h *AuthHandler) Register(c echo.Context) error {
	return echo.NewHTTPError(http.StatusForbidden, "Public registration is disabled on this application")
}

func (h *AuthHandler) publishEvent(c echo.Context, eventType string, userID uint) {
	event := map[string]interface{}{
		"type":    eventType,
		"user_id": userID,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(userID), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "error", err)
	}
}
