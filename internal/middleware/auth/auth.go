// Package auth resolves bearer tokens to principals and enforces role
// predicates. Every request is resolved from scratch; the only state shared
// across requests is the revocation ledger.
package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/agileboard/backend/internal/blacklist"
	"github.com/agileboard/backend/internal/models"
	"github.com/agileboard/backend/internal/repo"
	"github.com/agileboard/backend/internal/tokens"
)

const (
	userContextKey  = "current_user"
	tokenContextKey = "bearer_token"
)

type Auth struct {
	Codec  *tokens.Codec
	Ledger *blacklist.Ledger
	Repo   *repo.GormRepo
}

func New(codec *tokens.Codec, ledger *blacklist.Ledger, r *repo.GormRepo) *Auth {
	return &Auth{Codec: codec, Ledger: ledger, Repo: r}
}

// Unauthorized builds a 401 carrying the WWW-Authenticate challenge.
func Unauthorized(c echo.Context, msg string) *echo.HTTPError {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}

// BearerToken pulls the token out of the Authorization header.
func BearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}

// RequireUser authenticates the request: bearer extraction, signature and
// expiry check, revocation check, then user lookup by the token's subject
// (numeric user id, or email for tokens issued before the format change).
func (m *Auth) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := BearerToken(c)
		if !ok {
			return Unauthorized(c, "missing bearer token")
		}

		claims, err := m.Codec.Parse(token)
		if err != nil {
			return Unauthorized(c, "could not validate credentials")
		}

		if m.Ledger.IsRevoked(token) {
			return Unauthorized(c, "token has been revoked")
		}

		ctx := c.Request().Context()
		var user *models.User
		if sub := claims.Subject(); sub.ByID() {
			user, err = m.Repo.UserByID(ctx, sub.UserID)
		} else {
			user, err = m.Repo.UserByEmail(ctx, sub.Email)
		}
		if err != nil {
			return Unauthorized(c, "user not found")
		}

		c.Set(userContextKey, user)
		c.Set(tokenContextKey, token)
		return next(c)
	}
}

// CurrentUser returns the principal stored by RequireUser.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

// CurrentToken returns the raw bearer token stored by RequireUser.
func CurrentToken(c echo.Context) string {
	token, _ := c.Get(tokenContextKey).(string)
	return token
}
