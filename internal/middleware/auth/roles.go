package auth

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/agileboard/backend/internal/models"
)

// RequireAdmin runs after RequireUser and rejects everyone but admins.
func (m *Auth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil || user.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

// RequireAdminOrScrumMaster admits admins and scrum masters.
func (m *Auth) RequireAdminOrScrumMaster(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil || (user.Role != models.RoleAdmin && user.Role != models.RoleScrumMaster) {
			return echo.NewHTTPError(http.StatusForbidden, "admin or scrum master access required")
		}
		return next(c)
	}
}

// RequireSelfOrAdmin admits the user whose id matches the :id path param, and
// any admin.
func (m *Auth) RequireSelfOrAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return echo.NewHTTPError(http.StatusForbidden, "access denied")
		}

		targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid user id")
		}

		if user.ID != uint(targetID) && user.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "you can only modify your own account")
		}
		return next(c)
	}
}
