package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/agileboard/backend/internal/hash"
	"github.com/agileboard/backend/internal/logging"
	"github.com/agileboard/backend/internal/models"
	"github.com/agileboard/backend/internal/repo"
	"github.com/agileboard/backend/internal/util"
)

type UserHandler struct {
	Repo *repo.GormRepo
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid id")
	}
	return uint(id), nil
}

func pagination(c echo.Context) (int, int) {
	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return util.Pagination(skip, limit)
}

func (h *UserHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user_create")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid body")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "email and password are required")
	}

	switch req.Role {
	case models.RoleAdmin, models.RoleScrumMaster, models.RoleDeveloper:
	default:
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid role")
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("user_create_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not hash password")
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: pwHash,
		FullName:     req.FullName,
		Role:         req.Role,
		IsActive:     true,
	}
	if err := h.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
		}
		l.Error("user_create_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create user")
	}

	return c.JSON(http.StatusCreated, userOut(&user))
}

func (h *UserHandler) List(c echo.Context) error {
	offset, limit := pagination(c)
	users, err := h.Repo.ListUsers(c.Request().Context(), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list users")
	}

	out := make([]UserOut, len(users))
	for i := range users {
		out[i] = userOut(&users[i])
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.Repo.UserByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}
	return c.JSON(http.StatusOK, userOut(user))
}

func (h *UserHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.Repo.UserByID(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	var req struct {
		FullName *string `json:"full_name"`
		Password *string `json:"password"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid body")
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Password != nil {
		pwHash, err := hash.HashPassword(*req.Password)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not hash password")
		}
		user.PasswordHash = pwHash
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.Repo.UpdateUser(ctx, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not update user")
	}
	return c.JSON(http.StatusOK, userOut(user))
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.DeleteUser(c.Request().Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not delete user")
	}
	return c.NoContent(http.StatusNoContent)
}
