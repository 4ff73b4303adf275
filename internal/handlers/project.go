package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/agileboard/backend/internal/models"
	"github.com/agileboard/backend/internal/repo"
)

type ProjectHandler struct {
	Repo *repo.GormRepo
}

func (h *ProjectHandler) Create(c echo.Context) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		OwnerID     uint   `json:"owner_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "name is required")
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
	}
	if err := h.Repo.CreateProject(c.Request().Context(), &project); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create project")
	}
	return c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) List(c echo.Context) error {
	offset, limit := pagination(c)
	projects, err := h.Repo.ListProjects(c.Request().Context(), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list projects")
	}
	return c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	project, err := h.Repo.ProjectByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	project, err := h.Repo.ProjectByID(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		OwnerID     *uint   `json:"owner_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid body")
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.OwnerID != nil {
		project.OwnerID = *req.OwnerID
	}

	if err := h.Repo.UpdateProject(ctx, project); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not update project")
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.DeleteProject(c.Request().Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not delete project")
	}
	return c.NoContent(http.StatusNoContent)
}

// Task reads a single task scoped to the project; a task that exists under a
// different project is a 404 here.
func (h *ProjectHandler) Task(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid id")
	}

	task, err := h.Repo.ProjectTask(c.Request().Context(), id, uint(taskID))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}
	return c.JSON(http.StatusOK, task)
}

func (h *ProjectHandler) Tasks(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if _, err := h.Repo.ProjectByID(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	}

	offset, limit := pagination(c)
	tasks, err := h.Repo.ProjectTasks(ctx, id, offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list tasks")
	}
	return c.JSON(http.StatusOK, tasks)
}
