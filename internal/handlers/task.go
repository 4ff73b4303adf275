package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agileboard/backend/internal/models"
	"github.com/agileboard/backend/internal/repo"
)

type TaskHandler struct {
	Repo *repo.GormRepo
}

func validStatus(status string) bool {
	switch status {
	case models.StatusBacklog, models.StatusInProgress, models.StatusReview, models.StatusDone:
		return true
	}
	return false
}

func (h *TaskHandler) Create(c echo.Context) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
		AssigneeID  *uint  `json:"assignee_id"`
		ProjectID   uint   `json:"project_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid body")
	}
	if req.Title == "" || req.ProjectID == 0 {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "title and project_id are required")
	}
	if req.Status == "" {
		req.Status = models.StatusBacklog
	}
	if !validStatus(req.Status) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid status")
	}

	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssigneeID:  req.AssigneeID,
		ProjectID:   req.ProjectID,
	}
	if err := h.Repo.CreateTask(c.Request().Context(), &task); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not create task")
	}
	return c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) List(c echo.Context) error {
	offset, limit := pagination(c)
	tasks, err := h.Repo.ListTasks(c.Request().Context(), offset, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not list tasks")
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	task, err := h.Repo.TaskByID(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}
	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := pathID(c)
	if err != nil {
		return err
	}

	task, err := h.Repo.TaskByID(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Task not found")
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		AssigneeID  *uint   `json:"assignee_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid body")
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid status")
		}
		task.Status = *req.Status
	}
	if req.AssigneeID != nil {
		task.AssigneeID = req.AssigneeID
	}

	if err := h.Repo.UpdateTask(ctx, task); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not update task")
	}
	return c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.Repo.DeleteTask(c.Request().Context(), id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Task not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not delete task")
	}
	return c.NoContent(http.StatusNoContent)
}
