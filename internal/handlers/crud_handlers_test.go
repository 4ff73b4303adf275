package handlers_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agileboard/backend/internal/models"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestUserCreate_AdminOnly(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.login(t, "admin@example.com", "admin123")
	devToken := srv.login(t, "dev@example.com", "dev123")

	body := map[string]string{
		"email":     "new.dev@example.com",
		"password":  "secret123",
		"full_name": "New Developer",
		"role":      models.RoleDeveloper,
	}

	rec := srv.request(http.MethodPost, "/users", devToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.request(http.MethodPost, "/users", adminToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Duplicate email is rejected.
	rec = srv.request(http.MethodPost, "/users", adminToken, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already registered")
}

func TestUserUpdate_SelfOrAdmin(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.login(t, "admin@example.com", "admin123")
	devToken := srv.login(t, "dev@example.com", "dev123")

	var dev, sm models.User
	require.NoError(t, srv.db.Where("email = ?", "dev@example.com").First(&dev).Error)
	require.NoError(t, srv.db.Where("email = ?", "sm@example.com").First(&sm).Error)

	devPath := "/users/" + itoa(dev.ID)
	smPath := "/users/" + itoa(sm.ID)

	rec := srv.request(http.MethodPut, devPath, devToken, map[string]string{"full_name": "Dev Renamed"})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.request(http.MethodPut, smPath, devToken, map[string]string{"full_name": "Nope"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.request(http.MethodPut, smPath, adminToken, map[string]string{"full_name": "SM Renamed"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserDelete_AdminOnly(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.login(t, "admin@example.com", "admin123")
	devToken := srv.login(t, "dev@example.com", "dev123")

	target := srv.seedUser(t, "victim@example.com", "x12345", models.RoleDeveloper, true)
	path := "/users/" + itoa(target.ID)

	rec := srv.request(http.MethodDelete, path, devToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.request(http.MethodDelete, path, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.request(http.MethodDelete, path, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectCRUD_RoleMatrix(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.login(t, "admin@example.com", "admin123")
	smToken := srv.login(t, "sm@example.com", "sm123")
	devToken := srv.login(t, "dev@example.com", "dev123")

	body := map[string]interface{}{"name": "Sprint Board", "description": "tracker"}

	rec := srv.request(http.MethodPost, "/projects", devToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.request(http.MethodPost, "/projects", smToken, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var project models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))
	path := "/projects/" + itoa(project.ID)

	// Any authenticated role can read.
	rec = srv.request(http.MethodGet, path, devToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = srv.request(http.MethodGet, "/projects", devToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.request(http.MethodPut, path, devToken, map[string]string{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = srv.request(http.MethodPut, path, adminToken, map[string]string{"name": "Renamed"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.request(http.MethodDelete, path, devToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = srv.request(http.MethodDelete, path, smToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.request(http.MethodGet, path, devToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectTasks(t *testing.T) {
	srv := newTestServer(t)
	smToken := srv.login(t, "sm@example.com", "sm123")

	rec := srv.request(http.MethodPost, "/projects", smToken, map[string]string{"name": "Board"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var project models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))

	rec = srv.request(http.MethodPost, "/tasks", smToken, map[string]interface{}{
		"title":      "Write tests",
		"project_id": project.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.request(http.MethodGet, "/projects/"+itoa(project.ID)+"/tasks", smToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write tests", tasks[0].Title)
	assert.Equal(t, models.StatusBacklog, tasks[0].Status)

	rec = srv.request(http.MethodGet, "/projects/9999/tasks", smToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectTask_ScopedToProject(t *testing.T) {
	srv := newTestServer(t)
	smToken := srv.login(t, "sm@example.com", "sm123")

	var first, second models.Project
	rec := srv.request(http.MethodPost, "/projects", smToken, map[string]string{"name": "First"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &first))

	rec = srv.request(http.MethodPost, "/projects", smToken, map[string]string{"name": "Second"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &second))

	rec = srv.request(http.MethodPost, "/tasks", smToken, map[string]interface{}{
		"title":      "Scoped read",
		"project_id": first.ID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var task models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))

	rec = srv.request(http.MethodGet, "/projects/"+itoa(first.ID)+"/tasks/"+itoa(task.ID), smToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, task.ID, got.ID)

	// The same task under the wrong project is not found.
	rec = srv.request(http.MethodGet, "/projects/"+itoa(second.ID)+"/tasks/"+itoa(task.ID), smToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskCRUD_RoleMatrix(t *testing.T) {
	srv := newTestServer(t)
	smToken := srv.login(t, "sm@example.com", "sm123")
	devToken := srv.login(t, "dev@example.com", "dev123")

	rec := srv.request(http.MethodPost, "/projects", smToken, map[string]string{"name": "Board"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var project models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))

	taskBody := map[string]interface{}{"title": "Task", "project_id": project.ID}

	rec = srv.request(http.MethodPost, "/tasks", devToken, taskBody)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.request(http.MethodPost, "/tasks", smToken, taskBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	var task models.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	path := "/tasks/" + itoa(task.ID)

	rec = srv.request(http.MethodGet, path, devToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.request(http.MethodPut, path, devToken, map[string]string{"status": models.StatusDone})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.request(http.MethodPut, path, smToken, map[string]string{"status": "Unknown"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = srv.request(http.MethodPut, path, smToken, map[string]string{"status": models.StatusDone})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	assert.Equal(t, models.StatusDone, task.Status)

	rec = srv.request(http.MethodDelete, path, devToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = srv.request(http.MethodDelete, path, smToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.request(http.MethodGet, path, devToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
