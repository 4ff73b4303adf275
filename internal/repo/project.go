package repo

import (
	"context"

	"github.com/agileboard/backend/internal/models"
)

func (r *GormRepo) CreateProject(ctx context.Context, p *models.Project) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) ProjectByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.DB.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &project, nil
}

func (r *GormRepo) ListProjects(ctx context.Context, offset, limit int) ([]models.Project, error) {
	var projects []models.Project
	err := r.DB.WithContext(ctx).Offset(offset).Limit(limit).Find(&projects).Error
	return projects, err
}

func (r *GormRepo) UpdateProject(ctx context.Context, p *models.Project) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) DeleteProject(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&models.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ProjectTask fetches a task only if it belongs to the project.
func (r *GormRepo) ProjectTask(ctx context.Context, projectID, taskID uint) (*models.Task, error) {
	var task models.Task
	err := r.DB.WithContext(ctx).
		Where("project_id = ? AND id = ?", projectID, taskID).
		First(&task).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &task, nil
}

func (r *GormRepo) ProjectTasks(ctx context.Context, projectID uint, offset, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.DB.WithContext(ctx).
		Where("project_id = ?", projectID).
		Offset(offset).Limit(limit).
		Find(&tasks).Error
	return tasks, err
}
