package repo

import (
	"context"

	"github.com/agileboard/backend/internal/models"
)

func (r *GormRepo) CreateTask(ctx context.Context, t *models.Task) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) TaskByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	if err := r.DB.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &task, nil
}

func (r *GormRepo) ListTasks(ctx context.Context, offset, limit int) ([]models.Task, error) {
	var tasks []models.Task
	err := r.DB.WithContext(ctx).Offset(offset).Limit(limit).Find(&tasks).Error
	return tasks, err
}

func (r *GormRepo) UpdateTask(ctx context.Context, t *models.Task) error {
	return r.DB.WithContext(ctx).Save(t).Error
}

func (r *GormRepo) DeleteTask(ctx context.Context, id uint) error {
	result := r.DB.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
