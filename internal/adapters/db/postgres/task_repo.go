package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	customErrors "github.com/taskhive/task-service/internal/domain/errors"
	"github.com/taskhive/task-service/internal/domain/model"
)

type TaskRepo struct {
	db *gorm.DB
}

func NewTaskRepo(db *gorm.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (p *TaskRepo) CreateTask(ctx context.Context, t model.Task) (model.Task, error) {
	res := p.db.WithContext(ctx).Create(&t)
	if err := res.Error; err != nil {
		return model.Task{}, customErrors.WrapInternal(err, "CreateTask")
	}
	return t, nil
}

func (p *TaskRepo) ListTasks(ctx context.Context, userID int64, page, perPage int) ([]model.Task, error) {
	var tasks []model.Task
	res := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&tasks)
	if err := res.Error; err != nil {
		return nil, customErrors.WrapInternal(err, "ListTasks")
	}
	return tasks, nil
}

func (p *TaskRepo) GetTask(ctx context.Context, userID, taskID int64) (model.Task, error) {
	var t model.Task
	res := p.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", taskID, userID).
		First(&t)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return model.Task{}, customErrors.ErrNotFound
	}
	if err := res.Error; err != nil {
		return model.Task{}, customErrors.WrapInternal(err, "GetTask")
	}
	return t, nil
}

func (p *TaskRepo) UpdateTask(ctx context.Context, t model.Task) (model.Task, error) {
	res := p.db.WithContext(ctx).Save(&t)
	if err := res.Error; err != nil {
		return model.Task{}, customErrors.WrapInternal(err, "UpdateTask")
	}
	return t, nil
}

func (p *TaskRepo) DeleteTask(ctx context.Context, userID, taskID int64) (model.Task, error) {
	t, err := p.GetTask(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	res := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Task{}, taskID)
	if err := res.Error; err != nil {
		return model.Task{}, customErrors.WrapInternal(err, "DeleteTask")
	}
	if res.RowsAffected == 0 {
		return model.Task{}, customErrors.ErrNotFound
	}
	return t, nil
}
