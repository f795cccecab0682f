package task

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/taskhive/task-service/internal/adapters/transport/http/dto"
	customErrors "github.com/taskhive/task-service/internal/domain/errors"
	"github.com/taskhive/task-service/internal/domain/model"
	"github.com/taskhive/task-service/internal/domain/repo"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

type taskService struct {
	taskRepo repo.TaskRepo
	v        *validator.Validate
}

type Service interface {
	List(ctx context.Context, userID int64, page, perPage int) ([]model.Task, error)
	Create(ctx context.Context, userID int64, in dto.CreateTaskDTO) (model.Task, error)
	Update(ctx context.Context, userID, taskID int64, in dto.UpdateTaskDTO) (model.Task, error)
	Delete(ctx context.Context, userID, taskID int64) (model.Task, error)
}

func New(tr repo.TaskRepo, v *validator.Validate) Service {
	return &taskService{taskRepo: tr, v: v}
}

// List returns the owner's tasks newest first. Out-of-range paging inputs
// fall back to page 1 with 10 per page.
func (s *taskService) List(ctx context.Context, userID int64, page, perPage int) ([]model.Task, error) {
	if page < 1 {
		page = defaultPage
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}

	tasks, err := s.taskRepo.ListTasks(ctx, userID, page, perPage)
	if err != nil {
		return nil, customErrors.WrapInternal(err, "List")
	}
	return tasks, nil
}

func (s *taskService) Create(ctx context.Context, userID int64, in dto.CreateTaskDTO) (model.Task, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Task{}, customErrors.NewInvalidArgument(err.Error())
	}

	created, err := s.taskRepo.CreateTask(ctx, model.Task{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
	})
	if err != nil {
		return model.Task{}, customErrors.WrapInternal(err, "Create")
	}
	return created, nil
}

// Update modifies a task the caller owns. A task owned by someone else is
// indistinguishable from a missing one.
func (s *taskService) Update(ctx context.Context, userID, taskID int64, in dto.UpdateTaskDTO) (model.Task, error) {
	if err := s.v.Struct(in); err != nil {
		return model.Task{}, customErrors.NewInvalidArgument(err.Error())
	}

	t, err := s.taskRepo.GetTask(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	t.Title = in.Title
	t.Description = in.Description
	if in.Completed != nil {
		t.Completed = *in.Completed
	}

	updated, err := s.taskRepo.UpdateTask(ctx, t)
	if err != nil {
		return model.Task{}, customErrors.WrapInternal(err, "Update")
	}
	return updated, nil
}

func (s *taskService) Delete(ctx context.Context, userID, taskID int64) (model.Task, error) {
	deleted, err := s.taskRepo.DeleteTask(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}
	return deleted, nil
}
