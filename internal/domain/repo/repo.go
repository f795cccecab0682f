package repo

import (
	"context"
	"time"

	"github.com/taskhive/task-service/internal/domain/model"
)

type UserRepo interface {
	// CreateUser inserts the user inside its own transaction. Duplicate
	// email surfaces as errors.ErrAlreadyExists.
	CreateUser(ctx context.Context, u model.User) (model.User, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id int64) (model.User, error)

	// GetUnverifiedUserByEmail matches only users whose email has not been
	// verified yet; a verified user is indistinguishable from an absent one.
	GetUnverifiedUserByEmail(ctx context.Context, email string) (model.User, error)

	MarkEmailVerified(ctx context.Context, id int64, at time.Time) error
}

type RefreshTokenRepo interface {
	StoreRefreshToken(ctx context.Context, t model.RefreshToken) (model.RefreshToken, error)
}

type TaskRepo interface {
	CreateTask(ctx context.Context, t model.Task) (model.Task, error)

	// ListTasks returns the owner's tasks newest first.
	ListTasks(ctx context.Context, userID int64, page, perPage int) ([]model.Task, error)

	// GetTask scopes the lookup to the owner: someone else's task id behaves
	// exactly like a missing one.
	GetTask(ctx context.Context, userID, taskID int64) (model.Task, error)

	UpdateTask(ctx context.Context, t model.Task) (model.Task, error)

	DeleteTask(ctx context.Context, userID, taskID int64) (model.Task, error)
}
