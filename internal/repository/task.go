package repository

import (
	"context"

	"taskboard/internal/domain"
)

// TaskRepository exposes persistence operations for Task aggregates.
//
// Every read and mutation is scoped by owner id: a task owned by another user
// behaves exactly like a task that does not exist.
type TaskRepository interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, task *domain.Task) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error)
	GetWhereOwned(ctx context.Context, id, ownerID int64) (*domain.Task, error)
	UpdateWhereOwned(ctx context.Context, id, ownerID int64, update domain.TaskUpdate) (*domain.Task, error)
	DeleteWhereOwned(ctx context.Context, id, ownerID int64) error
}
