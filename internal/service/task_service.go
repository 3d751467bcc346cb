package service

import (
	"context"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
)

// NewTaskInput carries the caller-supplied fields for task creation. The owner
// is never part of the input; it always comes from the verified session.
type NewTaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	Deadline    *time.Time
}

// TaskService coordinates owner-scoped task operations.
type TaskService interface {
	CreateTask(ctx context.Context, ownerID int64, input NewTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, ownerID int64) ([]domain.Task, error)
	UpdateTask(ctx context.Context, id, ownerID int64, update domain.TaskUpdate) (*domain.Task, error)
	MoveTask(ctx context.Context, id, ownerID int64, status domain.TaskStatus) (*domain.Task, error)
	DeleteTask(ctx context.Context, id, ownerID int64) error
}

type taskService struct {
	tasks repository.TaskRepository
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks}
}

func (s *taskService) CreateTask(ctx context.Context, ownerID int64, input NewTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.Validationf("title is required")
	}

	status := input.Status
	if status == "" {
		status = domain.TaskStatusTodo
	}
	if !domain.ValidStatus(status) {
		return nil, domain.Validationf("unknown status %q", status)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TaskPriorityMedium
	}
	if !domain.ValidPriority(priority) {
		return nil, domain.Validationf("unknown priority %q", priority)
	}

	task := &domain.Task{
		Title:       title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		Deadline:    input.Deadline,
		UserID:      ownerID,
	}
	if _, err := s.tasks.Insert(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	return s.tasks.ListByOwner(ctx, ownerID)
}

func (s *taskService) UpdateTask(ctx context.Context, id, ownerID int64, update domain.TaskUpdate) (*domain.Task, error) {
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, domain.Validationf("title must not be empty")
	}
	if update.Status != nil && !domain.ValidStatus(*update.Status) {
		return nil, domain.Validationf("unknown status %q", *update.Status)
	}
	if update.Priority != nil && !domain.ValidPriority(*update.Priority) {
		return nil, domain.Validationf("unknown priority %q", *update.Priority)
	}
	return s.tasks.UpdateWhereOwned(ctx, id, ownerID, update)
}

// MoveTask is the idempotent board move: only the status column changes.
func (s *taskService) MoveTask(ctx context.Context, id, ownerID int64, status domain.TaskStatus) (*domain.Task, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.Validationf("unknown status %q", status)
	}
	return s.tasks.UpdateWhereOwned(ctx, id, ownerID, domain.TaskUpdate{Status: &status})
}

func (s *taskService) DeleteTask(ctx context.Context, id, ownerID int64) error {
	return s.tasks.DeleteWhereOwned(ctx, id, ownerID)
}
