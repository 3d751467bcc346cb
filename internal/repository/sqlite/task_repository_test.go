package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskboard/internal/domain"
)

func TestTaskInsertAndList(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	ownerID := createUser(t, db, "alice")
	deadline := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	task := &domain.Task{
		Title:       "write report",
		Description: "quarterly numbers",
		Status:      domain.TaskStatusTodo,
		Priority:    domain.TaskPriorityHigh,
		Deadline:    &deadline,
		UserID:      ownerID,
	}
	id, err := repo.Insert(ctx, task)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == 0 || task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Fatalf("id/timestamps not assigned: %+v", task)
	}

	tasks, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.Title != "write report" || got.Status != domain.TaskStatusTodo || got.Priority != domain.TaskPriorityHigh {
		t.Fatalf("unexpected task: %+v", got)
	}
	if got.Deadline == nil || !got.Deadline.Equal(deadline) {
		t.Fatalf("deadline not round-tripped: %v", got.Deadline)
	}
}

func TestListIsOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	aliceID := createUser(t, db, "alice")
	bobID := createUser(t, db, "bob")

	for _, title := range []string{"a1", "a2"} {
		if _, err := repo.Insert(ctx, &domain.Task{Title: title, Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityMedium, UserID: aliceID}); err != nil {
			t.Fatalf("insert %s: %v", title, err)
		}
	}
	if _, err := repo.Insert(ctx, &domain.Task{Title: "b1", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityMedium, UserID: bobID}); err != nil {
		t.Fatalf("insert b1: %v", err)
	}

	aliceTasks, err := repo.ListByOwner(ctx, aliceID)
	if err != nil {
		t.Fatalf("list alice: %v", err)
	}
	if len(aliceTasks) != 2 {
		t.Fatalf("alice should see 2 tasks, got %d", len(aliceTasks))
	}
	for _, task := range aliceTasks {
		if task.UserID != aliceID {
			t.Fatalf("alice sees a foreign task: %+v", task)
		}
	}

	bobTasks, err := repo.ListByOwner(ctx, bobID)
	if err != nil {
		t.Fatalf("list bob: %v", err)
	}
	if len(bobTasks) != 1 || bobTasks[0].Title != "b1" {
		t.Fatalf("bob should see only b1, got %+v", bobTasks)
	}
}

func TestUpdateWhereOwned(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	ownerID := createUser(t, db, "alice")
	task := &domain.Task{Title: "t", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityMedium, UserID: ownerID}
	if _, err := repo.Insert(ctx, task); err != nil {
		t.Fatalf("insert: %v", err)
	}

	done := domain.TaskStatusDone
	title := "t2"
	updated, err := repo.UpdateWhereOwned(ctx, task.ID, ownerID, domain.TaskUpdate{Title: &title, Status: &done})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "t2" || updated.Status != domain.TaskStatusDone {
		t.Fatalf("partial update not applied: %+v", updated)
	}
	if updated.Priority != domain.TaskPriorityMedium {
		t.Fatalf("untouched field changed: %+v", updated)
	}
}

func TestUpdateClearsDeadline(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	ownerID := createUser(t, db, "alice")
	deadline := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	task := &domain.Task{Title: "t", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityMedium, Deadline: &deadline, UserID: ownerID}
	if _, err := repo.Insert(ctx, task); err != nil {
		t.Fatalf("insert: %v", err)
	}

	updated, err := repo.UpdateWhereOwned(ctx, task.ID, ownerID, domain.TaskUpdate{ClearDeadline: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Deadline != nil {
		t.Fatalf("deadline not cleared: %v", updated.Deadline)
	}
}

// A task owned by someone else must behave exactly like a missing task for
// both update and delete.
func TestForeignOwnerIndistinguishableFromMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	aliceID := createUser(t, db, "alice")
	bobID := createUser(t, db, "bob")

	task := &domain.Task{Title: "alice's", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityMedium, UserID: aliceID}
	if _, err := repo.Insert(ctx, task); err != nil {
		t.Fatalf("insert: %v", err)
	}

	done := domain.TaskStatusDone
	const missingID = 987654

	_, errForeign := repo.UpdateWhereOwned(ctx, task.ID, bobID, domain.TaskUpdate{Status: &done})
	_, errMissing := repo.UpdateWhereOwned(ctx, missingID, bobID, domain.TaskUpdate{Status: &done})
	if !errors.Is(errForeign, domain.ErrTaskNotFound) || !errors.Is(errMissing, domain.ErrTaskNotFound) {
		t.Fatalf("update: foreign=%v missing=%v", errForeign, errMissing)
	}
	if errForeign.Error() != errMissing.Error() {
		t.Fatalf("foreign and missing must be indistinguishable: %q vs %q", errForeign, errMissing)
	}

	errForeign = repo.DeleteWhereOwned(ctx, task.ID, bobID)
	errMissing = repo.DeleteWhereOwned(ctx, missingID, bobID)
	if !errors.Is(errForeign, domain.ErrTaskNotFound) || !errors.Is(errMissing, domain.ErrTaskNotFound) {
		t.Fatalf("delete: foreign=%v missing=%v", errForeign, errMissing)
	}
	if errForeign.Error() != errMissing.Error() {
		t.Fatalf("foreign and missing must be indistinguishable: %q vs %q", errForeign, errMissing)
	}

	// alice's task must be untouched
	kept, err := repo.GetWhereOwned(ctx, task.ID, aliceID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if kept.Status != domain.TaskStatusTodo {
		t.Fatalf("task mutated by foreign caller: %+v", kept)
	}
}

func TestDeleteWhereOwned(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	ownerID := createUser(t, db, "alice")
	task := &domain.Task{Title: "t", Status: domain.TaskStatusTodo, Priority: domain.TaskPriorityMedium, UserID: ownerID}
	if _, err := repo.Insert(ctx, task); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.DeleteWhereOwned(ctx, task.ID, ownerID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	tasks, err := repo.ListByOwner(ctx, ownerID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("task not deleted")
	}
}
