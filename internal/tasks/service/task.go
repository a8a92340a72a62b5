package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/tasks/internal/tasks/domain"
	"github.com/aussiebroadwan/tasks/internal/tasks/store"
	"github.com/aussiebroadwan/tasks/pkg/slogx"
)

type TaskService struct {
	Store store.Store
	Now   Clock
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	t, err := s.Store.Tasks().GetTask(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Task{}, ErrTaskNotFound
	}
	return t, err
}

func (s *TaskService) ListTasks(ctx context.Context, f domain.TaskFilter) ([]domain.Task, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, newValidationError("status", "must be one of pending, in_progress, completed")
	}
	return s.Store.Tasks().ListTasks(ctx, f)
}

// ListTasksForUser lists the tasks owned by userID, failing when the user
// does not exist rather than returning an empty list.
func (s *TaskService) ListTasksForUser(ctx context.Context, userID int64, status domain.TaskStatus) ([]domain.Task, error) {
	if _, err := s.Store.Users().GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.ListTasks(ctx, domain.TaskFilter{UserID: userID, Status: status})
}

// CreateTask defaults the status to pending.
func (s *TaskService) CreateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	if t.Status == "" {
		t.Status = domain.TaskPending
	}
	if !t.Status.Valid() {
		return domain.Task{}, newValidationError("status", "must be one of pending, in_progress, completed")
	}

	now := s.Now.now()
	t.CreatedAt, t.UpdatedAt = now, now

	id, err := s.Store.Tasks().CreateTask(ctx, t)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Task{}, ErrUserNotFound
	}
	if err != nil {
		return domain.Task{}, err
	}
	t.ID = id

	slogx.FromContext(ctx).Info("task created", slog.Int64("task_id", id), slog.Int64("user_id", t.UserID))
	return t, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id int64, upd domain.TaskUpdate) (domain.Task, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return domain.Task{}, newValidationError("status", "must be one of pending, in_progress, completed")
	}

	var out domain.Task
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, err := tx.Tasks().GetTask(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		if upd.Title != nil {
			t.Title = *upd.Title
		}
		if upd.Description != nil {
			t.Description = *upd.Description
		}
		if upd.Status != nil {
			t.Status = *upd.Status
		}
		if upd.UserID != nil {
			t.UserID = *upd.UserID
		}
		t.UpdatedAt = s.Now.now()

		if err := tx.Tasks().UpdateTask(ctx, t); err != nil {
			// The only foreign key is the owner.
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return out, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	err := s.Store.Tasks().DeleteTask(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrTaskNotFound
	}
	return err
}
