package domain

import "time"

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          int64
	Title       string
	Description string
	Status      TaskStatus
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskFilter narrows ListTasks. Zero values match everything.
type TaskFilter struct {
	UserID int64
	Status TaskStatus
}

// TaskUpdate carries the fields a caller wants to change. Nil means keep.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	UserID      *int64
}
