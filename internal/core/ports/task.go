package ports

import (
	"context"
	"time"

	"focusquest/internal/core/domain"
)

// TaskStore is a task collection bound to one identity. The remote
// (postgres) implementation backs authenticated users; the local JSON
// store backs guests.
type TaskStore interface {
	List(ctx context.Context) ([]domain.Task, error)
	Get(ctx context.Context, id string) (domain.Task, error)
	Insert(ctx context.Context, task domain.Task) (domain.Task, error)
	Update(ctx context.Context, task domain.Task) (domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// StoreFactory selects the storage backend for an identity.
type StoreFactory interface {
	StoreFor(identity domain.Identity) TaskStore
}

// ChangeEvent signals that another session mutated the identity's
// tasks and cached snapshots should be refreshed.
type ChangeEvent struct {
	UserID string
}

// ChangeFeed delivers persistence-adapter push notifications. The
// returned channel is closed when ctx is done.
type ChangeFeed interface {
	Subscribe(ctx context.Context, identity domain.Identity) (<-chan ChangeEvent, error)
}

type TaskService interface {
	ListTasks(ctx context.Context, identity domain.Identity) ([]domain.Task, error)
	CreateTask(ctx context.Context, identity domain.Identity, in domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, identity domain.Identity, taskID string, in domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, identity domain.Identity, taskID string) error
	CompleteTask(ctx context.Context, identity domain.Identity, taskID string) (domain.Task, error)
	// MoveTask applies a drag-and-drop date reassignment. The bool
	// reports whether a write happened; moving a task onto the day it
	// already occupies is a no-op.
	MoveTask(ctx context.Context, identity domain.Identity, taskID string, target time.Time) (domain.Task, bool, error)
}
