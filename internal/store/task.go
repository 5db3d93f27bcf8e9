package store

import (
	"context"

	"github.com/phrazzld/tasklog-api/internal/domain"
)

// TaskKey identifies a single task as seen by its owner.
// Every keyed TaskStore operation matches on both fields; an ID alone never
// selects a row.
type TaskKey struct {
	ID      int64
	OwnerID int64
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create inserts task and fills in its ID and timestamps.
	// Returns store.ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// Get retrieves the task matching key.
	// Returns ErrTaskNotFound if no task has that ID and owner.
	Get(ctx context.Context, key TaskKey) (*domain.Task, error)

	// ListRecentByOwner returns at most limit tasks of ownerID, newest ID first.
	ListRecentByOwner(ctx context.Context, ownerID int64, limit int) ([]*domain.Task, error)

	// ListByOwner returns every task of ownerID in ascending ID order.
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error)

	// Update applies patch to the task matching key in a single statement,
	// refreshes updated_at and returns the stored result.
	// Returns ErrTaskNotFound if no task has that ID and owner.
	Update(ctx context.Context, key TaskKey, patch domain.TaskPatch) (*domain.Task, error)

	// Delete permanently removes the task matching key.
	// Returns ErrTaskNotFound if no task has that ID and owner.
	Delete(ctx context.Context, key TaskKey) error
}
