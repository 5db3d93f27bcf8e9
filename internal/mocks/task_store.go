package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/tasklog-api/internal/domain"
	"github.com/phrazzld/tasklog-api/internal/store"
)

// MockTaskStore is an in-memory store.TaskStore. Every keyed operation
// matches on both ID and owner, like the PostgreSQL store.
type MockTaskStore struct {
	// Err, when set, is returned by every operation.
	Err error

	// Now supplies timestamps. Defaults to time.Now in UTC.
	Now func() time.Time

	mu     sync.Mutex
	tasks  map[int64]*domain.Task
	nextID int64
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty store whose first ID is 1.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks:  make(map[int64]*domain.Task),
		nextID: 1,
	}
}

func (m *MockTaskStore) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now().UTC()
}

// Create implements store.TaskStore.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.Err != nil {
		return m.Err
	}
	if err := task.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	task.ID = m.nextID
	task.CreatedAt = now
	task.UpdatedAt = now
	m.nextID++

	stored := *task
	m.tasks[stored.ID] = &stored
	return nil
}

// Get implements store.TaskStore.
func (m *MockTaskStore) Get(ctx context.Context, key store.TaskKey) (*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.lookup(key)
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	c := *t
	return &c, nil
}

// ListRecentByOwner implements store.TaskStore.
func (m *MockTaskStore) ListRecentByOwner(ctx context.Context, ownerID int64, limit int) ([]*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	tasks := m.owned(ownerID)
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID > tasks[j].ID })
	if len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

// ListByOwner implements store.TaskStore.
func (m *MockTaskStore) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	tasks := m.owned(ownerID)
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// Update implements store.TaskStore.
func (m *MockTaskStore) Update(ctx context.Context, key store.TaskKey, patch domain.TaskPatch) (*domain.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.lookup(key)
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	now := m.now()
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Microsecond)
	}
	patch.ApplyTo(t, now)

	c := *t
	return &c, nil
}

// Delete implements store.TaskStore.
func (m *MockTaskStore) Delete(ctx context.Context, key store.TaskKey) error {
	if m.Err != nil {
		return m.Err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.lookup(key); !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, key.ID)
	return nil
}

// Len returns the number of stored tasks across all owners.
func (m *MockTaskStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

func (m *MockTaskStore) lookup(key store.TaskKey) (*domain.Task, bool) {
	t, ok := m.tasks[key.ID]
	if !ok || t.UserID != key.OwnerID {
		return nil, false
	}
	return t, true
}

func (m *MockTaskStore) owned(ownerID int64) []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := make([]*domain.Task, 0)
	for _, t := range m.tasks {
		if t.UserID == ownerID {
			c := *t
			tasks = append(tasks, &c)
		}
	}
	return tasks
}
