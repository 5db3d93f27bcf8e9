package mocks_test

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/tasklog-api/internal/domain"
	"github.com/phrazzld/tasklog-api/internal/mocks"
	"github.com/phrazzld/tasklog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTaskStoreHonoursOwnership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := mocks.NewMockTaskStore()

	task := &domain.Task{UserID: 1, Title: "Mine", Duration: 5}
	require.NoError(t, s.Create(ctx, task))

	_, err := s.Get(ctx, store.TaskKey{ID: task.ID, OwnerID: 2})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	title := "Stolen"
	_, err = s.Update(ctx, store.TaskKey{ID: task.ID, OwnerID: 2}, domain.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	assert.ErrorIs(t, s.Delete(ctx, store.TaskKey{ID: task.ID, OwnerID: 2}), store.ErrTaskNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestMockTaskStoreUpdatedAtAdvances(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	frozen := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := mocks.NewMockTaskStore()
	s.Now = func() time.Time { return frozen }

	task := &domain.Task{UserID: 1, Title: "Mine", Duration: 5}
	require.NoError(t, s.Create(ctx, task))

	duration := 6
	updated, err := s.Update(ctx, store.TaskKey{ID: task.ID, OwnerID: 1}, domain.TaskPatch{Duration: &duration})
	require.NoError(t, err)

	assert.True(t, updated.UpdatedAt.After(task.UpdatedAt))
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "Mine", updated.Title)
}
