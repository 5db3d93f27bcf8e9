package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/tasklog-api/internal/domain"
	"github.com/phrazzld/tasklog-api/internal/mocks"
	"github.com/phrazzld/tasklog-api/internal/service"
	"github.com/phrazzld/tasklog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService(t *testing.T) (service.TaskService, *mocks.MockTaskStore) {
	t.Helper()
	tasks := mocks.NewMockTaskStore()
	svc, err := service.NewTaskService(tasks, nil)
	require.NoError(t, err)
	return svc, tasks
}

func TestNewTaskServiceRequiresStore(t *testing.T) {
	t.Parallel()
	_, err := service.NewTaskService(nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTaskService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("valid task", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService(t)

		task, err := svc.Create(ctx, 1, "Write report", 45)

		require.NoError(t, err)
		assert.Positive(t, task.ID)
		assert.Equal(t, int64(1), task.UserID)
		assert.Equal(t, "Write report", task.Title)
		assert.Equal(t, 45, task.Duration)
		assert.False(t, task.CreatedAt.IsZero())
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	})

	t.Run("invalid input reports every field", func(t *testing.T) {
		t.Parallel()
		svc, tasks := newTaskService(t)

		_, err := svc.Create(ctx, 1, "", -1)

		require.ErrorIs(t, err, domain.ErrValidation)
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "title")
		assert.Contains(t, verr.Fields, "duration")
		assert.Zero(t, tasks.Len())
	})

	t.Run("zero duration is allowed", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService(t)

		task, err := svc.Create(ctx, 1, "Quick check", 0)

		require.NoError(t, err)
		assert.Zero(t, task.Duration)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		t.Parallel()
		svc, tasks := newTaskService(t)
		tasks.Err = errors.New("disk full")

		_, err := svc.Create(ctx, 1, "Anything", 1)

		var svcErr *service.TaskServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "create", svcErr.Operation)
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestTaskService_ListRecentReturnsFourNewest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTaskService(t)

	for i := 1; i <= 5; i++ {
		_, err := svc.Create(ctx, 1, fmt.Sprintf("Task %d", i), i*10)
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, 2, "Someone else's", 1)
	require.NoError(t, err)

	tasks, err := svc.ListRecent(ctx, 1)

	require.NoError(t, err)
	require.Len(t, tasks, service.RecentTaskLimit)
	titles := make([]string, 0, len(tasks))
	for _, task := range tasks {
		titles = append(titles, task.Title)
		assert.Equal(t, int64(1), task.UserID)
	}
	assert.Equal(t, []string{"Task 5", "Task 4", "Task 3", "Task 2"}, titles)
}

func TestTaskService_ListRecentEmpty(t *testing.T) {
	t.Parallel()
	svc, _ := newTaskService(t)

	tasks, err := svc.ListRecent(context.Background(), 1)

	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskService_ListByOwner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTaskService(t)

	for i := 1; i <= 6; i++ {
		_, err := svc.Create(ctx, 1, fmt.Sprintf("Task %d", i), i)
		require.NoError(t, err)
	}

	tasks, err := svc.ListByOwner(ctx, 1)

	require.NoError(t, err)
	require.Len(t, tasks, 6)
	assert.Equal(t, "Task 1", tasks[0].Title)
	assert.Equal(t, "Task 6", tasks[5].Title)
}

func TestTaskService_OtherUsersTasksAreNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, tasks := newTaskService(t)

	owned, err := svc.Create(ctx, 1, "Private", 30)
	require.NoError(t, err)

	_, err = svc.Get(ctx, 2, owned.ID)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)

	title := "Hijacked"
	_, err = svc.Update(ctx, 2, owned.ID, domain.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, service.ErrTaskNotFound)

	err = svc.Delete(ctx, 2, owned.ID)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)

	got, err := svc.Get(ctx, 1, owned.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)
	assert.Equal(t, 1, tasks.Len())
}

func TestTaskService_GetMissing(t *testing.T) {
	t.Parallel()
	svc, _ := newTaskService(t)

	_, err := svc.Get(context.Background(), 1, 999)

	assert.ErrorIs(t, err, service.ErrTaskNotFound)
	assert.NotErrorIs(t, err, store.ErrTaskNotFound, "store errors must not leak past the service")
}

func TestTaskService_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("title only keeps duration", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService(t)
		created, err := svc.Create(ctx, 1, "Draft", 30)
		require.NoError(t, err)

		title := "Final"
		updated, err := svc.Update(ctx, 1, created.ID, domain.TaskPatch{Title: &title})

		require.NoError(t, err)
		assert.Equal(t, "Final", updated.Title)
		assert.Equal(t, 30, updated.Duration)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	})

	t.Run("duration only keeps title", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService(t)
		created, err := svc.Create(ctx, 1, "Draft", 30)
		require.NoError(t, err)

		duration := 90
		updated, err := svc.Update(ctx, 1, created.ID, domain.TaskPatch{Duration: &duration})

		require.NoError(t, err)
		assert.Equal(t, "Draft", updated.Title)
		assert.Equal(t, 90, updated.Duration)
	})

	t.Run("invalid field leaves task untouched", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService(t)
		created, err := svc.Create(ctx, 1, "Draft", 30)
		require.NoError(t, err)

		negative := -5
		_, err = svc.Update(ctx, 1, created.ID, domain.TaskPatch{Duration: &negative})
		assert.ErrorIs(t, err, domain.ErrValidation)

		got, err := svc.Get(ctx, 1, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 30, got.Duration)
	})
}

func TestTaskService_DeleteThenGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTaskService(t)

	created, err := svc.Create(ctx, 1, "Temporary", 5)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1, created.ID))

	_, err = svc.Get(ctx, 1, created.ID)
	assert.ErrorIs(t, err, service.ErrTaskNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 1, created.ID), service.ErrTaskNotFound)
}

func TestNewTaskServiceError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, service.NewTaskServiceError("get", "x", nil))
	assert.Same(t, service.ErrTaskNotFound, service.NewTaskServiceError("get", "x", store.ErrTaskNotFound))
	assert.Same(t, service.ErrTaskNotFound,
		service.NewTaskServiceError("update", "x", fmt.Errorf("lookup: %w", store.ErrNotFound)))

	verr := domain.NewValidationError("title", "is required")
	assert.Equal(t, error(verr), service.NewTaskServiceError("create", "x", verr))

	cause := errors.New("boom")
	err := service.NewTaskServiceError("delete", "failed to delete task", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "task service delete failed: failed to delete task: boom", err.Error())
}
