package api

import (
	"time"

	"github.com/phrazzld/tasklog-api/internal/domain"
)

// TokenRequest defines the payload for the token endpoint. Both fields are
// checked by the token issuer: the username before the password.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries the signed access token. The capitalised key is
// part of the public contract.
type TokenResponse struct {
	Token string `json:"Token"`
}

// CreateTaskRequest defines the payload for creating a task. Pointers
// distinguish a missing duration from an explicit zero.
type CreateTaskRequest struct {
	Title    *string `json:"title"    validate:"required"`
	Duration *int    `json:"duration" validate:"required"`
}

// UpdateTaskRequest defines the payload for a partial task update.
// Absent fields are left unchanged.
type UpdateTaskRequest struct {
	Title    *string `json:"title,omitempty"`
	Duration *int    `json:"duration,omitempty"`
}

// Patch converts the request into a domain patch.
func (r UpdateTaskRequest) Patch() domain.TaskPatch {
	return domain.TaskPatch{Title: r.Title, Duration: r.Duration}
}

// TaskResponse is the public representation of a task.
// The owner is never exposed.
type TaskResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Duration  int       `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Title:     task.Title,
		Duration:  task.Duration,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}
