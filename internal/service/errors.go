package service

import "errors"

// Sentinels returned by the services for expected conditions. Anything else
// is wrapped, e.g. in a *TaskServiceError.
var (
	// ErrTaskNotFound is returned for a missing task and for a task owned by
	// someone else alike.
	ErrTaskNotFound = errors.New("task not found")

	ErrUserNotFound = errors.New("user not found")
)
