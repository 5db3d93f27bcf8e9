package domain

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxTitleLength is the maximum number of characters in a task title.
	MaxTitleLength = 255

	// MaxDuration is the largest duration, in minutes, the store can hold.
	MaxDuration = math.MaxInt32
)

// Task is a unit of work tracked by a single owner.
// The owner is fixed at creation and never exposed over the API.
type Task struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Title     string    `json:"title"`
	Duration  int       `json:"duration"` // minutes
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTask creates an unsaved Task owned by userID.
// ID and timestamps are assigned by the store.
func NewTask(userID int64, title string, duration int) (*Task, error) {
	task := &Task{
		UserID:   userID,
		Title:    title,
		Duration: duration,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns a *ValidationError describing every invalid field.
func (t *Task) Validate() error {
	verr := &ValidationError{}

	if t.UserID <= 0 {
		verr.Add("user_id", "is required")
	}
	if reason, ok := checkTitle(t.Title); !ok {
		verr.Add("title", reason)
	}
	if reason, ok := checkDuration(t.Duration); !ok {
		verr.Add("duration", reason)
	}

	return verr.orNil()
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title    *string
	Duration *int
}

// Validate checks the supplied fields only.
func (p TaskPatch) Validate() error {
	verr := &ValidationError{}

	if p.Title != nil {
		if reason, ok := checkTitle(*p.Title); !ok {
			verr.Add("title", reason)
		}
	}
	if p.Duration != nil {
		if reason, ok := checkDuration(*p.Duration); !ok {
			verr.Add("duration", reason)
		}
	}

	return verr.orNil()
}

// ApplyTo copies the supplied fields onto t and stamps UpdatedAt with now.
func (p TaskPatch) ApplyTo(t *Task, now time.Time) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Duration != nil {
		t.Duration = *p.Duration
	}
	t.UpdatedAt = now
}

func checkTitle(title string) (string, bool) {
	if strings.TrimSpace(title) == "" {
		return "is required", false
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "must be at most 255 characters", false
	}
	return "", true
}

func checkDuration(duration int) (string, bool) {
	if duration < 0 {
		return "must be zero or greater", false
	}
	if duration > MaxDuration {
		return "is too large", false
	}
	return "", true
}
