package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasklog-api/internal/platform/postgres"
	"github.com/phrazzld/tasklog-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func newPgError(code string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "tasks",
		ColumnName:     "title",
		ConstraintName: "tasks_title_check",
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain failure")

	tests := []struct {
		name    string
		err     error
		wantIs  error
		wantMsg string
	}{
		{name: "no rows", err: sql.ErrNoRows, wantIs: store.ErrNotFound},
		{name: "unique violation", err: newPgError("23505"), wantIs: store.ErrDuplicate},
		{name: "foreign key violation", err: newPgError("23503"), wantIs: store.ErrInvalidEntity, wantMsg: "tasks_title_check"},
		{name: "check violation", err: newPgError("23514"), wantIs: store.ErrInvalidEntity, wantMsg: "tasks_title_check"},
		{name: "not null violation", err: newPgError("23502"), wantIs: store.ErrInvalidEntity, wantMsg: "column title"},
		{name: "wrapped pg error", err: fmt.Errorf("insert: %w", newPgError("23505")), wantIs: store.ErrDuplicate},
		{name: "unknown pg code", err: newPgError("40001"), wantIs: nil},
		{name: "non-database error", err: plain, wantIs: plain},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := postgres.MapError(tt.err)
			if tt.wantIs != nil {
				assert.ErrorIs(t, got, tt.wantIs)
			} else {
				assert.Same(t, tt.err, got)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, got.Error(), tt.wantMsg)
			}
		})
	}

	assert.NoError(t, postgres.MapError(nil))
}

func TestViolationHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(newPgError("23505")))
	assert.False(t, postgres.IsUniqueViolation(newPgError("23503")))
	assert.True(t, postgres.IsForeignKeyViolation(fmt.Errorf("wrap: %w", newPgError("23503"))))
	assert.False(t, postgres.IsForeignKeyViolation(errors.New("23503")))
	assert.False(t, postgres.IsUniqueViolation(nil))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	notFound := errors.New("thing not found")

	assert.NoError(t, postgres.CheckRowsAffected(sqlmock.NewResult(0, 1), notFound))
	assert.ErrorIs(t, postgres.CheckRowsAffected(sqlmock.NewResult(0, 0), notFound), notFound)
	assert.Error(t, postgres.CheckRowsAffected(nil, notFound))

	failing := sqlmock.NewErrorResult(errors.New("driver exploded"))
	err := postgres.CheckRowsAffected(failing, notFound)
	assert.ErrorContains(t, err, "driver exploded")
	assert.NotErrorIs(t, err, notFound)
}
