// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package, together with the
// goose migrations that own the schema. Every task statement is parameterized
// and filtered by both task id and owner id.
package postgres
