//go:build integration

// Package testdb provides helpers for integration tests that run against a
// real PostgreSQL database.
//
// Tests are skipped unless DATABASE_URL (or TASKLOG_TEST_DATABASE_URL) is
// set. The schema is brought up to date with the embedded goose migrations
// once per process, and each test runs inside a transaction that is rolled
// back when the test ends:
//
//	db := testdb.Open(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		owner := testdb.CreateUser(t, tx, "alice")
//		tasks := postgres.NewPostgresTaskStore(tx, nil)
//		...
//	})
package testdb
