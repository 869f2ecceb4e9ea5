// Package testdb provides helpers for database integration tests.
//
// Tests that need PostgreSQL call GetTestDBWithT, which skips the test when
// DATABASE_URL (or FLASHDECK_TEST_DB_URL) is unset and otherwise returns a
// connection with the embedded migrations applied. WithTx gives each test its
// own transaction that is always rolled back, so tests can run in parallel
// against one database.
package testdb
