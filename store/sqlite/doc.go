// Package sqlite provides a SQLite-backed run store using mattn/go-sqlite3.
//
// Runs are stored in a single table with JSON text columns for state and
// history. The schema is created automatically when the store is opened,
// so it works out of the box with a file path or ":memory:".
package sqlite
