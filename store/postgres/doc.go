// Package postgres provides a PostgreSQL-backed run store using pgx.
//
// Runs are stored in a single table with JSONB columns for state and
// history. Call InitSchema once after construction to create the table
// and the session index.
package postgres
