package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/smallnest/agentgraph/store"
)

// DBPool defines the interface for database connection pool
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements store.Store using PostgreSQL
type PostgresStore struct {
	pool      DBPool
	tableName string
}

// PostgresOptions configuration for Postgres connection
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "runs"
}

// NewPostgresStore creates a new Postgres run store
func NewPostgresStore(ctx context.Context, opts PostgresOptions) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "runs"
	}

	return &PostgresStore{
		pool:      pool,
		tableName: tableName,
	}, nil
}

// NewPostgresStoreWithPool creates a new Postgres run store with an existing pool
// Useful for testing with mocks
func NewPostgresStoreWithPool(pool DBPool, tableName string) *PostgresStore {
	if tableName == "" {
		tableName = "runs"
	}
	return &PostgresStore{
		pool:      pool,
		tableName: tableName,
	}
}

// InitSchema creates the necessary table if it doesn't exist
func (s *PostgresStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			task TEXT NOT NULL,
			state JSONB NOT NULL,
			history JSONB,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_session_id ON %s (session_id);
	`, s.tableName, s.tableName, s.tableName)

	_, err := s.pool.Exec(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Save stores a run, overwriting any existing run with the same ID
func (s *PostgresStore) Save(ctx context.Context, run *store.Run) error {
	if run == nil || run.ID == "" {
		return fmt.Errorf("run must have an ID")
	}

	stateJSON, err := json.Marshal(run.State)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	historyJSON, err := json.Marshal(run.History)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, session_id, task, state, history, created_at) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO UPDATE SET session_id = EXCLUDED.session_id, task = EXCLUDED.task, state = EXCLUDED.state, history = EXCLUDED.history, created_at = EXCLUDED.created_at`, s.tableName)

	_, err = s.pool.Exec(ctx, query,
		run.ID,
		run.SessionID,
		run.Task,
		stateJSON,
		historyJSON,
		run.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// Load retrieves a run by ID
func (s *PostgresStore) Load(ctx context.Context, runID string) (*store.Run, error) {
	query := fmt.Sprintf(`SELECT id, session_id, task, state, history, created_at FROM %s WHERE id = $1`, s.tableName)

	var run store.Run
	var stateJSON []byte
	var historyJSON []byte

	err := s.pool.QueryRow(ctx, query, runID).Scan(
		&run.ID,
		&run.SessionID,
		&run.Task,
		&stateJSON,
		&historyJSON,
		&run.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("run not found: %s", runID)
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	if err := json.Unmarshal(stateJSON, &run.State); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}

	if len(historyJSON) > 0 {
		if err := json.Unmarshal(historyJSON, &run.History); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history: %w", err)
		}
	}

	return &run, nil
}

// List returns all runs for a given session, oldest first
func (s *PostgresStore) List(ctx context.Context, sessionID string) ([]*store.Run, error) {
	query := fmt.Sprintf(`SELECT id, session_id, task, state, history, created_at FROM %s WHERE session_id = $1 ORDER BY created_at ASC`, s.tableName)

	rows, err := s.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*store.Run
	for rows.Next() {
		var run store.Run
		var stateJSON []byte
		var historyJSON []byte

		err := rows.Scan(
			&run.ID,
			&run.SessionID,
			&run.Task,
			&stateJSON,
			&historyJSON,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}

		if err := json.Unmarshal(stateJSON, &run.State); err != nil {
			return nil, fmt.Errorf("failed to unmarshal state: %w", err)
		}

		if len(historyJSON) > 0 {
			if err := json.Unmarshal(historyJSON, &run.History); err != nil {
				return nil, fmt.Errorf("failed to unmarshal history: %w", err)
			}
		}

		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	return runs, nil
}

// Delete removes a run
func (s *PostgresStore) Delete(ctx context.Context, runID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.tableName)
	_, err := s.pool.Exec(ctx, query, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

// Clear removes all runs for a session
func (s *PostgresStore) Clear(ctx context.Context, sessionID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE session_id = $1", s.tableName)
	_, err := s.pool.Exec(ctx, query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear runs: %w", err)
	}
	return nil
}
