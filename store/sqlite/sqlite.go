package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/smallnest/agentgraph/store"
)

// SqliteStore implements store.Store using SQLite
type SqliteStore struct {
	db        *sql.DB
	tableName string
}

// SqliteOptions configuration for SQLite connection
type SqliteOptions struct {
	Path      string
	TableName string // Default "runs"
}

// NewSqliteStore creates a new SQLite run store. The schema is created
// on open if it does not exist.
func NewSqliteStore(opts SqliteOptions) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "runs"
	}

	s := &SqliteStore{
		db:        db,
		tableName: tableName,
	}

	if err := s.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// InitSchema creates the necessary table if it doesn't exist
func (s *SqliteStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			task TEXT NOT NULL,
			state TEXT NOT NULL,
			history TEXT,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_session_id ON %s (session_id);
	`, s.tableName, s.tableName, s.tableName)

	_, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

// Save stores a run, overwriting any existing run with the same ID
func (s *SqliteStore) Save(ctx context.Context, run *store.Run) error {
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

	query := fmt.Sprintf(`
		INSERT INTO %s (id, session_id, task, state, history, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			session_id = excluded.session_id,
			task = excluded.task,
			state = excluded.state,
			history = excluded.history,
			created_at = excluded.created_at
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
		run.ID,
		run.SessionID,
		run.Task,
		string(stateJSON),
		string(historyJSON),
		run.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	return nil
}

// Load retrieves a run by ID
func (s *SqliteStore) Load(ctx context.Context, runID string) (*store.Run, error) {
	query := fmt.Sprintf(`
		SELECT id, session_id, task, state, history, created_at
		FROM %s
		WHERE id = ?
	`, s.tableName)

	var run store.Run
	var stateJSON string
	var historyJSON string

	err := s.db.QueryRowContext(ctx, query, runID).Scan(
		&run.ID,
		&run.SessionID,
		&run.Task,
		&stateJSON,
		&historyJSON,
		&run.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run not found: %s", runID)
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	if err := json.Unmarshal([]byte(stateJSON), &run.State); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}

	if len(historyJSON) > 0 {
		if err := json.Unmarshal([]byte(historyJSON), &run.History); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history: %w", err)
		}
	}

	return &run, nil
}

// List returns all runs for a given session, oldest first
func (s *SqliteStore) List(ctx context.Context, sessionID string) ([]*store.Run, error) {
	query := fmt.Sprintf(`
		SELECT id, session_id, task, state, history, created_at
		FROM %s
		WHERE session_id = ?
		ORDER BY created_at ASC
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*store.Run
	for rows.Next() {
		var run store.Run
		var stateJSON string
		var historyJSON string

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

		if err := json.Unmarshal([]byte(stateJSON), &run.State); err != nil {
			return nil, fmt.Errorf("failed to unmarshal state: %w", err)
		}

		if len(historyJSON) > 0 {
			if err := json.Unmarshal([]byte(historyJSON), &run.History); err != nil {
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
func (s *SqliteStore) Delete(ctx context.Context, runID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ?", s.tableName)
	_, err := s.db.ExecContext(ctx, query, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

// Clear removes all runs for a session
func (s *SqliteStore) Clear(ctx context.Context, sessionID string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE session_id = ?", s.tableName)
	_, err := s.db.ExecContext(ctx, query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to clear runs: %w", err)
	}
	return nil
}
