package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/smallnest/agentgraph/graph"
)

// Run is an archived traversal: the task that was asked, the final state
// and the full message history. Runs are grouped by session so a caller
// can replay a conversation's workflow outcomes.
type Run struct {
	ID        string          `json:"id"`
	SessionID string          `json:"session_id"`
	Task      string          `json:"task"`
	State     graph.State     `json:"state"`
	History   []graph.Message `json:"history"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewRun packages a finished traversal response for archiving.
func NewRun(sessionID, task string, resp *graph.Response) *Run {
	r := &Run{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Task:      task,
		CreatedAt: time.Now(),
	}
	if resp != nil {
		r.State = resp.State
		r.History = resp.History
	}
	return r
}

// Store persists completed runs. Persisting in-flight traversals is out
// of scope; a run is written once, after its graph invocation resolved.
type Store interface {
	// Save stores a run.
	Save(ctx context.Context, run *Run) error

	// Load retrieves a run by ID.
	Load(ctx context.Context, runID string) (*Run, error)

	// List returns all runs of a session, oldest first.
	List(ctx context.Context, sessionID string) ([]*Run, error)

	// Delete removes a run.
	Delete(ctx context.Context, runID string) error
}
