package graph

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Request carries the inputs of a traversal.
type Request struct {
	// State is the initial state. It must be non-nil.
	State State

	// Task is the instruction handed to every invoked worker. It must be
	// a non-blank string.
	Task string

	// StartNode is where traversal begins. Nil means the Start sentinel.
	// It must be the Start/End sentinel or a registered source node.
	StartNode Node
}

// Response is the outcome of a successful traversal.
type Response struct {
	// State is the final state after the last adopted worker result.
	State State

	// History is the concatenation of every visited worker's messages in
	// visitation order.
	History []Message
}

// Invoke walks the graph from the start node, threading state through
// worker invocations along edges until it reaches End, a dead end, or a
// failure. Only one traversal runs at a time per Graph instance;
// concurrent calls queue.
//
// There is no partial success: either the whole traversal returns a
// Response, or it returns an error.
func (g *Graph) Invoke(ctx context.Context, req Request) (*Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if req.State == nil {
		return nil, ErrInvalidState
	}
	if strings.TrimSpace(req.Task) == "" {
		return nil, ErrEmptyTask
	}
	start := req.StartNode
	if start == nil {
		start = Start
	}
	if err := validNode(start); err != nil {
		return nil, fmt.Errorf("start node: %w", err)
	}
	if !g.exists(start) || (!g.isSource(start) && start != Start && start != End) {
		return nil, fmt.Errorf("%w: start node %s is not registered", ErrUnknownNode, nodeName(start))
	}

	runID := uuid.NewString()
	g.safeLog(func() {
		g.logger.Debug("run %s: starting at %s", runID, nodeName(start))
	})

	state := req.State
	history := make([]Message, 0, 8)
	visited := make(map[Node]int)
	current := start
	steps := 0

	for current != End {
		steps++
		if steps > g.maxIters {
			return nil, fmt.Errorf("%w: %d steps, stuck at %s", ErrMaxIterations, steps-1, nodeName(current))
		}

		if w, ok := current.(Worker); ok {
			res, err := g.invokeWorker(ctx, runID, w, state, req.Task)
			if err != nil {
				return nil, err
			}
			if res.State != nil {
				state = res.State
			}
			history = append(history, res.History...)
		}
		visited[current]++

		edges := g.edges[current]
		if len(edges) == 0 {
			// Dead end: traversal simply stops with what has
			// accumulated so far.
			g.safeLog(func() {
				g.logger.Debug("run %s: no outgoing edges from %s, stopping", runID, nodeName(current))
			})
			break
		}

		next, taken, err := g.followEdges(ctx, runID, edges, &state, &history, req.Task)
		if err != nil {
			return nil, err
		}
		if !taken {
			// No edge yielded a target: same as reaching End.
			break
		}
		if !g.exists(next) {
			return nil, fmt.Errorf("%w: %s routed to %s", ErrUnknownNode, nodeName(current), nodeName(next))
		}
		g.safeLog(func() {
			g.logger.Debug("run %s: %s -> %s", runID, nodeName(current), nodeName(next))
		})
		current = next
	}

	g.safeLog(func() {
		g.logger.Debug("run %s: finished after %d steps, %d messages", runID, steps, len(history))
	})
	return &Response{State: state, History: history}, nil
}

// followEdges evaluates the edge list in insertion order and takes the
// first edge that yields a target. Parallel edges run their fan-out here;
// state and history are updated in place for them.
func (g *Graph) followEdges(ctx context.Context, runID string, edges []edge, state *State, history *[]Message, task string) (Node, bool, error) {
	for _, e := range edges {
		switch e.kind {
		case edgeDirect:
			return e.to, true, nil

		case edgeConditional:
			if target := e.cond(*state); target != nil {
				return target, true, nil
			}

		case edgeParallel:
			merged, branchHistory, err := g.runParallel(ctx, runID, e, *state, task)
			if err != nil {
				return nil, false, err
			}
			*state = merged
			*history = append(*history, branchHistory...)
			return e.next, true, nil
		}
	}
	return nil, false, nil
}

// invokeWorker calls a worker and normalizes its failure modes.
func (g *Graph) invokeWorker(ctx context.Context, runID string, w Worker, state State, task string) (*Result, error) {
	g.safeLog(func() {
		g.logger.Debug("run %s: invoking worker %s", runID, w.Name())
	})
	res, err := w.Invoke(ctx, state, task)
	if err != nil {
		return nil, fmt.Errorf("worker %q: %w", w.Name(), err)
	}
	if res == nil {
		return nil, fmt.Errorf("worker %q: %w", w.Name(), ErrMalformedResult)
	}
	return res, nil
}
