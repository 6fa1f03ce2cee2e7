package graph

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// runParallel executes every worker target of a parallel edge concurrently
// with the same state and task, waits for all branches to settle, and
// merges the outcome per the configured strategy.
//
// History is appended in branch completion order. With the default
// MergeLastResolved strategy the state of the branch that finished last
// wins, so later-resolving branches silently overwrite earlier ones; use
// MergeFirstDeclared or a Reducer when that hazard matters.
func (g *Graph) runParallel(ctx context.Context, runID string, e edge, state State, task string) (State, []Message, error) {
	for _, t := range e.targets {
		if !g.exists(t) {
			return nil, nil, fmt.Errorf("%w: parallel target %s", ErrUnknownNode, nodeName(t))
		}
	}

	settled := make(chan BranchResult, len(e.targets))
	var wg sync.WaitGroup
	var errMu sync.Mutex
	var firstErr error

	fail := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	launched := 0
	for i, t := range e.targets {
		w, ok := t.(Worker)
		if !ok {
			// Sentinels and junction strings carry no behavior.
			continue
		}
		launched++
		idx, branch := i, w

		SafeGo(&wg, func() {
			res, err := branch.Invoke(ctx, state, task)
			if err != nil {
				fail(fmt.Errorf("worker %q: %w", branch.Name(), err))
				return
			}
			if res == nil {
				fail(fmt.Errorf("worker %q: %w", branch.Name(), ErrMalformedResult))
				return
			}
			settled <- BranchResult{
				Worker:  branch,
				Index:   idx,
				State:   res.State,
				History: res.History,
			}
		}, func(panicVal any) {
			fail(fmt.Errorf("panic in worker %q: %v", branch.Name(), panicVal))
		})
	}

	wg.Wait()
	close(settled)

	if firstErr != nil {
		return nil, nil, firstErr
	}

	// Drain in completion order.
	results := make([]BranchResult, 0, launched)
	for br := range settled {
		results = append(results, br)
	}

	g.safeLog(func() {
		g.logger.Debug("run %s: %d parallel branches settled, converging on %s", runID, len(results), nodeName(e.next))
	})

	history := make([]Message, 0, len(results))
	for _, br := range results {
		history = append(history, br.History...)
	}

	merged, err := g.mergeBranches(state, results)
	if err != nil {
		return nil, nil, err
	}
	return merged, history, nil
}

// mergeBranches resolves the post-fan-out state per the configured
// strategy. results arrive in completion order.
func (g *Graph) mergeBranches(current State, results []BranchResult) (State, error) {
	switch g.merge {
	case MergeFirstDeclared:
		declared := make([]BranchResult, len(results))
		copy(declared, results)
		sort.SliceStable(declared, func(i, j int) bool {
			return declared[i].Index < declared[j].Index
		})
		for _, br := range declared {
			if br.State != nil {
				return br.State, nil
			}
		}
		return current, nil

	case MergeReduce:
		if g.reducer == nil {
			return nil, fmt.Errorf("merge strategy is MergeReduce but no reducer is set")
		}
		merged, err := g.reducer(current, results)
		if err != nil {
			return nil, fmt.Errorf("parallel merge: %w", err)
		}
		return merged, nil

	default: // MergeLastResolved
		for _, br := range results {
			if br.State != nil {
				current = br.State
			}
		}
		return current, nil
	}
}
