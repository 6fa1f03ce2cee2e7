package graph

import "errors"

var (
	// ErrInvalidNode is returned when a nil or unsupported value is used
	// as a node. Nodes are the Start/End sentinels, strings registered as
	// edge sources, or Worker values.
	ErrInvalidNode = errors.New("invalid node")

	// ErrDuplicateEdge is returned when an edge identical to one already
	// registered on the same source node is added again.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrNodeLimit is returned when adding an edge would exceed the
	// maximum number of source nodes.
	ErrNodeLimit = errors.New("node limit exceeded")

	// ErrEdgeLimit is returned when adding an edge would exceed the
	// per-node edge limit.
	ErrEdgeLimit = errors.New("edge limit exceeded")

	// ErrInvalidState is returned by Invoke when the initial state is nil.
	ErrInvalidState = errors.New("state must be a non-nil map")

	// ErrEmptyTask is returned by Invoke when the task is empty or blank.
	ErrEmptyTask = errors.New("task must be a non-empty string")

	// ErrUnknownNode is returned when traversal resolves to a node that
	// was never registered in the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrMalformedResult is returned when a worker returns a nil result
	// without an error.
	ErrMalformedResult = errors.New("malformed worker result")

	// ErrMaxIterations is returned when a traversal exceeds the iteration
	// ceiling, which usually indicates a circular dependency between
	// nodes.
	ErrMaxIterations = errors.New("max iterations exceeded, possible circular dependency")
)
