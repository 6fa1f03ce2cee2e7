// Package prebuilt provides the composite architectures built on the
// graph engine: Pipe (linear chain), Team (supervisor star) and Vote
// (parallel ensemble). Each builder assembles one particular graph shape
// and delegates all execution semantics to package graph; each composite
// is itself a graph.Worker, so architectures nest freely.
package prebuilt
