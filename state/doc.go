// Package state provides the small glue primitives used around the graph
// engine: dot-path access and copy-on-write mutation over the shared
// state map, field predicates for routing decisions, the supervisor
// router field, and prompt-injection snippets.
package state
