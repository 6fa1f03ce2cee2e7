// Package store defines the run-archive contract and its Run record.
// Backends live in the subpackages memory, redis, postgres and sqlite.
package store
