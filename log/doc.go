// Package log provides the leveled logging capability used across
// agentgraph.
//
// The graph engine takes a Logger through an option and defaults to
// NoOpLogger, so traversal logic carries no implicit global dependency.
// DefaultLogger writes through Go's standard log package; GologLogger
// adapts a github.com/kataras/golog logger for users already on that
// stack:
//
//	glogger := golog.New()
//	logger := log.NewGologLogger(glogger)
//	logger.SetLevel(log.LevelDebug)
//
//	g := graph.New(graph.WithLogger(logger))
package log
