// Package worker provides concrete implementations of the graph.Worker
// contract: Agent, the single model-call unit, plus provider adapters for
// langchaingo models and the go-openai client. Composite workers (chains,
// supervisor teams, vote ensembles) live in package prebuilt.
package worker
