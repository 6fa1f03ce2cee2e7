// AgentGraph - Building Multi-Agent Workflows as Graphs in Go
//
// AgentGraph is a toolkit for orchestrating LLM agents as directed graphs.
// Workers (agents or plain functions) are nodes; direct, conditional and
// parallel edges decide what runs next; a shared state map threads through
// the traversal and every worker's messages accumulate into a history.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/smallnest/agentgraph
//
// Basic example:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//
//		"github.com/smallnest/agentgraph/graph"
//		"github.com/smallnest/agentgraph/prebuilt"
//		"github.com/smallnest/agentgraph/state"
//		"github.com/smallnest/agentgraph/worker"
//	)
//
//	func main() {
//		model := worker.NewOpenAIModel("sk-...", "")
//
//		outliner, _ := worker.NewAgent("outliner", model,
//			worker.WithInstructions("Outline the requested article."))
//		drafter, _ := worker.NewAgent("drafter", model,
//			worker.WithInstructions("Write the article from the outline."),
//			worker.WithStateInjection("replies.outliner"))
//
//		pipe, _ := prebuilt.NewPipe("writer",
//			[]graph.Worker{outliner, drafter})
//
//		result, _ := pipe.Invoke(context.Background(), graph.State{},
//			"Write a short article about content-addressable storage.")
//		fmt.Println(state.GetString(result.State, "replies.drafter"))
//	}
//
// # Packages
//
//   - graph: the execution engine (nodes, edges, traversal, fan-out,
//     validation, Mermaid export)
//   - worker: the Agent worker and model adapters (OpenAI, langchaingo)
//   - prebuilt: ready-made architectures (Pipe, Team, Vote)
//   - state: dot-path state helpers, predicates, routing, prompt injection
//   - store: run archives (memory, Redis, PostgreSQL, SQLite)
//   - tool: text-in/text-out tools for agents (web page, markdown)
//   - log: the logging capability injected into graphs
package agentgraph
