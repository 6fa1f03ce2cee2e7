package graph

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Exporter renders a graph's edge map in human-readable formats.
type Exporter struct {
	graph *Graph
}

// NewExporter creates an exporter for the given graph.
func NewExporter(g *Graph) *Exporter {
	return &Exporter{graph: g}
}

// MermaidOptions configures Mermaid diagram generation.
type MermaidOptions struct {
	// Direction of the flowchart, e.g. "TD" or "LR".
	Direction string
}

// DrawMermaid generates a top-down Mermaid flowchart of the graph.
func (ex *Exporter) DrawMermaid() string {
	return ex.DrawMermaidWithOptions(MermaidOptions{Direction: "TD"})
}

// DrawMermaidWithOptions generates a Mermaid flowchart with custom
// options. Conditional edges are drawn dashed, parallel fan-outs carry a
// "fan-out"/"join" label.
func (ex *Exporter) DrawMermaidWithOptions(opts MermaidOptions) string {
	direction := opts.Direction
	if direction == "" {
		direction = "TD"
	}

	ids := ex.nodeIDs()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("flowchart %s\n", direction))
	sb.WriteString("    START([\"START\"])\n")
	sb.WriteString("    style START fill:#90EE90\n")
	sb.WriteString("    END([\"END\"])\n")
	sb.WriteString("    style END fill:#FFB6C1\n")

	// Declare non-sentinel nodes in registration order.
	for _, n := range ex.graph.sources {
		if n == Start || n == End {
			continue
		}
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", ids[n], nodeName(n)))
	}

	for _, from := range ex.graph.sources {
		for _, e := range ex.graph.edges[from] {
			switch e.kind {
			case edgeDirect:
				ex.declareTarget(&sb, ids, e.to)
				sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids[from], ids[e.to]))
			case edgeConditional:
				// Conditional targets are only known at traversal
				// time; render a decision marker instead.
				decision := ids[from] + "_cond"
				sb.WriteString(fmt.Sprintf("    %s{\"?\"}\n", decision))
				sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", ids[from], decision))
			case edgeParallel:
				for _, t := range e.targets {
					ex.declareTarget(&sb, ids, t)
					sb.WriteString(fmt.Sprintf("    %s -->|fan-out| %s\n", ids[from], ids[t]))
					ex.declareTarget(&sb, ids, e.next)
					sb.WriteString(fmt.Sprintf("    %s -->|join| %s\n", ids[t], ids[e.next]))
				}
			}
		}
	}

	return sb.String()
}

// declareTarget emits a node declaration for targets that never appear as
// sources, so Mermaid still renders them with their worker name.
func (ex *Exporter) declareTarget(sb *strings.Builder, ids map[Node]string, n Node) {
	if n == Start || n == End {
		return
	}
	if _, ok := ids[n]; ok {
		return
	}
	ids[n] = fmt.Sprintf("n%d", len(ids))
	sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", ids[n], nodeName(n)))
}

// nodeIDs assigns stable Mermaid identifiers to registered sources.
func (ex *Exporter) nodeIDs() map[Node]string {
	ids := make(map[Node]string, len(ex.graph.sources)+2)
	ids[Node(Start)] = "START"
	ids[Node(End)] = "END"
	for _, n := range ex.graph.sources {
		if _, ok := ids[n]; !ok {
			ids[n] = fmt.Sprintf("n%d", len(ids))
		}
	}
	return ids
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sourceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	edgeKindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Describe renders a lipgloss-styled terminal summary of the edge map,
// one line per edge in registration order.
func (ex *Exporter) Describe() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("graph"))
	sb.WriteString(fmt.Sprintf(" (%d source nodes)\n", len(ex.graph.sources)))

	for _, from := range ex.graph.sources {
		for _, e := range ex.graph.edges[from] {
			sb.WriteString("  ")
			sb.WriteString(sourceStyle.Render(nodeName(from)))
			sb.WriteString(" ")
			sb.WriteString(edgeKindStyle.Render("[" + e.kind.String() + "]"))
			switch e.kind {
			case edgeDirect:
				sb.WriteString(" -> " + nodeName(e.to))
			case edgeConditional:
				sb.WriteString(" -> ?")
			case edgeParallel:
				names := make([]string, len(e.targets))
				for i, t := range e.targets {
					names[i] = nodeName(t)
				}
				sb.WriteString(" -> {" + strings.Join(names, ", ") + "} -> " + nodeName(e.next))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
