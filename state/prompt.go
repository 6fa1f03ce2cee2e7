package state

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smallnest/agentgraph/graph"
)

// InjectJSON renders selected state paths as a fenced JSON block suitable
// for appending to a prompt. With no paths, the whole state is rendered.
// Values that cannot be marshaled are rendered with %v as a fallback.
func InjectJSON(s graph.State, paths ...string) string {
	var payload any
	if len(paths) == 0 {
		payload = map[string]any(s)
	} else {
		selected := make(map[string]any, len(paths))
		for _, p := range paths {
			if v, ok := Get(s, p); ok {
				selected[p] = v
			}
		}
		payload = selected
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Sprintf("```\n%v\n```", payload)
	}
	return "```json\n" + string(data) + "\n```"
}

// InjectHistory renders the tail of a message history as plain prompt
// lines, newest last. A non-positive limit keeps everything.
func InjectHistory(history []graph.Message, limit int) string {
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, fmt.Sprintf("%s (%s): %s", m.Name, m.Role, m.Content))
	}
	return strings.Join(lines, "\n")
}
