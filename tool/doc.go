// Package tool provides ready-to-use tools for agent workers.
//
// Tools take a text input and produce a text output, matching the shape
// used by common LLM tool runtimes. The package currently ships two:
//
//   - WebPage fetches a URL and extracts readable text with goquery,
//     sanitized through bluemonday.
//   - Markdown renders markdown to sanitized HTML, or to plain text.
//
// Custom tools implement the Tool interface:
//
//	type Tool interface {
//		Name() string
//		Description() string
//		Call(ctx context.Context, input string) (string, error)
//	}
package tool
