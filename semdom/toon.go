package semdom

import (
	"fmt"
	"strings"
)

// TOONOptions tunes the compact serializer.
type TOONOptions struct {
	// Selectors adds a sel: line per node that carries one.
	Selectors bool
}

// EncodeTOON renders a document in the compact line-oriented format. The
// format trades machine-parseability niceties for token count: one line per
// node, two-space indentation, no quoting beyond labels.
func EncodeTOON(doc *Document, opts TOONOptions) string {
	var b strings.Builder
	b.WriteString("v:" + doc.Version + "\n")
	b.WriteString("std:" + doc.Standard + "\n")
	if doc.URL != "" {
		b.WriteString("url:" + doc.URL + "\n")
	}
	if doc.Title != "" {
		b.WriteString("title:" + doc.Title + "\n")
	}
	if doc.Language != "" {
		b.WriteString("lang:" + doc.Language + "\n")
	}
	fmt.Fprintf(&b, "ts:%d\n", doc.GeneratedAt)
	if c := doc.Certification; c != nil {
		b.WriteString("cert:\n")
		fmt.Fprintf(&b, "  level:%s\n", c.Level)
		fmt.Fprintf(&b, "  score:%.1f\n", c.Score)
	}
	b.WriteString("root:\n")
	doc.Walk(func(_ NodeID, n *SemanticNode, depth int) bool {
		indent := strings.Repeat("  ", depth+1)
		b.WriteString(indent)
		b.WriteString(nodeLine(n))
		b.WriteByte('\n')
		if n.A11y.Focusable || n.A11y.Level > 0 {
			b.WriteString(indent + "  a11y:")
			if n.A11y.Focusable {
				b.WriteString(" focusable")
			}
			if n.A11y.InTabOrder {
				b.WriteString(" tab")
			}
			if n.A11y.Level > 0 {
				fmt.Fprintf(&b, " L%d", n.A11y.Level)
			}
			b.WriteByte('\n')
		}
		if opts.Selectors && n.Selector != "" {
			b.WriteString(indent + "  sel: " + n.Selector + "\n")
		}
		return true
	})
	if len(doc.Landmarks) > 0 {
		b.WriteString("landmarks:\n")
		for _, n := range doc.LandmarkNodes() {
			b.WriteString("  - " + nodeLine(n) + "\n")
		}
	}
	if len(doc.Interactables) > 0 {
		b.WriteString("interactables:\n")
		for _, n := range doc.InteractableNodes() {
			b.WriteString("  - " + nodeLine(n) + "\n")
		}
	}
	return b.String()
}

// nodeLine is the single-line form of a node: id role "label" ->intent [state].
// Idle state and empty intent are omitted.
func nodeLine(n *SemanticNode) string {
	var b strings.Builder
	b.WriteString(string(n.ID))
	b.WriteByte(' ')
	b.WriteString(string(n.Role))
	if n.Label != "" {
		b.WriteString(` "` + escapeLabel(n.Label) + `"`)
	}
	if n.Intent != "" {
		b.WriteString(" ->" + string(n.Intent))
	}
	if n.State != StateIdle {
		b.WriteString(" [" + string(n.State) + "]")
	}
	return b.String()
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// EstimateTokens approximates the LLM token cost of a string. Four bytes
// per token is the usual rule of thumb for English text.
func EstimateTokens(s string) int {
	return (len(s) + 3) / 4
}
