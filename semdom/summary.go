package semdom

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OneLiner compresses a document to a single line for contexts where every
// token counts: truncated title, up to three landmark roles, up to three
// interactable actions.
func OneLiner(doc *Document) string {
	var parts []string
	if doc.Title != "" {
		parts = append(parts, truncate(doc.Title, 30))
	}
	var lms []string
	for _, n := range doc.LandmarkNodes() {
		if len(lms) == 3 {
			break
		}
		lms = append(lms, n.Role.Abbrev())
	}
	if len(lms) > 0 {
		parts = append(parts, strings.Join(lms, "+"))
	}
	var acts []string
	for _, n := range doc.InteractableNodes() {
		if len(acts) == 3 {
			break
		}
		label := n.Label
		if label == "" {
			label = string(n.ID)
		}
		acts = append(acts, n.Role.Abbrev()+":"+truncate(label, 10))
	}
	if len(acts) > 0 {
		parts = append(parts, strings.Join(acts, " "))
	}
	if len(parts) == 0 {
		return "empty page"
	}
	return strings.Join(parts, " | ")
}

// AgentSummary renders the page as the short sectioned digest agents read
// before deciding on an action.
func AgentSummary(doc *Document) string {
	var b strings.Builder
	b.WriteString("PAGE: ")
	if doc.Title != "" {
		b.WriteString(doc.Title)
	} else {
		b.WriteString("(untitled)")
	}
	if doc.URL != "" {
		b.WriteString(" <" + doc.URL + ">")
	}
	b.WriteByte('\n')

	if len(doc.Landmarks) > 0 {
		b.WriteString("LANDMARKS:")
		for _, n := range doc.LandmarkNodes() {
			b.WriteString(" " + string(n.Role))
		}
		b.WriteByte('\n')
	}

	acts := doc.InteractableNodes()
	if len(acts) > 0 {
		b.WriteString("ACTIONS:\n")
		for i, n := range acts {
			if i == 10 {
				fmt.Fprintf(&b, "  (+%d more)\n", len(acts)-10)
				break
			}
			label := n.Label
			if label == "" {
				label = string(n.ID)
			}
			fmt.Fprintf(&b, "  %s %s", n.ID, truncate(label, 20))
			if n.Intent != "" {
				b.WriteString(" ->" + string(n.Intent))
			}
			b.WriteByte('\n')
		}
	}

	var states []string
	for _, n := range acts {
		if len(states) == 5 {
			break
		}
		if n.State != StateIdle {
			states = append(states, string(n.ID)+"="+string(n.State))
		}
	}
	if len(states) > 0 {
		b.WriteString("STATE: " + strings.Join(states, " ") + "\n")
	}

	fmt.Fprintf(&b, "STATS: %d nodes, %d landmarks, %d actions",
		doc.NodeCount(), len(doc.Landmarks), len(doc.Interactables))
	if c := doc.Certification; c != nil {
		fmt.Fprintf(&b, ", cert %s (%.0f)", strings.ToUpper(string(c.Level)), c.Score)
	}
	b.WriteByte('\n')
	return b.String()
}

// NavSummary lists where the page can go: link targets and graph
// transitions.
func NavSummary(doc *Document) string {
	var b strings.Builder
	b.WriteString("NAV:\n")
	count := 0
	for _, n := range doc.InteractableNodes() {
		if n.Role != RoleLink || n.Href == "" {
			continue
		}
		if count == 10 {
			b.WriteString("  ...\n")
			break
		}
		label := n.Label
		if label == "" {
			label = string(n.ID)
		}
		fmt.Fprintf(&b, "  %s -> %s\n", truncate(label, 20), n.Href)
		count++
	}
	if count == 0 {
		b.WriteString("  (no links)\n")
	}
	if g := doc.Graph; g != nil && len(g.Transitions) > 0 {
		b.WriteString("TRANSITIONS:\n")
		for i, t := range g.Transitions {
			if i == 5 {
				fmt.Fprintf(&b, "  (+%d more)\n", len(g.Transitions)-5)
				break
			}
			fmt.Fprintf(&b, "  %s --%s--> %s\n", t.From, t.Trigger, t.To)
		}
	}
	return b.String()
}

// AudioSummary renders the page as short prose suitable for speech output.
func AudioSummary(doc *Document) string {
	var b strings.Builder
	if doc.Title != "" {
		b.WriteString("Page titled " + doc.Title + ". ")
	} else {
		b.WriteString("Untitled page. ")
	}
	if n := len(doc.Landmarks); n == 1 {
		b.WriteString("It has 1 region. ")
	} else if n > 1 {
		fmt.Fprintf(&b, "It has %d regions. ", n)
	}
	var acts []string
	for _, n := range doc.InteractableNodes() {
		if len(acts) == 5 {
			break
		}
		if n.Label != "" {
			acts = append(acts, n.Label)
		}
	}
	if len(acts) > 0 {
		b.WriteString("Available actions: " + strings.Join(acts, ", ") + ".")
	} else {
		b.WriteString("No actions available.")
	}
	return b.String()
}

// TokenComparison reports the estimated token cost of each serialization of
// the same document.
type TokenComparison struct {
	JSON     int `json:"json"`
	TOON     int `json:"toon"`
	Summary  int `json:"summary"`
	OneLiner int `json:"oneLiner"`
}

// CompareTokenUsage serializes the document every way and sizes each one.
func CompareTokenUsage(doc *Document) TokenComparison {
	var c TokenComparison
	if data, err := json.Marshal(doc); err == nil {
		c.JSON = EstimateTokens(string(data))
	}
	c.TOON = EstimateTokens(EncodeTOON(doc, TOONOptions{}))
	c.Summary = EstimateTokens(AgentSummary(doc))
	c.OneLiner = EstimateTokens(OneLiner(doc))
	return c
}

// truncate caps s at max runes, marking the cut with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
