package semdom

import (
	"fmt"
	"strings"
)

// Category groups certification checks. Each category carries a fixed share
// of the overall score.
type Category string

const (
	CategoryStructure        Category = "structure"
	CategoryAccessibility    Category = "accessibility"
	CategoryNavigation       Category = "navigation"
	CategoryInteroperability Category = "interoperability"
)

func (c Category) multiplier() float64 {
	switch c {
	case CategoryStructure:
		return 0.30
	case CategoryAccessibility:
		return 0.30
	case CategoryNavigation:
		return 0.25
	case CategoryInteroperability:
		return 0.15
	default:
		return 0
	}
}

// Level is the certification level awarded to a document.
type Level string

const (
	LevelNone Level = "none"
	LevelA    Level = "a"
	LevelAA   Level = "aa"
	LevelAAA  Level = "aaa"
)

// Check is the outcome of a single certification criterion.
type Check struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Weight   float64  `json:"weight"`
	Passed   bool     `json:"passed"`
	Details  string   `json:"details,omitempty"`
}

// Stats summarizes the certified document.
type Stats struct {
	Nodes         int     `json:"nodes"`
	Landmarks     int     `json:"landmarks"`
	Interactables int     `json:"interactables"`
	Headings      int     `json:"headings"`
	ChecksPassed  int     `json:"checksPassed"`
	ChecksTotal   int     `json:"checksTotal"`
	Completeness  float64 `json:"completeness"`
}

// Certification is the full agent-readiness report of a document.
type Certification struct {
	Level  Level   `json:"level"`
	Score  float64 `json:"score"`
	Checks []Check `json:"checks"`
	Stats  Stats   `json:"stats"`
}

// Certify scores a document's agent readiness. It is pure: certifying the
// same document twice yields identical reports.
func Certify(doc *Document) *Certification {
	interactables := doc.InteractableNodes()
	var links, buttons, inputs []*SemanticNode
	for _, n := range interactables {
		switch n.Role {
		case RoleLink:
			links = append(links, n)
		case RoleButton:
			buttons = append(buttons, n)
		case RoleTextbox, RoleSearchbox, RoleCheckbox, RoleRadio,
			RoleListbox, RoleSpinbutton, RoleSlider:
			inputs = append(inputs, n)
		}
	}

	named := ratio(interactables, func(n *SemanticNode) bool { return n.A11y.Name != "" })
	linksNamed := ratio(links, func(n *SemanticNode) bool { return descriptive(n.Label) })
	buttonsNamed := ratio(buttons, func(n *SemanticNode) bool { return descriptive(n.Label) })
	inputsNamed := ratio(inputs, func(n *SemanticNode) bool { return n.Label != "" || n.A11y.Name != "" })

	hasNav := false
	for _, id := range doc.Landmarks {
		if n, ok := doc.Query(id); ok && n.Role == RoleNavigation {
			hasNav = true
			break
		}
	}
	_, hasMain := doc.Navigate("main")

	graph := doc.Graph
	if graph == nil {
		graph = BuildStateGraph(doc)
	}

	var all []*SemanticNode
	doc.Walk(func(_ NodeID, n *SemanticNode, _ int) bool {
		all = append(all, n)
		return true
	})
	labeled := ratio(all, func(n *SemanticNode) bool { return n.Label != "" })
	selectors := ratio(all, func(n *SemanticNode) bool { return n.Selector != "" })
	intents := ratio(interactables, func(n *SemanticNode) bool { return n.Intent != "" })

	checks := []Check{
		{
			ID: "STRUCT-001", Name: "Landmark regions present",
			Category: CategoryStructure, Weight: 1,
			Passed:  len(doc.Landmarks) > 0,
			Details: fmt.Sprintf("%d landmarks", len(doc.Landmarks)),
		},
		{
			ID: "STRUCT-002", Name: "Main content region present",
			Category: CategoryStructure, Weight: 1,
			Passed: hasMain,
		},
		{
			ID: "STRUCT-003", Name: "Headings present",
			Category: CategoryStructure, Weight: 0.5,
			Passed:  len(doc.Headings) > 0,
			Details: fmt.Sprintf("%d headings", len(doc.Headings)),
		},
		{
			ID: "STRUCT-004", Name: "All node ids unique",
			Category: CategoryStructure, Weight: 0.5,
			Passed: doc.CheckIntegrity() == nil,
		},
		{
			ID: "A11Y-001", Name: "Interactive elements have accessible names",
			Category: CategoryAccessibility, Weight: 1,
			Passed:  named >= 0.8,
			Details: percent(named),
		},
		{
			ID: "A11Y-002", Name: "Links have descriptive labels",
			Category: CategoryAccessibility, Weight: 0.75,
			Passed:  linksNamed >= 0.8,
			Details: percent(linksNamed),
		},
		{
			ID: "A11Y-003", Name: "Buttons have descriptive labels",
			Category: CategoryAccessibility, Weight: 0.75,
			Passed:  buttonsNamed >= 0.8,
			Details: percent(buttonsNamed),
		},
		{
			ID: "A11Y-004", Name: "Form inputs are labeled",
			Category: CategoryAccessibility, Weight: 0.5,
			Passed:  inputsNamed >= 0.8,
			Details: percent(inputsNamed),
		},
		{
			ID: "NAV-001", Name: "Navigation landmark present",
			Category: CategoryNavigation, Weight: 1,
			Passed: hasNav,
		},
		{
			ID: "NAV-002", Name: "State graph is deterministic",
			Category: CategoryNavigation, Weight: 1,
			Passed: graph.Deterministic(),
		},
		{
			ID: "NAV-003", Name: "All states reachable",
			Category: CategoryNavigation, Weight: 0.75,
			Passed: graph.FullyReachable(),
		},
		{
			ID: "INTEROP-001", Name: "Nodes carry stable selectors",
			Category: CategoryInteroperability, Weight: 1,
			Passed:  selectors >= 0.8,
			Details: percent(selectors),
		},
		{
			ID: "INTEROP-002", Name: "Interactive elements declare intents",
			Category: CategoryInteroperability, Weight: 0.75,
			Passed:  intents >= 0.8,
			Details: percent(intents),
		},
	}

	completeness := (labeled + selectors + intents + named) / 4

	score := 0.0
	for _, cat := range []Category{CategoryStructure, CategoryAccessibility, CategoryNavigation, CategoryInteroperability} {
		var got, total float64
		for _, c := range checks {
			if c.Category != cat {
				continue
			}
			total += c.Weight
			if c.Passed {
				got += c.Weight
			}
		}
		if total > 0 {
			score += (got / total) * cat.multiplier() * 100
		}
	}
	score += completeness * 0.1 * 100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}
	return &Certification{
		Level:  levelFor(score),
		Score:  score,
		Checks: checks,
		Stats: Stats{
			Nodes:         doc.NodeCount(),
			Landmarks:     len(doc.Landmarks),
			Interactables: len(doc.Interactables),
			Headings:      len(doc.Headings),
			ChecksPassed:  passed,
			ChecksTotal:   len(checks),
			Completeness:  completeness,
		},
	}
}

func levelFor(score float64) Level {
	switch {
	case score >= 90:
		return LevelAAA
	case score >= 70:
		return LevelAA
	case score >= 50:
		return LevelA
	default:
		return LevelNone
	}
}

// ratio evaluates pred over the population. Empty populations count as
// fully satisfied.
func ratio(pop []*SemanticNode, pred func(*SemanticNode) bool) float64 {
	if len(pop) == 0 {
		return 1
	}
	hit := 0
	for _, n := range pop {
		if pred(n) {
			hit++
		}
	}
	return float64(hit) / float64(len(pop))
}

// descriptive rejects empty labels and the handful of link texts that tell
// an agent nothing.
func descriptive(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "click here", "here", "link", "read more", "more":
		return false
	}
	return true
}

func percent(r float64) string {
	return fmt.Sprintf("%.0f%%", r*100)
}
