package semdom

import "strings"

// GraphState is one navigation state of the page-level graph.
type GraphState struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URLPattern string `json:"urlPattern,omitempty"`
	IsInitial  bool   `json:"isInitial"`
	IsTerminal bool   `json:"isTerminal"`
}

// GraphTransition is one edge of the navigation graph.
type GraphTransition struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Trigger string `json:"trigger"`
	Action  string `json:"action"`
	Guard   string `json:"guard,omitempty"`
}

// LocalTransition is one edge of a node's local interaction table.
type LocalTransition struct {
	From    State  `json:"from"`
	Trigger string `json:"trigger"`
	To      State  `json:"to"`
}

// LocalTable is the interaction-state machine of a single node.
type LocalTable struct {
	NodeID       SemanticID        `json:"nodeId"`
	Role         Role              `json:"role"`
	CurrentState State             `json:"currentState"`
	Transitions  []LocalTransition `json:"transitions"`
}

// StateGraph combines the page-level navigation graph with the per-node
// interaction tables.
type StateGraph struct {
	InitialState string            `json:"initialState"`
	States       []GraphState      `json:"states"`
	Transitions  []GraphTransition `json:"transitions"`
	Locals       []LocalTable      `json:"locals,omitempty"`
}

// BuildStateGraph derives the state graph of a parsed document. The graph
// always contains the "initial" state; every link with a navigable href
// contributes a target state and a transition triggered by that link.
func BuildStateGraph(doc *Document) *StateGraph {
	g := &StateGraph{
		InitialState: "initial",
		States: []GraphState{{
			ID:        "initial",
			Name:      "Initial page state",
			IsInitial: true,
		}},
	}
	seen := map[string]bool{"initial": true}
	doc.Walk(func(_ NodeID, n *SemanticNode, _ int) bool {
		if n.Role.IsInteractable() || n.State != StateIdle {
			if t := localTable(n); t != nil {
				g.Locals = append(g.Locals, *t)
			}
		}
		return true
	})
	for _, n := range doc.InteractableNodes() {
		// Only same-page and same-site targets become states. External
		// and protocol links leave the graph.
		if n.Href == "" || !(strings.HasPrefix(n.Href, "/") || strings.HasPrefix(n.Href, "#")) {
			continue
		}
		target := stateIDForHref(n.Href)
		if !seen[target] {
			seen[target] = true
			g.States = append(g.States, GraphState{
				ID:         target,
				Name:       "After " + string(n.ID),
				URLPattern: n.Href,
			})
		}
		g.Transitions = append(g.Transitions, GraphTransition{
			From:    "initial",
			To:      target,
			Trigger: string(n.ID),
			Action:  "navigate",
		})
	}
	return g
}

// stateIDForHref derives a stable state id from a link target.
func stateIDForHref(href string) string {
	var b strings.Builder
	b.WriteString("state_")
	for _, r := range href {
		switch r {
		case '/':
			b.WriteRune('_')
		case '#':
			b.WriteString("h_")
		default:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
				(r >= '0' && r <= '9') || r == '_' || r == '-' || r == '.' {
				b.WriteRune(r)
			} else {
				b.WriteRune('_')
			}
		}
	}
	return b.String()
}

// localTable builds the interaction table of one node from its role and
// current state. Disabled nodes get an empty table: nothing fires.
func localTable(n *SemanticNode) *LocalTable {
	t := &LocalTable{NodeID: n.ID, Role: n.Role, CurrentState: n.State}
	if n.State == StateDisabled {
		return t
	}
	switch n.Role {
	case RoleButton:
		t.Transitions = []LocalTransition{
			{From: StateIdle, Trigger: "focus", To: StateFocused},
			{From: StateFocused, Trigger: "blur", To: StateIdle},
			{From: StateFocused, Trigger: "mousedown", To: StatePressed},
			{From: StatePressed, Trigger: "mouseup", To: StateFocused},
		}
	case RoleTextbox, RoleSearchbox:
		t.Transitions = []LocalTransition{
			{From: StateIdle, Trigger: "focus", To: StateFocused},
			{From: StateFocused, Trigger: "blur", To: StateIdle},
			{From: StateFocused, Trigger: "input", To: StateEditing},
			{From: StateEditing, Trigger: "blur", To: StateIdle},
		}
	case RoleCheckbox, RoleRadio:
		t.Transitions = []LocalTransition{
			{From: StateUnchecked, Trigger: "click", To: StateChecked},
			{From: StateChecked, Trigger: "click", To: StateUnchecked},
		}
	case RoleLink:
		t.Transitions = []LocalTransition{
			{From: StateIdle, Trigger: "focus", To: StateFocused},
			{From: StateFocused, Trigger: "activate", To: StateVisited},
		}
	default:
		if !n.A11y.Focusable {
			if n.State != StateIdle {
				return t
			}
			return nil
		}
		t.Transitions = []LocalTransition{
			{From: StateIdle, Trigger: "focus", To: StateFocused},
			{From: StateFocused, Trigger: "blur", To: StateIdle},
		}
	}
	return t
}

// Deterministic reports whether no navigation state has two outgoing
// transitions with the same trigger.
func (g *StateGraph) Deterministic() bool {
	type key struct{ from, trigger string }
	seen := make(map[key]bool, len(g.Transitions))
	for _, t := range g.Transitions {
		k := key{t.From, t.Trigger}
		if seen[k] {
			return false
		}
		seen[k] = true
	}
	return true
}

// ReachableStates returns the ids of states reachable from the initial
// state, breadth first, the initial state included.
func (g *StateGraph) ReachableStates() []string {
	adj := make(map[string][]string)
	for _, t := range g.Transitions {
		adj[t.From] = append(adj[t.From], t.To)
	}
	visited := map[string]bool{g.InitialState: true}
	order := []string{g.InitialState}
	queue := []string{g.InitialState}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if !visited[next] {
				visited[next] = true
				order = append(order, next)
				queue = append(queue, next)
			}
		}
	}
	return order
}

// FullyReachable reports whether every state of the graph is reachable
// from the initial state.
func (g *StateGraph) FullyReachable() bool {
	return len(g.ReachableStates()) == len(g.States)
}
