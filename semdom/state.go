package semdom

// State is the interaction state of a node at parse time, plus the
// additional states reachable through the per-node transition tables.
type State string

const (
	StateIdle      State = "idle"
	StateDisabled  State = "disabled"
	StateExpanded  State = "expanded"
	StateCollapsed State = "collapsed"
	StateSelected  State = "selected"
	StateChecked   State = "checked"
	StateUnchecked State = "unchecked"
	StateMixed     State = "mixed"
	StateHidden    State = "hidden"
	StateOpen      State = "open"

	// Transition-only states. These never come out of attribute
	// inspection but appear as targets in local transition tables.
	StateFocused State = "focused"
	StatePressed State = "pressed"
	StateEditing State = "editing"
	StateVisited State = "visited"
)
