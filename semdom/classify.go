package semdom

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return true
		}
	}
	return false
}

// semanticTags lists the tag names that always produce a node on their own.
var semanticTags = map[string]bool{
	"main": true, "nav": true, "header": true, "footer": true,
	"aside": true, "article": true, "section": true,
	"button": true, "a": true, "input": true, "select": true,
	"textarea": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "li": true,
	"table": true, "tr": true, "td": true, "th": true,
	"img": true, "dialog": true, "menu": true,
}

// isSemanticElement reports whether an element produces a node: either the
// tag itself is semantic or the author marked it with a role or agent
// attribute.
func isSemanticElement(n *html.Node) bool {
	if semanticTags[strings.ToLower(n.Data)] {
		return true
	}
	return hasAttr(n, "role") || hasAttr(n, "data-agent-id") ||
		hasAttr(n, "data-agent-role") || hasAttr(n, "aria-label")
}

// roleForElement resolves the role of an element. Explicit attributes win:
// role first, then data-agent-role; a tag-based mapping covers the rest.
// An explicit attribute that maps to RoleUnknown falls through to the tag.
func roleForElement(n *html.Node) Role {
	if v := attr(n, "role"); v != "" {
		if r := RoleFromString(v); r != RoleUnknown {
			return r
		}
	}
	if v := attr(n, "data-agent-role"); v != "" {
		if r := RoleFromString(v); r != RoleUnknown {
			return r
		}
	}
	switch strings.ToLower(n.Data) {
	case "button":
		return RoleButton
	case "a":
		return RoleLink
	case "input":
		return inputRole(attr(n, "type"))
	case "textarea":
		return RoleTextbox
	case "select":
		return RoleListbox
	case "nav":
		return RoleNavigation
	case "main":
		return RoleMain
	case "header":
		return RoleBanner
	case "footer":
		return RoleContentinfo
	case "aside":
		return RoleComplementary
	case "article":
		return RoleArticle
	case "section":
		// A section with an accessible label is a navigable region landmark.
		if attr(n, "aria-label") != "" {
			return RoleRegion
		}
		return RoleSection
	case "form":
		return RoleForm
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return RoleHeading
	case "ul", "ol":
		return RoleList
	case "li":
		return RoleListitem
	case "table":
		return RoleTable
	case "tr":
		return RoleRow
	case "td", "th":
		return RoleCell
	case "img":
		return RoleImg
	case "dialog":
		return RoleDialog
	case "menu":
		return RoleMenu
	default:
		return RoleGeneric
	}
}

// inputRole maps the type attribute of an input element to a role.
func inputRole(typ string) Role {
	switch strings.ToLower(typ) {
	case "checkbox":
		return RoleCheckbox
	case "radio":
		return RoleRadio
	case "submit", "button", "reset":
		return RoleButton
	case "search":
		return RoleSearchbox
	case "number":
		return RoleSpinbutton
	case "range":
		return RoleSlider
	default:
		return RoleTextbox
	}
}

// stateForElement derives the parse-time state. The checks run in a fixed
// priority order so an element that is both disabled and expanded reports
// disabled.
func stateForElement(n *html.Node) State {
	if hasAttr(n, "disabled") || strings.EqualFold(attr(n, "aria-disabled"), "true") {
		return StateDisabled
	}
	switch strings.ToLower(attr(n, "aria-expanded")) {
	case "true":
		return StateExpanded
	case "false":
		return StateCollapsed
	}
	if strings.EqualFold(attr(n, "aria-selected"), "true") {
		return StateSelected
	}
	switch strings.ToLower(attr(n, "aria-checked")) {
	case "true":
		return StateChecked
	case "false":
		return StateUnchecked
	case "mixed":
		return StateMixed
	}
	if strings.EqualFold(attr(n, "aria-hidden"), "true") {
		return StateHidden
	}
	if hasAttr(n, "open") {
		return StateOpen
	}
	if strings.ToLower(n.Data) == "input" {
		switch strings.ToLower(attr(n, "type")) {
		case "checkbox", "radio":
			if hasAttr(n, "checked") {
				return StateChecked
			}
			return StateUnchecked
		}
	}
	return StateIdle
}

var nativelyFocusable = map[string]bool{
	"a": true, "button": true, "input": true, "select": true, "textarea": true,
}

// a11yFor builds the accessibility block: accessible name, focusability and
// tab-order membership, plus the level for headings.
func a11yFor(n *html.Node, role Role, state State) A11y {
	tag := strings.ToLower(n.Data)
	tabindex, hasTabindex := parseTabindex(n)
	focusable := false
	if state != StateDisabled {
		if nativelyFocusable[tag] {
			focusable = true
		} else if hasTabindex && tabindex >= 0 {
			focusable = true
		}
	}
	inTabOrder := focusable && (!hasTabindex || tabindex >= 0)
	return A11y{
		Name:       accessibleName(n),
		Focusable:  focusable,
		InTabOrder: inTabOrder,
		Level:      headingLevel(n, role),
	}
}

func parseTabindex(n *html.Node) (int, bool) {
	v := attr(n, "tabindex")
	if v == "" {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return i, true
}

func headingLevel(n *html.Node, role Role) int {
	if role != RoleHeading {
		return 0
	}
	tag := strings.ToLower(n.Data)
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	if v := attr(n, "aria-level"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 1 && i <= 6 {
			return i
		}
	}
	return 2
}

// selectorFor emits a CSS selector that re-locates the source element:
// id first, then data-agent-id, then tag plus first class.
func selectorFor(n *html.Node) string {
	if v := attr(n, "id"); v != "" {
		return "#" + v
	}
	if v := attr(n, "data-agent-id"); v != "" {
		return `[data-agent-id="` + v + `"]`
	}
	tag := strings.ToLower(n.Data)
	if cls := attr(n, "class"); cls != "" {
		if first := strings.Fields(cls); len(first) > 0 {
			return tag + "." + first[0]
		}
	}
	return tag
}
