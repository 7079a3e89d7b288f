package semdom

import "strings"

// Intent describes what interacting with a node is expected to do. The empty
// string means no intent could be inferred.
type Intent string

const (
	IntentNavigate Intent = "navigate"
	IntentSubmit   Intent = "submit"
	IntentAction   Intent = "action"
	IntentToggle   Intent = "toggle"
	IntentSelect   Intent = "select"
	IntentInput    Intent = "input"
	IntentSearch   Intent = "search"
	IntentPlay     Intent = "play"
	IntentPause    Intent = "pause"
	IntentOpen     Intent = "open"
	IntentClose    Intent = "close"
	IntentExpand   Intent = "expand"
	IntentCollapse Intent = "collapse"
	IntentDownload Intent = "download"
	IntentDelete   Intent = "delete"
	IntentEdit     Intent = "edit"
	IntentCreate   Intent = "create"
	IntentEmail    Intent = "email"
	IntentPhone    Intent = "phone"
)

// IntentFromString maps an explicit data-agent-intent value onto the closed
// set. Unrecognized values yield "" so a typo in markup degrades to the
// inferred intent rather than inventing a new one.
func IntentFromString(s string) Intent {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "navigate":
		return IntentNavigate
	case "submit":
		return IntentSubmit
	case "action":
		return IntentAction
	case "toggle":
		return IntentToggle
	case "select":
		return IntentSelect
	case "input":
		return IntentInput
	case "search":
		return IntentSearch
	case "play":
		return IntentPlay
	case "pause":
		return IntentPause
	case "open":
		return IntentOpen
	case "close", "cancel":
		return IntentClose
	case "expand":
		return IntentExpand
	case "collapse":
		return IntentCollapse
	case "download":
		return IntentDownload
	case "delete":
		return IntentDelete
	case "edit":
		return IntentEdit
	case "create":
		return IntentCreate
	case "email":
		return IntentEmail
	case "phone":
		return IntentPhone
	default:
		return ""
	}
}

// inferIntent derives an intent from role, label and target when no explicit
// data-agent-intent attribute is present. Button keyword checks run in a
// fixed order so "delete item" and "remove item" always agree.
func inferIntent(role Role, label, href string) Intent {
	switch role {
	case RoleButton:
		l := strings.ToLower(label)
		switch {
		case strings.Contains(l, "submit"), strings.Contains(l, "send"):
			return IntentSubmit
		case strings.Contains(l, "cancel"), strings.Contains(l, "close"):
			return IntentClose
		case strings.Contains(l, "delete"), strings.Contains(l, "remove"):
			return IntentDelete
		case strings.Contains(l, "add"), strings.Contains(l, "create"):
			return IntentCreate
		case strings.Contains(l, "save"):
			return IntentSubmit
		case strings.Contains(l, "search"):
			return IntentSearch
		default:
			return IntentAction
		}
	case RoleLink:
		switch {
		case strings.HasPrefix(href, "mailto:"):
			return IntentEmail
		case strings.HasPrefix(href, "tel:"):
			return IntentPhone
		case downloadTarget(href):
			return IntentDownload
		default:
			return IntentNavigate
		}
	case RoleCheckbox, RoleRadio:
		return IntentToggle
	case RoleListbox:
		return IntentSelect
	default:
		return ""
	}
}

// downloadTarget reports whether a link href points at a file download.
// Query strings and fragments do not count toward the extension.
func downloadTarget(href string) bool {
	h := strings.ToLower(href)
	if i := strings.IndexAny(h, "?#"); i >= 0 {
		h = h[:i]
	}
	return strings.HasSuffix(h, ".pdf") || strings.HasSuffix(h, ".zip")
}
