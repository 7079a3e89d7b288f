package semdom

import "strings"

// Role is the closed set of semantic categories a node can take. The wire
// values follow ARIA naming where ARIA has a name for the concept.
type Role string

const (
	RoleNavigation    Role = "navigation"
	RoleMain          Role = "main"
	RoleBanner        Role = "banner"
	RoleContentinfo   Role = "contentinfo"
	RoleComplementary Role = "complementary"
	RoleArticle       Role = "article"
	RoleSection       Role = "section"
	RoleRegion        Role = "region"
	RoleSearch        Role = "search"
	RoleForm          Role = "form"
	RoleButton        Role = "button"
	RoleLink          Role = "link"
	RoleTextbox       Role = "textbox"
	RoleSearchbox     Role = "searchbox"
	RoleCheckbox      Role = "checkbox"
	RoleRadio         Role = "radio"
	RoleListbox       Role = "listbox"
	RoleSpinbutton    Role = "spinbutton"
	RoleSlider        Role = "slider"
	RoleHeading       Role = "heading"
	RoleList          Role = "list"
	RoleListitem      Role = "listitem"
	RoleTable         Role = "table"
	RoleRow           Role = "row"
	RoleCell          Role = "cell"
	RoleImg           Role = "img"
	RoleDialog        Role = "dialog"
	RoleAlert         Role = "alert"
	RoleMenu          Role = "menu"
	RoleMenuitem      Role = "menuitem"
	RoleTab           Role = "tab"
	RoleTabpanel      Role = "tabpanel"
	RoleGeneric       Role = "generic"
	RoleUnknown       Role = "unknown"
)

// RoleFromString maps an explicit role attribute value onto the closed set.
// Common HTML tag names double as aliases so that role="header" and
// role="banner" land on the same Role. Anything unrecognized is RoleUnknown,
// never an error.
func RoleFromString(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "navigation", "nav":
		return RoleNavigation
	case "main":
		return RoleMain
	case "banner", "header":
		return RoleBanner
	case "contentinfo", "footer":
		return RoleContentinfo
	case "complementary", "aside":
		return RoleComplementary
	case "article":
		return RoleArticle
	case "section":
		return RoleSection
	case "region":
		return RoleRegion
	case "search":
		return RoleSearch
	case "form":
		return RoleForm
	case "button":
		return RoleButton
	case "link":
		return RoleLink
	case "textbox", "text-input", "input":
		return RoleTextbox
	case "searchbox":
		return RoleSearchbox
	case "checkbox":
		return RoleCheckbox
	case "radio":
		return RoleRadio
	case "listbox", "select", "combobox":
		return RoleListbox
	case "spinbutton":
		return RoleSpinbutton
	case "slider":
		return RoleSlider
	case "heading":
		return RoleHeading
	case "list":
		return RoleList
	case "listitem":
		return RoleListitem
	case "table":
		return RoleTable
	case "row":
		return RoleRow
	case "cell", "gridcell":
		return RoleCell
	case "img", "image":
		return RoleImg
	case "dialog":
		return RoleDialog
	case "alert":
		return RoleAlert
	case "menu":
		return RoleMenu
	case "menuitem":
		return RoleMenuitem
	case "tab":
		return RoleTab
	case "tabpanel":
		return RoleTabpanel
	case "generic", "container":
		return RoleGeneric
	default:
		return RoleUnknown
	}
}

// IsLandmark reports whether the role is a page-level landmark region.
func (r Role) IsLandmark() bool {
	switch r {
	case RoleNavigation, RoleMain, RoleBanner, RoleContentinfo,
		RoleComplementary, RoleSearch, RoleForm, RoleRegion:
		return true
	}
	return false
}

// IsInteractable reports whether the role accepts user interaction.
func (r Role) IsInteractable() bool {
	switch r {
	case RoleButton, RoleLink, RoleTextbox, RoleSearchbox, RoleCheckbox,
		RoleRadio, RoleListbox, RoleSpinbutton, RoleSlider:
		return true
	}
	return false
}

var rolePrefixes = map[Role]string{
	RoleButton:        "btn",
	RoleLink:          "link",
	RoleTextbox:       "input",
	RoleSearchbox:     "search",
	RoleNavigation:    "nav",
	RoleMain:          "main",
	RoleBanner:        "header",
	RoleContentinfo:   "footer",
	RoleComplementary: "aside",
	RoleForm:          "form",
	RoleSearch:        "search",
	RoleCheckbox:      "chk",
	RoleRadio:         "radio",
	RoleListbox:       "select",
	RoleMenu:          "menu",
	RoleMenuitem:      "item",
	RoleTab:           "tab",
	RoleTabpanel:      "panel",
	RoleDialog:        "dialog",
	RoleAlert:         "alert",
	RoleImg:           "img",
	RoleHeading:       "h",
	RoleList:          "list",
	RoleListitem:      "li",
	RoleTable:         "table",
	RoleRow:           "row",
	RoleCell:          "cell",
}

// Prefix returns the short identifier prefix used when generating ids for
// nodes of this role. Roles without a dedicated prefix fall back to the
// first four characters of the role name.
func (r Role) Prefix() string {
	if p, ok := rolePrefixes[r]; ok {
		return p
	}
	s := string(r)
	if len(s) > 4 {
		s = s[:4]
	}
	return s
}

// Abbrev returns the compressed role tag used in summary output.
func (r Role) Abbrev() string {
	switch r {
	case RoleNavigation:
		return "nav"
	case RoleMain:
		return "main"
	case RoleBanner:
		return "hdr"
	case RoleContentinfo:
		return "ftr"
	case RoleButton:
		return "btn"
	case RoleLink:
		return "lnk"
	case RoleTextbox, RoleSearchbox:
		return "inp"
	default:
		return "el"
	}
}
