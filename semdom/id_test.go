package semdom

import (
	"fmt"
	"strings"
	"testing"
)

func TestSanitizeIDPart(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Submit Order", "submit-order"},
		{"Read More!", "read-more"},
		{"  spaces  ", "spaces"},
		{"---", "unnamed"},
		{"", "unnamed"},
		{"ÜMLAUT", "ümlaut"},
		{strings.Repeat("a", 50), strings.Repeat("a", 32)},
	}
	for _, tc := range tests {
		if got := sanitizeIDPart(tc.in); got != tc.want {
			t.Errorf("sanitizeIDPart(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIDAllocator_SuffixSequence(t *testing.T) {
	a := newIDAllocator()
	for i := 0; i < 10; i++ {
		id := a.generate(RoleButton, "Submit")
		want := "btn-submit"
		if i > 0 {
			want = fmt.Sprintf("btn-submit-%d", i+1)
		}
		if string(id) != want {
			t.Fatalf("allocation %d: got %q, want %q", i, id, want)
		}
	}
}

func TestIDAllocator_ExplicitAndGeneratedShareNamespace(t *testing.T) {
	a := newIDAllocator()
	if got := a.claim("btn-save"); got != "btn-save" {
		t.Fatalf("explicit claim: %q", got)
	}
	if got := a.generate(RoleButton, "Save"); got != "btn-save-2" {
		t.Fatalf("generated after explicit: %q", got)
	}
}

func TestParse_EndToEnd(t *testing.T) {
	doc := mustParse(t, `<body><nav><a href="/">Home</a></nav><main><button>Submit</button></main></body>`)

	roles := map[Role]bool{}
	for _, n := range doc.LandmarkNodes() {
		roles[n.Role] = true
	}
	if !roles[RoleNavigation] || !roles[RoleMain] {
		t.Fatalf("landmarks: %v", doc.Landmarks)
	}

	if len(doc.Interactables) != 2 {
		t.Fatalf("interactables: got %d, want 2", len(doc.Interactables))
	}
	link, _ := doc.Query("link-home")
	if link == nil || link.Role != RoleLink || link.Intent != IntentNavigate {
		t.Fatalf("link: %+v", link)
	}
	btn, _ := doc.Query("btn-submit")
	if btn == nil || btn.Role != RoleButton || btn.Intent != IntentSubmit {
		t.Fatalf("button: %+v", btn)
	}

	for _, c := range doc.Certification.Checks {
		if c.ID == "STRUCT-001" || c.ID == "NAV-001" {
			if !c.Passed {
				t.Errorf("check %s failed", c.ID)
			}
		}
	}
}
