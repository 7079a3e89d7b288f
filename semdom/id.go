package semdom

import (
	"fmt"
	"strings"
	"unicode"
)

const maxIDLabelLen = 32

// idAllocator hands out document-unique semantic ids. Its state is scoped
// to a single Parse call, so the same markup always yields the same ids.
type idAllocator struct {
	taken map[SemanticID]bool
}

func newIDAllocator() *idAllocator {
	return &idAllocator{taken: make(map[SemanticID]bool)}
}

// claim reserves base if free, otherwise the first of base-2, base-3, ...
// that is. Author-provided ids and generated ids share the same namespace
// so duplicates in the markup still come out unique.
func (a *idAllocator) claim(base string) SemanticID {
	id := SemanticID(base)
	for i := 2; a.taken[id]; i++ {
		id = SemanticID(fmt.Sprintf("%s-%d", base, i))
	}
	a.taken[id] = true
	return id
}

// generate builds an id from the node's role prefix and its label.
func (a *idAllocator) generate(role Role, label string) SemanticID {
	return a.claim(role.Prefix() + "-" + sanitizeIDPart(label))
}

// sanitizeIDPart lowercases the label, replaces every non-alphanumeric rune
// with a dash, trims edge dashes and caps the length. A label with nothing
// usable becomes "unnamed".
func sanitizeIDPart(label string) string {
	var b strings.Builder
	n := 0
	for _, r := range label {
		if n >= maxIDLabelLen {
			break
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune('-')
		}
		n++
	}
	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "unnamed"
	}
	return s
}
