package semdom

import (
	"net/url"
	"strings"
)

var blockedSchemes = []string{"javascript", "data", "vbscript", "blob"}

var allowedSchemes = []string{"http", "https", "file", "mailto", "tel"}

// ValidateURL checks an href value before it is carried into a document.
// Empty strings, fragments and relative paths pass through unchanged.
// Script-injection schemes and anything outside the allowed scheme list are
// rejected with InvalidURLProtocolError.
func ValidateURL(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	for _, p := range []string{"/", "./", "../", "#"} {
		if strings.HasPrefix(raw, p) {
			return raw, nil
		}
	}
	lower := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range blockedSchemes {
		if strings.HasPrefix(lower, s+":") {
			return "", &InvalidURLProtocolError{Protocol: s}
		}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		// Scheme-less values are relative references.
		return raw, nil
	}
	scheme := strings.ToLower(u.Scheme)
	for _, s := range allowedSchemes {
		if scheme == s {
			return raw, nil
		}
	}
	return "", &InvalidURLProtocolError{Protocol: scheme}
}

// SanitizeText strips control characters from extracted text, keeping only
// newlines and tabs among the non-printing range.
func SanitizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' || (r >= 0x20 && r != 0x7f) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
