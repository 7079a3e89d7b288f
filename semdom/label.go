package semdom

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const maxTextLabelLen = 100

// labelFor resolves the human-visible label of an element. The chain is
// fixed: aria-label, data-agent-label, title, short text content, alt,
// placeholder, then empty.
func labelFor(n *html.Node) string {
	if v := attr(n, "aria-label"); v != "" {
		return SanitizeText(v)
	}
	if v := attr(n, "data-agent-label"); v != "" {
		return SanitizeText(v)
	}
	if v := attr(n, "title"); v != "" {
		return SanitizeText(v)
	}
	if t := textContent(n); t != "" && utf8.RuneCountInString(t) <= maxTextLabelLen {
		return t
	}
	if v := attr(n, "alt"); v != "" {
		return SanitizeText(v)
	}
	if v := attr(n, "placeholder"); v != "" {
		return SanitizeText(v)
	}
	return ""
}

// accessibleName resolves the name assistive technology would announce.
// Unlike labelFor it never falls back to placeholder, and alt only counts
// on images.
func accessibleName(n *html.Node) string {
	if v := attr(n, "aria-label"); v != "" {
		return SanitizeText(v)
	}
	if v := attr(n, "title"); v != "" {
		return SanitizeText(v)
	}
	if strings.EqualFold(n.Data, "img") {
		if v := attr(n, "alt"); v != "" {
			return SanitizeText(v)
		}
	}
	if t := textContent(n); t != "" {
		return t
	}
	return ""
}

// textContent collects the text beneath an element, whitespace-collapsed
// and sanitized.
func textContent(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		for ; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				parts = append(parts, strings.Fields(c.Data)...)
			}
			walk(c.FirstChild)
		}
	}
	walk(n.FirstChild)
	return SanitizeText(strings.Join(parts, " "))
}
