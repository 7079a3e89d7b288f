package semdom

import (
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse converts raw markup into a Document. The pageURL is metadata only;
// it is carried into the document header and never fetched. All limits come
// from cfg; the zero Config gets defaults.
//
// Parse never fails on malformed markup. It fails only on oversized input
// or markup with no body to anchor on.
func Parse(markup, pageURL string, cfg Config) (*Document, error) {
	cfg = cfg.withDefaults()
	if len(markup) > cfg.MaxInputSize {
		return nil, &InputTooLargeError{Max: cfg.MaxInputSize, Actual: len(markup)}
	}
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	body := findElement(root, atom.Body)
	if body == nil {
		return nil, ErrNoBody
	}
	doc := &Document{
		Version:     Version,
		Standard:    Standard,
		URL:         pageURL,
		Title:       findTitle(root),
		Language:    documentLanguage(root),
		GeneratedAt: time.Now().UnixMilli(),
		root:        InvalidNode,
		index:       make(map[SemanticID]NodeID),
	}
	b := &buildContext{cfg: cfg, doc: doc, ids: newIDAllocator()}
	doc.root = b.buildNode(body, InvalidNode, 0)
	doc.Graph = BuildStateGraph(doc)
	doc.Certification = Certify(doc)
	return doc, nil
}

// buildContext holds the per-parse state. A fresh context per Parse call
// keeps id generation deterministic for a given input.
type buildContext struct {
	cfg Config
	doc *Document
	ids *idAllocator
}

// buildNode converts one element and its qualifying descendants into arena
// nodes, returning the new node's handle.
func (b *buildContext) buildNode(el *html.Node, parent NodeID, depth int) NodeID {
	role := roleForElement(el)
	label := labelFor(el)
	state := stateForElement(el)

	rawHref := attr(el, "href")
	href := ""
	if rawHref != "" {
		if v, err := ValidateURL(rawHref); err == nil {
			href = v
		}
	}

	node := SemanticNode{
		ID:       b.resolveID(el, role, label),
		Role:     role,
		Label:    label,
		State:    state,
		Href:     href,
		Selector: selectorFor(el),
		A11y:     a11yFor(el, role, state),
		Parent:   parent,
	}
	if role.IsInteractable() {
		if v := attr(el, "data-agent-intent"); v != "" {
			node.Intent = IntentFromString(v)
		}
		if node.Intent == "" && role == RoleLink && hasAttr(el, "download") {
			node.Intent = IntentDownload
		}
		if node.Intent == "" {
			node.Intent = inferIntent(role, label, rawHref)
		}
	}

	id := NodeID(len(b.doc.nodes))
	b.doc.nodes = append(b.doc.nodes, node)
	b.doc.index[node.ID] = id
	if role.IsLandmark() {
		b.doc.Landmarks = append(b.doc.Landmarks, node.ID)
	}
	if role.IsInteractable() {
		b.doc.Interactables = append(b.doc.Interactables, node.ID)
	}
	if role == RoleHeading {
		b.doc.Headings = append(b.doc.Headings, node.ID)
	}

	if depth >= b.cfg.MaxDepth {
		return id
	}
	var children []NodeID
	for _, c := range b.candidateChildren(el) {
		children = append(children, b.buildNode(c, id, depth+1))
	}
	// Assign through the arena: the append above may have moved it.
	b.doc.nodes[id].Children = children
	return id
}

// resolveID picks the node id: data-agent-id wins, then the HTML id, then a
// generated prefix-label id. All three go through the allocator so clashes
// pick up a numeric suffix.
func (b *buildContext) resolveID(el *html.Node, role Role, label string) SemanticID {
	if v := attr(el, "data-agent-id"); v != "" {
		return b.ids.claim(v)
	}
	if v := attr(el, "id"); v != "" {
		return b.ids.claim(v)
	}
	return b.ids.generate(role, label)
}

// candidateChildren selects the elements under el that become child nodes.
// Non-semantic wrappers are looked through exactly one level: their own
// semantic children get hoisted, anything deeper stays invisible.
func (b *buildContext) candidateChildren(el *html.Node) []*html.Node {
	var out []*html.Node
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || b.cfg.excluded(c.Data) {
			continue
		}
		if isSemanticElement(c) {
			out = append(out, c)
			continue
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			if gc.Type != html.ElementNode || b.cfg.excluded(gc.Data) {
				continue
			}
			if isSemanticElement(gc) {
				out = append(out, gc)
			}
		}
	}
	return out
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func findTitle(root *html.Node) string {
	t := findElement(root, atom.Title)
	if t == nil {
		return ""
	}
	return textContent(t)
}

func documentLanguage(root *html.Node) string {
	h := findElement(root, atom.Html)
	if h == nil {
		return ""
	}
	return attr(h, "lang")
}
