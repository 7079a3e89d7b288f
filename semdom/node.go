package semdom

import (
	"encoding/json"
	"fmt"
)

// SemanticID is the stable, document-unique identifier of a node. Agents
// address nodes by SemanticID across queries.
type SemanticID string

// NodeID is an index into a Document's node arena. It is only meaningful
// for the document that produced it.
type NodeID int

// InvalidNode marks the absence of a node reference.
const InvalidNode NodeID = -1

// A11y carries the accessibility metadata of a node.
type A11y struct {
	Name       string `json:"name,omitempty"`
	Focusable  bool   `json:"focusable"`
	InTabOrder bool   `json:"inTabOrder"`
	Level      int    `json:"level,omitempty"`
}

// SemanticNode is one node of the semantic tree. Children and Parent are
// arena handles, never pointers, so a Document can be copied and serialized
// without chasing a pointer graph.
type SemanticNode struct {
	ID       SemanticID
	Role     Role
	Label    string
	Intent   Intent
	State    State
	Href     string
	Selector string
	A11y     A11y
	Children []NodeID
	Parent   NodeID
}

// Document is the result of one Parse call. All node storage lives in a
// single arena slice; the index maps every SemanticID to its arena slot.
type Document struct {
	Version     string
	Standard    string
	URL         string
	Title       string
	Language    string
	GeneratedAt int64

	Landmarks     []SemanticID
	Interactables []SemanticID
	Headings      []SemanticID

	Certification *Certification
	Graph         *StateGraph

	nodes []SemanticNode
	root  NodeID
	index map[SemanticID]NodeID
}

// Root returns the root node, or nil for an empty document.
func (d *Document) Root() *SemanticNode {
	return d.Node(d.root)
}

// RootID returns the arena handle of the root node.
func (d *Document) RootID() NodeID { return d.root }

// Node resolves an arena handle. Out-of-range handles return nil.
func (d *Document) Node(id NodeID) *SemanticNode {
	if id < 0 || int(id) >= len(d.nodes) {
		return nil
	}
	return &d.nodes[id]
}

// NodeCount reports the total number of nodes in the document.
func (d *Document) NodeCount() int { return len(d.nodes) }

// Query looks a node up by its SemanticID in constant time.
func (d *Document) Query(id SemanticID) (*SemanticNode, bool) {
	n, ok := d.index[id]
	if !ok {
		return nil, false
	}
	return &d.nodes[n], true
}

// Navigate returns the first landmark node whose role matches the given
// name, in document order. The name goes through RoleFromString, so both
// "header" and "banner" find the same node.
func (d *Document) Navigate(landmark string) (*SemanticNode, bool) {
	want := RoleFromString(landmark)
	for _, id := range d.Landmarks {
		if n, ok := d.Query(id); ok && n.Role == want {
			return n, true
		}
	}
	return nil, false
}

// Walk visits every node in pre-order, depth first. Returning false from fn
// skips the node's subtree. All serializers iterate through Walk so output
// order is identical across formats.
func (d *Document) Walk(fn func(id NodeID, n *SemanticNode, depth int) bool) {
	if d.root == InvalidNode || len(d.nodes) == 0 {
		return
	}
	d.walkFrom(d.root, 0, fn)
}

func (d *Document) walkFrom(id NodeID, depth int, fn func(NodeID, *SemanticNode, int) bool) {
	n := d.Node(id)
	if n == nil || !fn(id, n, depth) {
		return
	}
	for _, c := range n.Children {
		d.walkFrom(c, depth+1, fn)
	}
}

// LandmarkNodes resolves the landmark cache to nodes in document order.
func (d *Document) LandmarkNodes() []*SemanticNode {
	return d.resolve(d.Landmarks)
}

// InteractableNodes resolves the interactable cache to nodes in document order.
func (d *Document) InteractableNodes() []*SemanticNode {
	return d.resolve(d.Interactables)
}

// HeadingNodes resolves the heading cache to nodes in document order.
func (d *Document) HeadingNodes() []*SemanticNode {
	return d.resolve(d.Headings)
}

func (d *Document) resolve(ids []SemanticID) []*SemanticNode {
	out := make([]*SemanticNode, 0, len(ids))
	for _, id := range ids {
		if n, ok := d.Query(id); ok {
			out = append(out, n)
		}
	}
	return out
}

// CheckIntegrity verifies the structural invariants of the document: the
// index covers exactly the arena, every child handle is valid and agrees
// with its parent link, and every cached id resolves.
func (d *Document) CheckIntegrity() error {
	if len(d.index) != len(d.nodes) {
		return fmt.Errorf("index has %d entries for %d nodes", len(d.index), len(d.nodes))
	}
	for sid, nid := range d.index {
		if nid < 0 || int(nid) >= len(d.nodes) {
			return fmt.Errorf("index entry %q points outside arena", sid)
		}
		if d.nodes[nid].ID != sid {
			return fmt.Errorf("index entry %q resolves to node %q", sid, d.nodes[nid].ID)
		}
	}
	for i := range d.nodes {
		for _, c := range d.nodes[i].Children {
			cn := d.Node(c)
			if cn == nil {
				return fmt.Errorf("node %q has dangling child handle %d", d.nodes[i].ID, c)
			}
			if cn.Parent != NodeID(i) {
				return fmt.Errorf("node %q is child of %q but points at parent %d", cn.ID, d.nodes[i].ID, cn.Parent)
			}
		}
	}
	for _, ids := range [][]SemanticID{d.Landmarks, d.Interactables, d.Headings} {
		for _, id := range ids {
			if _, ok := d.index[id]; !ok {
				return fmt.Errorf("cached id %q missing from index", id)
			}
		}
	}
	return nil
}

type jsonNode struct {
	ID       SemanticID `json:"id"`
	Role     Role       `json:"role"`
	Label    string     `json:"label"`
	Intent   Intent     `json:"intent,omitempty"`
	State    State      `json:"state"`
	Href     string     `json:"href,omitempty"`
	Selector string     `json:"selector,omitempty"`
	A11y     A11y       `json:"a11y"`
	Children []jsonNode `json:"children,omitempty"`
}

type jsonRef struct {
	ID     SemanticID `json:"id"`
	Role   Role       `json:"role"`
	Label  string     `json:"label"`
	Intent Intent     `json:"intent,omitempty"`
}

type jsonDoc struct {
	Version       string         `json:"version"`
	Standard      string         `json:"standard"`
	URL           string         `json:"url,omitempty"`
	Title         string         `json:"title,omitempty"`
	Language      string         `json:"language,omitempty"`
	GeneratedAt   int64          `json:"generatedAt"`
	Certification *Certification `json:"certification,omitempty"`
	Root          *jsonNode      `json:"root"`
	Landmarks     []jsonRef      `json:"landmarks"`
	Interactables []jsonRef      `json:"interactables"`
	StateGraph    *StateGraph    `json:"stateGraph,omitempty"`
}

// MarshalJSON renders the document in nested form: arena handles become
// inline child objects.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := jsonDoc{
		Version:       d.Version,
		Standard:      d.Standard,
		URL:           d.URL,
		Title:         d.Title,
		Language:      d.Language,
		GeneratedAt:   d.GeneratedAt,
		Certification: d.Certification,
		StateGraph:    d.Graph,
		Landmarks:     []jsonRef{},
		Interactables: []jsonRef{},
	}
	if root := d.Root(); root != nil {
		n := d.toJSONNode(d.root)
		out.Root = &n
	}
	for _, n := range d.LandmarkNodes() {
		out.Landmarks = append(out.Landmarks, jsonRef{ID: n.ID, Role: n.Role, Label: n.Label})
	}
	for _, n := range d.InteractableNodes() {
		out.Interactables = append(out.Interactables, jsonRef{ID: n.ID, Role: n.Role, Label: n.Label, Intent: n.Intent})
	}
	return json.Marshal(out)
}

func (d *Document) toJSONNode(id NodeID) jsonNode {
	n := d.Node(id)
	j := jsonNode{
		ID:       n.ID,
		Role:     n.Role,
		Label:    n.Label,
		Intent:   n.Intent,
		State:    n.State,
		Href:     n.Href,
		Selector: n.Selector,
		A11y:     n.A11y,
	}
	for _, c := range n.Children {
		j.Children = append(j.Children, d.toJSONNode(c))
	}
	return j
}

// UnmarshalJSON rebuilds the arena, the index and the landmark,
// interactable and heading caches from the nested form. A document that
// round-trips through JSON serializes identically afterwards.
func (d *Document) UnmarshalJSON(data []byte) error {
	var in jsonDoc
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	d.Version = in.Version
	d.Standard = in.Standard
	d.URL = in.URL
	d.Title = in.Title
	d.Language = in.Language
	d.GeneratedAt = in.GeneratedAt
	d.Certification = in.Certification
	d.Graph = in.StateGraph
	d.nodes = nil
	d.index = make(map[SemanticID]NodeID)
	d.root = InvalidNode
	d.Landmarks = nil
	d.Interactables = nil
	d.Headings = nil
	if in.Root != nil {
		d.root = d.fromJSONNode(in.Root, InvalidNode)
	}
	return nil
}

func (d *Document) fromJSONNode(j *jsonNode, parent NodeID) NodeID {
	id := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, SemanticNode{
		ID:       j.ID,
		Role:     j.Role,
		Label:    j.Label,
		Intent:   j.Intent,
		State:    j.State,
		Href:     j.Href,
		Selector: j.Selector,
		A11y:     j.A11y,
		Parent:   parent,
	})
	d.index[j.ID] = id
	if j.Role.IsLandmark() {
		d.Landmarks = append(d.Landmarks, j.ID)
	}
	if j.Role.IsInteractable() {
		d.Interactables = append(d.Interactables, j.ID)
	}
	if j.Role == RoleHeading {
		d.Headings = append(d.Headings, j.ID)
	}
	for i := range j.Children {
		c := d.fromJSONNode(&j.Children[i], id)
		d.nodes[id].Children = append(d.nodes[id].Children, c)
	}
	return id
}
