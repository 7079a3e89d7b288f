package semdom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/semanticdom/semdom/kit"
)

// ErrNoDocument is returned by every query tool before the first
// successful parse_html call.
var ErrNoDocument = errors.New("no document loaded")

// NotFoundError is returned when a query names an id or landmark the
// current document does not contain.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Key)
}

// Session is the stateful side of the tool server: one parsed document,
// shared by all query tools. Safe for concurrent tool calls.
type Session struct {
	cfg    Config
	logger *slog.Logger

	mu  sync.RWMutex
	doc *Document

	mws []kit.Middleware
}

// NewSession creates a session with no document loaded.
func NewSession(cfg Config, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{cfg: cfg.withDefaults(), logger: logger}
}

// Use appends middleware applied to every tool endpoint, outermost first.
func (s *Session) Use(mws ...kit.Middleware) {
	s.mws = append(s.mws, mws...)
}

// Load replaces the session document.
func (s *Session) Load(doc *Document) {
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
}

// Document returns the current document, or nil before the first parse.
func (s *Session) Document() *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

func (s *Session) current() (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	return s.doc, nil
}

// RegisterMCP registers all semantic tools on an MCP server.
func (s *Session) RegisterMCP(srv *mcp.Server) {
	s.registerParseTool(srv)
	s.registerQueryTool(srv)
	s.registerNavigateTool(srv)
	s.registerLandmarksTool(srv)
	s.registerInteractablesTool(srv)
	s.registerStateGraphTool(srv)
	s.registerCertificationTool(srv)
}

func (s *Session) register(srv *mcp.Server, tool *mcp.Tool, endpoint kit.Endpoint, decode func(*mcp.CallToolRequest) (*kit.MCPDecodeResult, error)) {
	if len(s.mws) > 0 {
		endpoint = kit.Chain(s.mws...)(endpoint)
	}
	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	sch := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		sch["required"] = required
	}
	return sch
}

type nodeView struct {
	ID       SemanticID `json:"id"`
	Role     Role       `json:"role"`
	Label    string     `json:"label"`
	Intent   Intent     `json:"intent,omitempty"`
	State    State      `json:"state"`
	Href     string     `json:"href,omitempty"`
	Selector string     `json:"selector,omitempty"`
	A11y     A11y       `json:"a11y"`
	Children int        `json:"children"`
}

func viewOf(n *SemanticNode) nodeView {
	return nodeView{
		ID:       n.ID,
		Role:     n.Role,
		Label:    n.Label,
		Intent:   n.Intent,
		State:    n.State,
		Href:     n.Href,
		Selector: n.Selector,
		A11y:     n.A11y,
		Children: len(n.Children),
	}
}

// --- parse_html ---

type parseReq struct {
	HTML string `json:"html"`
	URL  string `json:"url"`
}

func (s *Session) registerParseTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "parse_html",
		Description: "Parse HTML markup into a semantic document and load it into the session.",
		InputSchema: inputSchema(map[string]any{
			"html": map[string]any{"type": "string", "description": "Raw HTML markup"},
			"url":  map[string]any{"type": "string", "description": "Source URL, metadata only"},
		}, []string{"html"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*parseReq)
		doc, err := Parse(r.HTML, r.URL, s.cfg)
		if err != nil {
			return nil, err
		}
		s.Load(doc)
		s.logger.InfoContext(ctx, "document parsed",
			"nodes", doc.NodeCount(),
			"landmarks", len(doc.Landmarks),
			"interactables", len(doc.Interactables))
		out := map[string]any{
			"title":         doc.Title,
			"nodes":         doc.NodeCount(),
			"landmarks":     len(doc.Landmarks),
			"interactables": len(doc.Interactables),
		}
		if doc.URL != "" {
			out["url"] = doc.URL
		}
		if c := doc.Certification; c != nil {
			out["certLevel"] = c.Level
			out["certScore"] = c.Score
		}
		return out, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r parseReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	s.register(srv, tool, endpoint, decode)
}

// --- semantic_query ---

type queryReq struct {
	ID string `json:"id"`
}

func (s *Session) registerQueryTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "semantic_query",
		Description: "Look up a node in the loaded document by its semantic id.",
		InputSchema: inputSchema(map[string]any{
			"id": map[string]any{"type": "string", "description": "Semantic id of the node"},
		}, []string{"id"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*queryReq)
		doc, err := s.current()
		if err != nil {
			return nil, err
		}
		n, ok := doc.Query(SemanticID(r.ID))
		if !ok {
			return nil, &NotFoundError{Kind: "element", Key: r.ID}
		}
		return viewOf(n), nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r queryReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	s.register(srv, tool, endpoint, decode)
}

// --- semantic_navigate ---

type navigateReq struct {
	Landmark string `json:"landmark"`
}

func (s *Session) registerNavigateTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "semantic_navigate",
		Description: "Find the first landmark region matching a role name (main, navigation, header, footer, ...).",
		InputSchema: inputSchema(map[string]any{
			"landmark": map[string]any{"type": "string", "description": "Landmark role name"},
		}, []string{"landmark"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*navigateReq)
		doc, err := s.current()
		if err != nil {
			return nil, err
		}
		n, ok := doc.Navigate(r.Landmark)
		if !ok {
			return nil, &NotFoundError{Kind: "landmark", Key: r.Landmark}
		}
		return viewOf(n), nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r navigateReq
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	s.register(srv, tool, endpoint, decode)
}

// --- semantic_list_landmarks ---

func (s *Session) registerLandmarksTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "semantic_list_landmarks",
		Description: "List the landmark regions of the loaded document in document order.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(_ context.Context, _ any) (any, error) {
		doc, err := s.current()
		if err != nil {
			return nil, err
		}
		out := make([]nodeView, 0, len(doc.Landmarks))
		for _, n := range doc.LandmarkNodes() {
			out = append(out, viewOf(n))
		}
		return map[string]any{"landmarks": out}, nil
	}

	decode := func(_ *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	}

	s.register(srv, tool, endpoint, decode)
}

// --- semantic_list_interactables ---

type interactablesReq struct {
	Filter string `json:"filter"`
}

func (s *Session) registerInteractablesTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "semantic_list_interactables",
		Description: "List interactive elements, optionally filtered by role (button, link, textbox, ...).",
		InputSchema: inputSchema(map[string]any{
			"filter": map[string]any{"type": "string", "description": "Role to filter by"},
		}, nil),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*interactablesReq)
		doc, err := s.current()
		if err != nil {
			return nil, err
		}
		want := Role("")
		if r.Filter != "" {
			want = RoleFromString(r.Filter)
		}
		var out []nodeView
		for _, n := range doc.InteractableNodes() {
			if want != "" && n.Role != want {
				continue
			}
			out = append(out, viewOf(n))
		}
		if out == nil {
			out = []nodeView{}
		}
		return map[string]any{"interactables": out}, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r interactablesReq
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
				return nil, err
			}
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	s.register(srv, tool, endpoint, decode)
}

// --- semantic_state_graph ---

type stateGraphReq struct {
	ID string `json:"id"`
}

func (s *Session) registerStateGraphTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "semantic_state_graph",
		Description: "Return the page state graph, or the local interaction table of one node when id is given.",
		InputSchema: inputSchema(map[string]any{
			"id": map[string]any{"type": "string", "description": "Semantic id of a single node"},
		}, nil),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		r := req.(*stateGraphReq)
		doc, err := s.current()
		if err != nil {
			return nil, err
		}
		graph := doc.Graph
		if graph == nil {
			graph = BuildStateGraph(doc)
		}
		if r.ID == "" {
			return graph, nil
		}
		n, ok := doc.Query(SemanticID(r.ID))
		if !ok {
			return nil, &NotFoundError{Kind: "element", Key: r.ID}
		}
		for i := range graph.Locals {
			if graph.Locals[i].NodeID == n.ID {
				return graph.Locals[i], nil
			}
		}
		// Node exists but has no interaction table.
		return LocalTable{NodeID: n.ID, Role: n.Role, CurrentState: n.State}, nil
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var r stateGraphReq
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
				return nil, err
			}
		}
		return &kit.MCPDecodeResult{Request: &r}, nil
	}

	s.register(srv, tool, endpoint, decode)
}

// --- semantic_certification ---

func (s *Session) registerCertificationTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "semantic_certification",
		Description: "Return the agent-readiness certification report of the loaded document.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(_ context.Context, _ any) (any, error) {
		doc, err := s.current()
		if err != nil {
			return nil, err
		}
		if doc.Certification != nil {
			return doc.Certification, nil
		}
		return Certify(doc), nil
	}

	decode := func(_ *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	}

	s.register(srv, tool, endpoint, decode)
}
