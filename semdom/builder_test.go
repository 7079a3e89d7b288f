package semdom

import (
	"errors"
	"strings"
	"testing"
)

func mustParse(t *testing.T, markup string) *Document {
	t.Helper()
	doc, err := Parse(markup, "", Config{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := doc.CheckIntegrity(); err != nil {
		t.Fatalf("integrity: %v", err)
	}
	return doc
}

const samplePage = `<!DOCTYPE html>
<html lang="en">
<head><title>Demo Shop</title></head>
<body>
  <header><h1>Demo Shop</h1></header>
  <nav aria-label="Main menu">
    <a href="/products">Products</a>
    <a href="/about">About us</a>
  </nav>
  <main>
    <h2>Checkout</h2>
    <form id="checkout">
      <input type="text" placeholder="Your name">
      <input type="checkbox" checked aria-label="Subscribe">
      <button>Submit order</button>
      <button disabled>Delete account</button>
    </form>
  </main>
  <footer><a href="mailto:shop@example.com">Contact</a></footer>
</body>
</html>`

func TestParse_Roles(t *testing.T) {
	doc := mustParse(t, samplePage)

	tests := []struct {
		landmark string
		role     Role
	}{
		{"header", RoleBanner},
		{"navigation", RoleNavigation},
		{"main", RoleMain},
		{"footer", RoleContentinfo},
		{"form", RoleForm},
	}
	for _, tc := range tests {
		n, ok := doc.Navigate(tc.landmark)
		if !ok {
			t.Fatalf("landmark %q not found", tc.landmark)
		}
		if n.Role != tc.role {
			t.Errorf("landmark %q: role %q, want %q", tc.landmark, n.Role, tc.role)
		}
	}
}

func TestParse_InputTypes(t *testing.T) {
	tests := []struct {
		typ  string
		role Role
	}{
		{"text", RoleTextbox},
		{"", RoleTextbox},
		{"checkbox", RoleCheckbox},
		{"radio", RoleRadio},
		{"submit", RoleButton},
		{"button", RoleButton},
		{"reset", RoleButton},
		{"search", RoleSearchbox},
		{"number", RoleSpinbutton},
		{"range", RoleSlider},
		{"email", RoleTextbox},
	}
	for _, tc := range tests {
		doc := mustParse(t, `<body><input type="`+tc.typ+`"></body>`)
		if len(doc.Interactables) != 1 {
			t.Fatalf("type %q: %d interactables", tc.typ, len(doc.Interactables))
		}
		n, _ := doc.Query(doc.Interactables[0])
		if n.Role != tc.role {
			t.Errorf("type %q: role %q, want %q", tc.typ, n.Role, tc.role)
		}
	}
}

func TestParse_ExplicitRoleWins(t *testing.T) {
	doc := mustParse(t, `<body><div role="button" aria-label="Go">x</div></body>`)
	n, ok := doc.Query(doc.Interactables[0])
	if !ok || n.Role != RoleButton {
		t.Fatalf("explicit role: got %+v", n)
	}

	// role outranks data-agent-role.
	doc = mustParse(t, `<body><div role="button" data-agent-role="link" aria-label="Go">x</div></body>`)
	n, _ = doc.Query(doc.Interactables[0])
	if n.Role != RoleButton {
		t.Fatalf("role vs data-agent-role: got %q", n.Role)
	}

	// data-agent-role still beats the tag mapping.
	doc = mustParse(t, `<body><div data-agent-role="link" aria-label="Go">x</div></body>`)
	n, _ = doc.Query(doc.Interactables[0])
	if n.Role != RoleLink {
		t.Fatalf("data-agent-role vs tag: got %q", n.Role)
	}
}

func TestParse_LabeledSectionIsRegion(t *testing.T) {
	doc := mustParse(t, `<body>
		<section aria-label="Featured">a</section>
		<section>b</section>
	</body>`)
	if len(doc.Landmarks) != 1 {
		t.Fatalf("%d landmarks, want 1", len(doc.Landmarks))
	}
	n, _ := doc.Query(doc.Landmarks[0])
	if n.Role != RoleRegion || n.Label != "Featured" {
		t.Fatalf("labeled section: got %q %q", n.Role, n.Label)
	}
	found := false
	doc.Walk(func(_ NodeID, sn *SemanticNode, _ int) bool {
		if sn.Role == RoleSection {
			found = true
		}
		return true
	})
	if !found {
		t.Fatal("unlabeled section should keep the section role")
	}
}

func TestParse_DownloadLinks(t *testing.T) {
	tests := []struct {
		markup string
		intent Intent
	}{
		{`<a href="/files/report.pdf">Report</a>`, IntentDownload},
		{`<a href="/files/bundle.zip?v=2">Bundle</a>`, IntentDownload},
		{`<a href="/files/report" download>Report</a>`, IntentDownload},
		{`<a href="/files/report.html">Report</a>`, IntentNavigate},
	}
	for _, tc := range tests {
		doc := mustParse(t, "<body>"+tc.markup+"</body>")
		n, _ := doc.Query(doc.Interactables[0])
		if n.Intent != tc.intent {
			t.Errorf("%s: intent %q, want %q", tc.markup, n.Intent, tc.intent)
		}
	}
}

func TestParse_LabelChain(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		label  string
	}{
		{"aria-label wins", `<button aria-label="Close dialog" title="x">y</button>`, "Close dialog"},
		{"data-agent-label", `<button data-agent-label="Buy">y</button>`, "Buy"},
		{"title", `<button title="Info">y</button>`, "Info"},
		{"text content", `<button>  Save   draft </button>`, "Save draft"},
		{"placeholder", `<input placeholder="Search here">`, "Search here"},
		{"long text skipped", `<button>` + strings.Repeat("x", 150) + `</button>`, ""},
	}
	for _, tc := range tests {
		doc := mustParse(t, "<body>"+tc.markup+"</body>")
		if len(doc.Interactables) != 1 {
			t.Fatalf("%s: %d interactables", tc.name, len(doc.Interactables))
		}
		n, _ := doc.Query(doc.Interactables[0])
		if n.Label != tc.label {
			t.Errorf("%s: label %q, want %q", tc.name, n.Label, tc.label)
		}
	}
}

func TestParse_GeneratedIDs(t *testing.T) {
	doc := mustParse(t, `<body>
		<button>Save</button>
		<button>Save</button>
		<a href="/x">Read More!</a>
	</body>`)

	if _, ok := doc.Query("btn-save"); !ok {
		t.Fatal("btn-save missing")
	}
	if _, ok := doc.Query("btn-save-2"); !ok {
		t.Fatal("btn-save-2 missing")
	}
	if _, ok := doc.Query("link-read-more"); !ok {
		t.Fatal("link-read-more missing")
	}
}

func TestParse_ExplicitIDs(t *testing.T) {
	doc := mustParse(t, `<body>
		<button data-agent-id="confirm">Yes</button>
		<button id="cancel">No</button>
		<button id="cancel">No again</button>
	</body>`)

	if _, ok := doc.Query("confirm"); !ok {
		t.Fatal("data-agent-id not honored")
	}
	if _, ok := doc.Query("cancel"); !ok {
		t.Fatal("id attribute not honored")
	}
	// Duplicate markup ids still come out unique.
	if _, ok := doc.Query("cancel-2"); !ok {
		t.Fatal("duplicate id not suffixed")
	}
}

func TestParse_Hoisting(t *testing.T) {
	// One wrapper level is looked through, two are not.
	doc := mustParse(t, `<body>
		<div><button>Shallow</button></div>
		<div><div><button>Deep</button></div></div>
	</body>`)

	if _, ok := doc.Query("btn-shallow"); !ok {
		t.Fatal("single-wrapper child not hoisted")
	}
	if _, ok := doc.Query("btn-deep"); ok {
		t.Fatal("double-wrapper child should stay invisible")
	}
}

func TestParse_ExcludedTags(t *testing.T) {
	doc := mustParse(t, `<body>
		<script>var x = "<button>fake</button>";</script>
		<button>Real</button>
	</body>`)
	if len(doc.Interactables) != 1 {
		t.Fatalf("interactables: got %d, want 1", len(doc.Interactables))
	}
	n, _ := doc.Query(doc.Interactables[0])
	if n.Label != "Real" {
		t.Fatalf("label: got %q", n.Label)
	}
}

func TestParse_DepthLimit(t *testing.T) {
	depth := 10
	markup := strings.Repeat("<ul>", depth) + "<li>leaf</li>" + strings.Repeat("</ul>", depth)
	doc, err := Parse("<body>"+markup+"</body>", "", Config{MaxDepth: 3})
	if err != nil {
		t.Fatal(err)
	}
	maxSeen := 0
	doc.Walk(func(_ NodeID, _ *SemanticNode, d int) bool {
		if d > maxSeen {
			maxSeen = d
		}
		return true
	})
	if maxSeen > 3 {
		t.Fatalf("depth %d exceeds limit", maxSeen)
	}
}

func TestParse_InputTooLarge(t *testing.T) {
	_, err := Parse(strings.Repeat("x", 100), "", Config{MaxInputSize: 10})
	var tooLarge *InputTooLargeError
	if !errors.As(err, &tooLarge) {
		t.Fatalf("error: got %v", err)
	}
	if tooLarge.Max != 10 || tooLarge.Actual != 100 {
		t.Fatalf("error fields: %+v", tooLarge)
	}
}

func TestParse_States(t *testing.T) {
	tests := []struct {
		markup string
		state  State
	}{
		{`<button disabled aria-expanded="true">x</button>`, StateDisabled},
		{`<button aria-expanded="true">x</button>`, StateExpanded},
		{`<button aria-expanded="false">x</button>`, StateCollapsed},
		{`<div role="tab" aria-selected="true">x</div>`, StateSelected},
		{`<div role="checkbox" aria-checked="mixed">x</div>`, StateMixed},
		{`<input type="checkbox" checked>`, StateChecked},
		{`<input type="checkbox">`, StateUnchecked},
		{`<button>x</button>`, StateIdle},
	}
	for _, tc := range tests {
		doc := mustParse(t, "<body>"+tc.markup+"</body>")
		root := doc.Root()
		if len(root.Children) != 1 {
			t.Fatalf("%s: %d children", tc.markup, len(root.Children))
		}
		n := doc.Node(root.Children[0])
		if n.State != tc.state {
			t.Errorf("%s: state %q, want %q", tc.markup, n.State, tc.state)
		}
	}
}

func TestParse_Intents(t *testing.T) {
	tests := []struct {
		markup string
		intent Intent
	}{
		{`<button>Submit order</button>`, IntentSubmit},
		{`<button>Send message</button>`, IntentSubmit},
		{`<button>Cancel</button>`, IntentClose},
		{`<button>Delete item</button>`, IntentDelete},
		{`<button>Remove row</button>`, IntentDelete},
		{`<button>Add to cart</button>`, IntentCreate},
		{`<button>Save draft</button>`, IntentSubmit},
		{`<button>Search</button>`, IntentSearch},
		{`<button>Frobnicate</button>`, IntentAction},
		{`<a href="/about">About</a>`, IntentNavigate},
		{`<a href="mailto:x@y.z">Mail</a>`, IntentEmail},
		{`<a href="tel:+123">Call</a>`, IntentPhone},
		{`<input type="checkbox">`, IntentToggle},
		{`<select><option>a</option></select>`, IntentSelect},
		{`<button data-agent-intent="download">Get</button>`, IntentDownload},
	}
	for _, tc := range tests {
		doc := mustParse(t, "<body>"+tc.markup+"</body>")
		if len(doc.Interactables) != 1 {
			t.Fatalf("%s: %d interactables", tc.markup, len(doc.Interactables))
		}
		n, _ := doc.Query(doc.Interactables[0])
		if n.Intent != tc.intent {
			t.Errorf("%s: intent %q, want %q", tc.markup, n.Intent, tc.intent)
		}
	}
}

func TestParse_HrefValidation(t *testing.T) {
	doc := mustParse(t, `<body>
		<a href="javascript:alert(1)">Evil</a>
		<a href="/safe">Safe</a>
	</body>`)
	evil, _ := doc.Query("link-evil")
	if evil == nil || evil.Href != "" {
		t.Fatalf("dangerous href carried: %+v", evil)
	}
	safe, _ := doc.Query("link-safe")
	if safe == nil || safe.Href != "/safe" {
		t.Fatalf("safe href dropped: %+v", safe)
	}
}

func TestParse_DocumentMetadata(t *testing.T) {
	doc, err := Parse(samplePage, "https://example.com/shop", Config{})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Demo Shop" {
		t.Errorf("title: got %q", doc.Title)
	}
	if doc.Language != "en" {
		t.Errorf("language: got %q", doc.Language)
	}
	if doc.URL != "https://example.com/shop" {
		t.Errorf("url: got %q", doc.URL)
	}
	if doc.GeneratedAt == 0 {
		t.Error("generatedAt not set")
	}
	if doc.Version != Version || doc.Standard != Standard {
		t.Errorf("header: %q %q", doc.Version, doc.Standard)
	}
}

func TestParse_A11y(t *testing.T) {
	doc := mustParse(t, `<body>
		<h3>Section title</h3>
		<button tabindex="-1">Skip me</button>
		<div tabindex="0" aria-label="Widget">x</div>
		<button disabled>Off</button>
	</body>`)

	h, _ := doc.Query("h-section-title")
	if h == nil || h.A11y.Level != 3 {
		t.Fatalf("heading level: %+v", h)
	}
	skip, _ := doc.Query("btn-skip-me")
	if !skip.A11y.Focusable || skip.A11y.InTabOrder {
		t.Fatalf("negative tabindex: %+v", skip.A11y)
	}
	widget, _ := doc.Query("gene-widget")
	if widget == nil {
		// Generic role with aria-label still becomes a node.
		t.Fatal("tabindexed div missing")
	}
	if !widget.A11y.Focusable || !widget.A11y.InTabOrder {
		t.Fatalf("tabindexed div: %+v", widget.A11y)
	}
	off, _ := doc.Query("btn-off")
	if off.A11y.Focusable {
		t.Fatalf("disabled button focusable: %+v", off.A11y)
	}
}

func TestParse_DeterministicIDs(t *testing.T) {
	// WHAT: two parses of identical markup produce identical ids.
	// WHY: agents cache ids across calls; counters must reset per parse.
	a := mustParse(t, samplePage)
	b := mustParse(t, samplePage)
	var idsA, idsB []SemanticID
	a.Walk(func(_ NodeID, n *SemanticNode, _ int) bool { idsA = append(idsA, n.ID); return true })
	b.Walk(func(_ NodeID, n *SemanticNode, _ int) bool { idsB = append(idsB, n.ID); return true })
	if len(idsA) != len(idsB) {
		t.Fatalf("node counts differ: %d vs %d", len(idsA), len(idsB))
	}
	for i := range idsA {
		if idsA[i] != idsB[i] {
			t.Fatalf("ids diverge at %d: %q vs %q", i, idsA[i], idsB[i])
		}
	}
}
