package semdom

import (
	"strings"
	"testing"
)

func TestOneLiner(t *testing.T) {
	doc, err := Parse(samplePage, "", Config{})
	if err != nil {
		t.Fatal(err)
	}
	line := OneLiner(doc)
	if strings.Contains(line, "\n") {
		t.Fatalf("one-liner has newlines: %q", line)
	}
	if !strings.Contains(line, "Demo Shop") {
		t.Fatalf("title missing: %q", line)
	}
}

func TestOneLiner_TruncatesTitle(t *testing.T) {
	long := strings.Repeat("Very Long Title ", 10)
	doc := mustParse(t, "<html><head><title>"+long+"</title></head><body><main></main></body></html>")
	line := OneLiner(doc)
	if !strings.Contains(line, "...") {
		t.Fatalf("long title not truncated: %q", line)
	}
}

func TestOneLiner_EmptyPage(t *testing.T) {
	doc := mustParse(t, "<body></body>")
	if got := OneLiner(doc); got != "empty page" {
		t.Fatalf("empty page: got %q", got)
	}
}

func TestAgentSummary_Sections(t *testing.T) {
	doc, err := Parse(samplePage, "https://example.com/shop", Config{})
	if err != nil {
		t.Fatal(err)
	}
	out := AgentSummary(doc)

	for _, want := range []string{"PAGE: Demo Shop", "LANDMARKS:", "ACTIONS:", "STATE:", "STATS:"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	// The disabled button shows up in the state section.
	if !strings.Contains(out, "=disabled") {
		t.Errorf("disabled state not reported:\n%s", out)
	}
}

func TestAgentSummary_CapsActions(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<body>")
	for i := 0; i < 15; i++ {
		sb.WriteString("<button>Action number ")
		sb.WriteByte(byte('a' + i))
		sb.WriteString("</button>")
	}
	sb.WriteString("</body>")
	out := AgentSummary(mustParse(t, sb.String()))
	if !strings.Contains(out, "(+5 more)") {
		t.Fatalf("overflow marker missing:\n%s", out)
	}
}

func TestNavSummary(t *testing.T) {
	doc := mustParse(t, `<body>
		<a href="/alpha">Alpha</a>
		<a href="/beta">Beta</a>
	</body>`)
	out := NavSummary(doc)
	if !strings.Contains(out, "Alpha -> /alpha") {
		t.Fatalf("link line missing:\n%s", out)
	}
	if !strings.Contains(out, "TRANSITIONS:") {
		t.Fatalf("transitions missing:\n%s", out)
	}
	if !strings.Contains(out, "initial --link-alpha--> state__alpha") {
		t.Fatalf("transition line wrong:\n%s", out)
	}
}

func TestNavSummary_NoLinks(t *testing.T) {
	out := NavSummary(mustParse(t, "<body><main></main></body>"))
	if !strings.Contains(out, "(no links)") {
		t.Fatalf("empty nav: %q", out)
	}
}

func TestAudioSummary(t *testing.T) {
	doc := mustParse(t, samplePage)
	out := AudioSummary(doc)
	if !strings.HasPrefix(out, "Page titled Demo Shop.") {
		t.Fatalf("prefix: %q", out)
	}
	if !strings.Contains(out, "Available actions:") {
		t.Fatalf("actions missing: %q", out)
	}

	empty := AudioSummary(mustParse(t, "<body></body>"))
	if !strings.Contains(empty, "No actions available.") {
		t.Fatalf("empty page audio: %q", empty)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"longer than ten", 10, "longer ..."},
		{"héllo wörld éxtra", 10, "héllo w..."},
		{"ab", 2, "ab"},
	}
	for _, tc := range tests {
		if got := truncate(tc.in, tc.max); got != tc.want {
			t.Errorf("truncate(%q, %d): got %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
