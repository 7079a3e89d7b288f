package semdom

import "testing"

const richPage = `<!DOCTYPE html>
<html lang="en">
<head><title>Well Built</title></head>
<body>
  <header><h1>Well Built</h1></header>
  <nav aria-label="Primary">
    <a href="/home">Home page</a>
    <a href="/docs">Documentation</a>
  </nav>
  <main>
    <h2>Welcome</h2>
    <form aria-label="Signup">
      <input type="text" aria-label="Email address">
      <button>Submit form</button>
    </form>
  </main>
  <footer><a href="/imprint">Imprint</a></footer>
</body>
</html>`

func TestCertify_RichPage(t *testing.T) {
	doc := mustParse(t, richPage)
	cert := doc.Certification
	if cert == nil {
		t.Fatal("no certification attached")
	}
	if cert.Level != LevelAAA && cert.Level != LevelAA {
		t.Fatalf("level: got %q, score %.1f", cert.Level, cert.Score)
	}
	if len(cert.Checks) != 13 {
		t.Fatalf("checks: got %d, want 13", len(cert.Checks))
	}
	for _, id := range []string{"STRUCT-001", "STRUCT-002", "STRUCT-003", "STRUCT-004",
		"A11Y-001", "NAV-001", "NAV-002", "INTEROP-001"} {
		found := false
		for _, c := range cert.Checks {
			if c.ID == id {
				found = true
				if !c.Passed {
					t.Errorf("check %s failed: %s", id, c.Details)
				}
			}
		}
		if !found {
			t.Errorf("check %s missing", id)
		}
	}
}

func TestCertify_BarePage(t *testing.T) {
	doc := mustParse(t, `<body>
		<div><a href="/x">here</a></div>
		<div><a href="/y">click here</a></div>
	</body>`)
	cert := doc.Certification
	if cert.Level == LevelAAA {
		t.Fatalf("bare page certified %q (%.1f)", cert.Level, cert.Score)
	}
	for _, c := range cert.Checks {
		switch c.ID {
		case "STRUCT-001", "STRUCT-002", "NAV-001", "A11Y-002":
			if c.Passed {
				t.Errorf("check %s should fail on a bare page", c.ID)
			}
		}
	}
}

func TestCertify_Deterministic(t *testing.T) {
	doc := mustParse(t, richPage)
	a := Certify(doc)
	b := Certify(doc)
	if a.Score != b.Score || a.Level != b.Level {
		t.Fatalf("certification not stable: %.4f/%s vs %.4f/%s", a.Score, a.Level, b.Score, b.Level)
	}
	for i := range a.Checks {
		if a.Checks[i] != b.Checks[i] {
			t.Fatalf("check %d differs between runs", i)
		}
	}
}

func TestCertify_ScoreBounds(t *testing.T) {
	for _, markup := range []string{richPage, samplePage, "<body></body>"} {
		doc := mustParse(t, markup)
		s := doc.Certification.Score
		if s < 0 || s > 100 {
			t.Fatalf("score out of range: %f", s)
		}
	}
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score float64
		level Level
	}{
		{100, LevelAAA},
		{90, LevelAAA},
		{89.9, LevelAA},
		{70, LevelAA},
		{69.9, LevelA},
		{50, LevelA},
		{49.9, LevelNone},
		{0, LevelNone},
	}
	for _, tc := range tests {
		if got := levelFor(tc.score); got != tc.level {
			t.Errorf("levelFor(%v): got %q, want %q", tc.score, got, tc.level)
		}
	}
}
