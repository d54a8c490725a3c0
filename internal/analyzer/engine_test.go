package analyzer

import (
	"regexp"
	"testing"

	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/config"
)

func TestSplitLines_OneBasedAddressing(t *testing.T) {
	lines := splitLines("first\nsecond\nthird")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1] != "second" {
		t.Errorf("expected lines[1] to be line 2, got %q", lines[1])
	}
}

func TestWindow_Clipping(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}

	tests := []struct {
		name     string
		start    int
		n        int
		expected string
	}{
		{"full window", 0, 2, "a\nb"},
		{"clipped at end", 3, 10, "d"},
		{"start past end", 9, 3, ""},
		{"negative start", -2, 2, "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := window(lines, tt.start, tt.n); got != tt.expected {
				t.Errorf("window(%d, %d) = %q, expected %q", tt.start, tt.n, got, tt.expected)
			}
		})
	}
}

func TestWindowBefore(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}

	if got := windowBefore(lines, 2, 1); got != "b\nc" {
		t.Errorf("expected look-behind to include the current line, got %q", got)
	}
	if got := windowBefore(lines, 1, 10); got != "a\nb" {
		t.Errorf("expected clipped look-behind, got %q", got)
	}
}

func TestIsCommentLine(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{"// line comment", true},
		{"  // indented comment", true},
		{"/* block start", true},
		{" * block middle", true},
		{"const x = 1 // trailing", false},
		{"const x = 1", false},
	}

	for _, tt := range tests {
		if got := isCommentLine(tt.line); got != tt.expected {
			t.Errorf("isCommentLine(%q) = %v, expected %v", tt.line, got, tt.expected)
		}
	}
}

func TestLooksLikePlaceholder(t *testing.T) {
	tests := []struct {
		line     string
		expected bool
	}{
		{`const key = "sk_live_example123456789"`, true},
		{`apiKey: "YOUR_API_KEY_HERE"`, true},
		{`const sampleToken = "abc12345678"`, true},
		{`const apiKey = "sk_live_abcdef0123456789"`, false},
	}

	for _, tt := range tests {
		if got := looksLikePlaceholder(tt.line); got != tt.expected {
			t.Errorf("looksLikePlaceholder(%q) = %v, expected %v", tt.line, got, tt.expected)
		}
	}
}

func TestRunRules_CollectsPerLinePerRule(t *testing.T) {
	rules := []rule{
		{re: regexp.MustCompile(`foo`), category: "foo", severity: domain.SeverityWarning, message: "foo found"},
		{re: regexp.MustCompile(`bar`), category: "bar", severity: domain.SeverityError, message: "bar found"},
	}
	lines := []string{"foo and bar", "nothing", "just foo"}

	issues := runRules(domain.CheckQuality, rules, lines)
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	if issues[0].Line != 1 || issues[1].Line != 1 || issues[2].Line != 3 {
		t.Errorf("unexpected line numbers: %+v", issues)
	}
}

func TestRunRulesFirstMatch_OnePerLine(t *testing.T) {
	rules := []rule{
		{re: regexp.MustCompile(`foo`), category: "first", severity: domain.SeverityError, message: "first"},
		{re: regexp.MustCompile(`foo`), category: "second", severity: domain.SeverityError, message: "second"},
	}

	issues := runRulesFirstMatch(domain.CheckSecurity, rules, []string{"foo"})
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	if issues[0].Category != "first" {
		t.Errorf("expected the first rule to win, got %s", issues[0].Category)
	}
}

func TestRunRules_Suppression(t *testing.T) {
	rules := []rule{
		{
			re:       regexp.MustCompile(`secret`),
			category: "secret",
			severity: domain.SeverityCritical,
			message:  "secret found",
			suppress: isCommentLine,
		},
	}
	lines := []string{"// secret in a comment", "const secret = 1"}

	issues := runRules(domain.CheckSecurity, rules, lines)
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue after suppression, got %d", len(issues))
	}
	if issues[0].Line != 2 {
		t.Errorf("expected the live line to be flagged, got line %d", issues[0].Line)
	}
}

func TestGuard_RecoversPanickingScan(t *testing.T) {
	issues := guard(nil, "panicky", func() []domain.Issue {
		panic("malformed input")
	})
	if issues != nil {
		t.Errorf("expected nil issues from a panicking scan, got %+v", issues)
	}

	ok := guard(nil, "healthy", func() []domain.Issue {
		return []domain.Issue{{Category: "fine", Line: 1}}
	})
	if len(ok) != 1 {
		t.Errorf("expected the healthy scan to report, got %d issues", len(ok))
	}
}

func TestEngines_CanonicalOrder(t *testing.T) {
	cfg := config.DefaultConfig()
	engines := Engines(cfg, nil)

	if len(engines) != 4 {
		t.Fatalf("expected 4 engines, got %d", len(engines))
	}
	expected := []domain.CheckKind{
		domain.CheckSecurity,
		domain.CheckQuality,
		domain.CheckAccessibility,
		domain.CheckAdvanced,
	}
	for i, kind := range expected {
		if engines[i].Name() != kind {
			t.Errorf("engine %d: expected %s, got %s", i, kind, engines[i].Name())
		}
	}
}
