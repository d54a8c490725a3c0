package service

import (
	"testing"

	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/config"
)

func testIssue(check domain.CheckKind, severity domain.Severity, line int, category string) domain.Issue {
	return domain.Issue{
		Check:    check,
		Category: category,
		Severity: severity,
		Line:     line,
		Message:  "test finding",
	}
}

func TestBlocks_SecuritySwitches(t *testing.T) {
	tests := []struct {
		name           string
		severity       domain.Severity
		failOnCritical bool
		failOnError    bool
		want           bool
	}{
		{"critical blocks when failOnCritical on", domain.SeverityCritical, true, true, true},
		{"critical passes when failOnCritical off", domain.SeverityCritical, false, true, false},
		{"error blocks when failOnError on", domain.SeverityError, true, true, true},
		{"error passes when failOnError off", domain.SeverityError, true, false, false},
		{"critical ignores failOnError", domain.SeverityCritical, true, false, true},
		{"warning never blocks", domain.SeverityWarning, true, true, false},
		{"info never blocks", domain.SeverityInfo, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Security.FailOnCritical = tt.failOnCritical
			cfg.Security.FailOnError = tt.failOnError

			issue := testIssue(domain.CheckSecurity, tt.severity, 1, "hardcoded-secret")
			if got := blocks(issue, cfg); got != tt.want {
				t.Errorf("blocks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlocks_ViolationSwitches(t *testing.T) {
	checks := []struct {
		check  domain.CheckKind
		toggle func(cfg *config.Config, on bool)
	}{
		{domain.CheckQuality, func(cfg *config.Config, on bool) { cfg.Quality.FailOnViolations = on }},
		{domain.CheckAccessibility, func(cfg *config.Config, on bool) { cfg.Accessibility.FailOnViolations = on }},
		{domain.CheckAdvanced, func(cfg *config.Config, on bool) { cfg.Advanced.FailOnViolations = on }},
	}

	for _, c := range checks {
		t.Run(string(c.check), func(t *testing.T) {
			cfg := config.DefaultConfig()

			c.toggle(cfg, true)
			if !blocks(testIssue(c.check, domain.SeverityError, 1, "x"), cfg) {
				t.Error("error should block when failOnViolations is on")
			}
			if !blocks(testIssue(c.check, domain.SeverityCritical, 1, "x"), cfg) {
				t.Error("critical should block when failOnViolations is on")
			}
			if blocks(testIssue(c.check, domain.SeverityWarning, 1, "x"), cfg) {
				t.Error("warning should never block")
			}

			c.toggle(cfg, false)
			if blocks(testIssue(c.check, domain.SeverityError, 1, "x"), cfg) {
				t.Error("error should not block when failOnViolations is off")
			}
		})
	}
}

func TestPartition_Buckets(t *testing.T) {
	cfg := config.DefaultConfig()
	issues := []domain.Issue{
		testIssue(domain.CheckSecurity, domain.SeverityCritical, 12, "hardcoded-secret"),
		testIssue(domain.CheckQuality, domain.SeverityWarning, 1, "file-length"),
		testIssue(domain.CheckSecurity, domain.SeverityInfo, 30, "console-statement"),
		testIssue(domain.CheckAccessibility, domain.SeverityError, 9, "missing-alt"),
	}

	p := Partition(issues, cfg)

	if len(p.Blocking) != 2 {
		t.Fatalf("Expected 2 blocking issues, got %d", len(p.Blocking))
	}
	if len(p.Warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(p.Warnings))
	}
	if len(p.Info) != 1 {
		t.Fatalf("Expected 1 info issue, got %d", len(p.Info))
	}
	if p.Total() != 4 {
		t.Errorf("Expected total 4, got %d", p.Total())
	}
	if !p.HasBlocking() {
		t.Error("Partition should report blocking issues")
	}

	// Blocking issues come back ordered by line
	if p.Blocking[0].Line != 9 || p.Blocking[1].Line != 12 {
		t.Errorf("Blocking issues out of order: lines %d, %d", p.Blocking[0].Line, p.Blocking[1].Line)
	}
}

func TestPartition_AdvisoryCheckDemotesToWarning(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Security.FailOnCritical = false
	cfg.Security.FailOnError = false

	issues := []domain.Issue{
		testIssue(domain.CheckSecurity, domain.SeverityCritical, 3, "hardcoded-secret"),
		testIssue(domain.CheckSecurity, domain.SeverityError, 7, "unsafe-execution"),
	}

	p := Partition(issues, cfg)

	if p.HasBlocking() {
		t.Error("Advisory security check should not block")
	}
	if len(p.Warnings) != 2 {
		t.Errorf("Non-blocking critical and error findings should surface as warnings, got %d", len(p.Warnings))
	}
}

func TestPartition_SortWithinLine(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Quality.FailOnViolations = false
	cfg.Advanced.FailOnViolations = false

	issues := []domain.Issue{
		testIssue(domain.CheckAdvanced, domain.SeverityWarning, 5, "non-null-assertion"),
		testIssue(domain.CheckQuality, domain.SeverityWarning, 5, "deep-nesting"),
		testIssue(domain.CheckQuality, domain.SeverityWarning, 2, "file-length"),
	}

	p := Partition(issues, cfg)

	if len(p.Warnings) != 3 {
		t.Fatalf("Expected 3 warnings, got %d", len(p.Warnings))
	}
	if p.Warnings[0].Line != 2 {
		t.Errorf("Expected line 2 first, got line %d", p.Warnings[0].Line)
	}
	// Same line: quality sorts ahead of advanced
	if p.Warnings[1].Check != domain.CheckQuality || p.Warnings[2].Check != domain.CheckAdvanced {
		t.Errorf("Expected quality before advanced on the same line, got %s then %s",
			p.Warnings[1].Check, p.Warnings[2].Check)
	}
}

func TestVerdictFor(t *testing.T) {
	cfg := config.DefaultConfig()

	blocking := []domain.Issue{testIssue(domain.CheckSecurity, domain.SeverityCritical, 1, "hardcoded-secret")}
	v := verdictFor(blocking, cfg)
	if v.Passed {
		t.Error("Verdict with a blocking issue should not pass")
	}

	advisory := []domain.Issue{testIssue(domain.CheckSecurity, domain.SeverityWarning, 1, "x")}
	v = verdictFor(advisory, cfg)
	if !v.Passed {
		t.Error("Verdict with only warnings should pass")
	}

	v = verdictFor(nil, cfg)
	if !v.Passed {
		t.Error("Verdict with no issues should pass")
	}
	if v.Issues == nil {
		t.Error("Verdict issues should marshal as an empty list, not null")
	}
}
