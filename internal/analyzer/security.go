package analyzer

import (
	"regexp"
	"strings"

	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/config"
	"go.uber.org/zap"
)

// SecurityEngine detects hardcoded secrets, unsafe dynamic execution,
// unsanitized HTML injection, and console statements. It runs on every
// analyzable file, including tests: a leaked key in a test fixture is
// still a leaked key.
type SecurityEngine struct {
	cfg    *config.SecurityConfig
	logger *zap.Logger
}

var _ domain.Engine = (*SecurityEngine)(nil)

// NewSecurityEngine creates a security engine bound to its config section
func NewSecurityEngine(cfg *config.SecurityConfig, logger *zap.Logger) *SecurityEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SecurityEngine{cfg: cfg, logger: logger}
}

func (e *SecurityEngine) Name() domain.CheckKind {
	return domain.CheckSecurity
}

func (e *SecurityEngine) Analyze(filePath, content string) []domain.Issue {
	lines := splitLines(content)

	var issues []domain.Issue
	issues = append(issues, guard(e.logger, "secrets", func() []domain.Issue {
		return runRulesFirstMatch(domain.CheckSecurity, secretRules, lines)
	})...)
	issues = append(issues, guard(e.logger, "unsafe-exec", func() []domain.Issue {
		return runRules(domain.CheckSecurity, unsafeExecRules, lines)
	})...)
	issues = append(issues, guard(e.logger, "html-injection", func() []domain.Issue {
		return runRules(domain.CheckSecurity, htmlInjectionRules, lines)
	})...)
	if e.cfg.FlagConsole {
		issues = append(issues, guard(e.logger, "console", func() []domain.Issue {
			return runRules(domain.CheckSecurity, consoleRules, lines)
		})...)
	}
	return issues
}

// testFixtureRe matches whole words that mark a line as test scaffolding.
// Word boundaries keep it from firing inside key material such as
// "sk_test_" (underscores are word characters, so no boundary exists).
var testFixtureRe = regexp.MustCompile(`(?i)\b(test|spec|mock|fake|fixture)\b`)

// suppressSecret drops secret findings on lines that cannot be live
// credentials: comments, documentation placeholders, test fixtures,
// environment lookups, and imports.
func suppressSecret(line string) bool {
	if isCommentLine(line) {
		return true
	}
	if looksLikePlaceholder(line) {
		return true
	}
	if testFixtureRe.MatchString(line) {
		return true
	}
	if strings.Contains(line, "process.env") || strings.Contains(line, "import.meta.env") {
		return true
	}
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "export * from")
}

var secretRules = []rule{
	{
		re:         regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|DSA\s+|OPENSSH\s+)?PRIVATE KEY-----`),
		category:   "hardcoded-secret",
		severity:   domain.SeverityCritical,
		message:    "Private key material embedded in source",
		suggestion: "Move the key to a secrets store and load it at runtime",
		suppress:   suppressSecret,
	},
	{
		re:         regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		category:   "hardcoded-secret",
		severity:   domain.SeverityCritical,
		message:    "Hardcoded AWS access key ID",
		suggestion: "Use environment variables or an AWS credentials provider",
		suppress:   suppressSecret,
	},
	{
		re:         regexp.MustCompile(`sk_live_[0-9a-zA-Z]{10,}`),
		category:   "hardcoded-secret",
		severity:   domain.SeverityCritical,
		message:    "Hardcoded Stripe live secret key",
		suggestion: "Load the key from environment configuration",
		suppress:   suppressSecret,
	},
	{
		re:         regexp.MustCompile(`sk-ant-[0-9a-zA-Z_-]{10,}`),
		category:   "hardcoded-secret",
		severity:   domain.SeverityCritical,
		message:    "Hardcoded Anthropic API key",
		suggestion: "Load the key from environment configuration",
		suppress:   suppressSecret,
	},
	{
		re:         regexp.MustCompile(`\bsk-[0-9a-zA-Z]{20,}`),
		category:   "hardcoded-secret",
		severity:   domain.SeverityCritical,
		message:    "Hardcoded API secret key",
		suggestion: "Load the key from environment configuration",
		suppress:   suppressSecret,
	},
	{
		re:         regexp.MustCompile(`gh[po]_[0-9A-Za-z]{36}`),
		category:   "hardcoded-secret",
		severity:   domain.SeverityCritical,
		message:    "Hardcoded GitHub token",
		suggestion: "Use a credential helper or environment variable",
		suppress:   suppressSecret,
	},
	{
		re:         regexp.MustCompile(`AIza[0-9A-Za-z_\-]{35}`),
		category:   "hardcoded-secret",
		severity:   domain.SeverityCritical,
		message:    "Hardcoded Google API key",
		suggestion: "Load the key from environment configuration",
		suppress:   suppressSecret,
	},
	{
		re:         regexp.MustCompile(`xox[baprs]-[0-9A-Za-z-]{10,}`),
		category:   "hardcoded-secret",
		severity:   domain.SeverityCritical,
		message:    "Hardcoded Slack token",
		suggestion: "Load the token from environment configuration",
		suppress:   suppressSecret,
	},
	{
		re:         regexp.MustCompile(`(?i)\b(password|passwd|secret|token|api_?key|auth_?key|private_?key)\s*[:=]\s*["'][^"']{8,}["']`),
		category:   "hardcoded-secret",
		severity:   domain.SeverityCritical,
		message:    "Credential-like value assigned from a string literal",
		suggestion: "Read secrets from environment variables or a secrets manager",
		suppress:   suppressSecret,
	},
}

var unsafeExecRules = []rule{
	{
		re:         regexp.MustCompile(`\beval\s*\(`),
		category:   "unsafe-execution",
		severity:   domain.SeverityError,
		message:    "eval() executes arbitrary strings as code",
		suggestion: "Replace eval with explicit parsing or a lookup table",
		suppress:   isCommentLine,
	},
	{
		re:         regexp.MustCompile(`new\s+Function\s*\(`),
		category:   "unsafe-execution",
		severity:   domain.SeverityError,
		message:    "new Function() compiles strings into code",
		suggestion: "Replace dynamic code generation with static functions",
		suppress:   isCommentLine,
	},
	{
		re:         regexp.MustCompile(`\bset(?:Timeout|Interval)\s*\(\s*["']`),
		category:   "unsafe-execution",
		severity:   domain.SeverityError,
		message:    "Timer with a string argument is an implicit eval",
		suggestion: "Pass a function reference instead of a code string",
		suppress:   isCommentLine,
	},
	{
		re:         regexp.MustCompile(`document\.write\s*\(`),
		category:   "unsafe-execution",
		severity:   domain.SeverityError,
		message:    "document.write enables script injection and blocks parsing",
		suggestion: "Use DOM APIs to insert content",
		suppress:   isCommentLine,
	},
}

// suppressSanitized skips HTML-injection findings when a sanitizer is
// visibly applied on the same line
func suppressSanitized(line string) bool {
	if isCommentLine(line) {
		return true
	}
	lower := strings.ToLower(line)
	return strings.Contains(lower, "dompurify") || strings.Contains(lower, "sanitize")
}

var htmlInjectionRules = []rule{
	{
		re:         regexp.MustCompile(`dangerouslySetInnerHTML`),
		category:   "html-injection",
		severity:   domain.SeverityError,
		message:    "dangerouslySetInnerHTML renders unsanitized markup",
		suggestion: "Sanitize the value with DOMPurify before rendering",
		suppress:   suppressSanitized,
	},
	{
		re:         regexp.MustCompile(`\.innerHTML\s*=`),
		category:   "html-injection",
		severity:   domain.SeverityError,
		message:    "Direct innerHTML assignment renders unsanitized markup",
		suggestion: "Use textContent, or sanitize the value before assignment",
		suppress:   suppressSanitized,
	},
	{
		re:         regexp.MustCompile(`insertAdjacentHTML\s*\(`),
		category:   "html-injection",
		severity:   domain.SeverityError,
		message:    "insertAdjacentHTML renders unsanitized markup",
		suggestion: "Sanitize the value before insertion",
		suppress:   suppressSanitized,
	},
}

var consoleRules = []rule{
	{
		re:         regexp.MustCompile(`\bconsole\.(log|debug|info|trace)\s*\(`),
		category:   "console-statement",
		severity:   domain.SeverityInfo,
		message:    "Console statement left in source",
		suggestion: "Remove it or route through the project logger",
		suppress:   isCommentLine,
	},
}
