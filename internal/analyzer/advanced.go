package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/config"
	"github.com/editguard/editguard/internal/constants"
	"go.uber.org/zap"
)

// AdvancedEngine runs the deeper safety heuristics: lifecycle resources
// that are never released, state updates racing component unmount,
// type-safety escapes, and ad hoc caching where a central facility
// exists.
type AdvancedEngine struct {
	cfg    *config.AdvancedConfig
	logger *zap.Logger
}

var _ domain.Engine = (*AdvancedEngine)(nil)

// NewAdvancedEngine creates an advanced engine bound to its config section
func NewAdvancedEngine(cfg *config.AdvancedConfig, logger *zap.Logger) *AdvancedEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvancedEngine{cfg: cfg, logger: logger}
}

func (e *AdvancedEngine) Name() domain.CheckKind {
	return domain.CheckAdvanced
}

func (e *AdvancedEngine) Analyze(filePath, content string) []domain.Issue {
	lines := splitLines(content)

	var issues []domain.Issue
	issues = append(issues, guard(e.logger, "effect-cleanup", func() []domain.Issue {
		return scanEffectCleanup(lines)
	})...)
	issues = append(issues, guard(e.logger, "async-state", func() []domain.Issue {
		return scanAsyncState(lines)
	})...)
	issues = append(issues, guard(e.logger, "type-safety", func() []domain.Issue {
		return scanTypeSafety(lines)
	})...)
	if e.cfg.CentralCacheModule != "" {
		issues = append(issues, guard(e.logger, "adhoc-cache", func() []domain.Issue {
			return e.scanAdhocCache(lines)
		})...)
	}
	return issues
}

var effectStartRe = regexp.MustCompile(`\buseEffect\s*\(|\bcomponentDidMount\s*\(`)

// returnedCleanupRe matches an effect returning its own cleanup function
var returnedCleanupRe = regexp.MustCompile(`\breturn\s+(?:\(\s*\)\s*=>|function\b)`)

// cleanupPairs maps each resource acquisition to the release tokens
// that count as cleanup when they appear inside the effect window
var cleanupPairs = []struct {
	acquire  *regexp.Regexp
	releases []string
	what     string
	release  string
}{
	{
		acquire:  regexp.MustCompile(`\baddEventListener\s*\(`),
		releases: []string{"removeEventListener"},
		what:     "Event listener",
		release:  "removeEventListener",
	},
	{
		acquire:  regexp.MustCompile(`\bsetInterval\s*\(`),
		releases: []string{"clearInterval"},
		what:     "Interval",
		release:  "clearInterval",
	},
	{
		acquire:  regexp.MustCompile(`\bsetTimeout\s*\(`),
		releases: []string{"clearTimeout"},
		what:     "Timeout",
		release:  "clearTimeout",
	},
	{
		acquire:  regexp.MustCompile(`\.subscribe\s*\(`),
		releases: []string{"unsubscribe"},
		what:     "Subscription",
		release:  "unsubscribe",
	},
	{
		acquire:  regexp.MustCompile(`\.on\s*\(\s*["']`),
		releases: []string{".off(", "removeListener", "removeAllListeners"},
		what:     "Emitter listener",
		release:  ".off()",
	},
}

// scanEffectCleanup looks inside each effect window for resource
// acquisitions whose release never appears within the bounded window.
// A returned cleanup function or a componentWillUnmount in the window
// counts as released.
func scanEffectCleanup(lines []string) []domain.Issue {
	var issues []domain.Issue
	flagged := make(map[string]bool)

	for i, line := range lines {
		if !effectStartRe.MatchString(line) || isCommentLine(line) {
			continue
		}
		win := window(lines, i, 1+constants.EffectWindowLines)
		cleaned := returnedCleanupRe.MatchString(win) ||
			strings.Contains(win, "componentWillUnmount")

		for _, pair := range cleanupPairs {
			released := cleaned
			for _, token := range pair.releases {
				if strings.Contains(win, token) {
					released = true
					break
				}
			}
			if released {
				continue
			}

			end := i + constants.EffectWindowLines
			for j := i; j < len(lines) && j <= end; j++ {
				if !pair.acquire.MatchString(lines[j]) || isCommentLine(lines[j]) {
					continue
				}
				key := fmt.Sprintf("%d:%s", j, pair.what)
				if flagged[key] {
					continue
				}
				flagged[key] = true
				issues = append(issues, domain.Issue{
					Check:      domain.CheckAdvanced,
					Category:   "missing-cleanup",
					Severity:   domain.SeverityError,
					Line:       j + 1,
					Message:    pair.what + " created in an effect is never cleaned up",
					Suggestion: "Return a cleanup function that calls " + pair.release,
					Dimension:  domain.DimensionMemory,
				})
			}
		}
	}
	return issues
}

var (
	awaitRe       = regexp.MustCompile(`\bawait\s`)
	stateSetterRe = regexp.MustCompile(`\b(set[A-Z][A-Za-z0-9]*)\s*\(`)
	livenessRe    = regexp.MustCompile(`(?i)\b(?:mounted|isMounted|cancelled|canceled|ignore|aborted)\b|AbortController|\.signal\b`)
)

// notStateSetters are set-prefixed globals and DOM calls that look like
// React state setters but are not
var notStateSetters = map[string]bool{
	"setTimeout":       true,
	"setInterval":      true,
	"setImmediate":     true,
	"setAttribute":     true,
	"setItem":          true,
	"setRequestHeader": true,
}

// scanAsyncState flags state setters reached after an await with no
// liveness guard in sight: by the time the promise resolves the
// component may be unmounted.
func scanAsyncState(lines []string) []domain.Issue {
	var issues []domain.Issue
	flagged := make(map[int]bool)

	for i, line := range lines {
		if !awaitRe.MatchString(line) || isCommentLine(line) {
			continue
		}

		end := i + constants.ContextWindowLines
		for j := i; j < len(lines) && j <= end; j++ {
			m := stateSetterRe.FindStringSubmatch(lines[j])
			if m == nil || notStateSetters[m[1]] || isCommentLine(lines[j]) {
				continue
			}
			if flagged[j] {
				continue
			}

			guardStart := i - constants.ContextWindowLines
			if guardStart < 0 {
				guardStart = 0
			}
			guardWin := window(lines, guardStart, j-guardStart+1)
			if livenessRe.MatchString(guardWin) {
				continue
			}

			flagged[j] = true
			issues = append(issues, domain.Issue{
				Check:      domain.CheckAdvanced,
				Category:   "unguarded-async-state",
				Severity:   domain.SeverityError,
				Line:       j + 1,
				Message:    m[1] + " called after await without a liveness guard",
				Suggestion: "Track a mounted flag or abort the request on unmount, and check it before setting state",
				Dimension:  domain.DimensionAsync,
			})
		}
	}
	return issues
}

var typeSafetyRules = []rule{
	{
		re:         regexp.MustCompile(`\bas\s+any\b`),
		category:   "unchecked-assertion",
		severity:   domain.SeverityWarning,
		message:    "Assertion to any bypasses the type checker",
		suggestion: "Assert to a concrete type, or validate the value",
		dimension:  domain.DimensionTypeSafety,
		suppress:   isCommentLine,
	},
	{
		re:         regexp.MustCompile(`\bas\s+unknown\s+as\b`),
		category:   "unchecked-assertion",
		severity:   domain.SeverityWarning,
		message:    "Double assertion through unknown bypasses the type checker",
		suggestion: "Validate the value instead of forcing its type",
		dimension:  domain.DimensionTypeSafety,
		suppress:   isCommentLine,
	},
	{
		re:         regexp.MustCompile(`[A-Za-z0-9_\])]!\.|[A-Za-z0-9_\])]!\)`),
		category:   "non-null-assertion",
		severity:   domain.SeverityWarning,
		message:    "Non-null assertion can throw at runtime",
		suggestion: "Narrow with an explicit check or optional chaining",
		dimension:  domain.DimensionTypeSafety,
		suppress:   isCommentLine,
	},
	{
		re:         regexp.MustCompile(`\w\[\d+\]\.`),
		category:   "unchecked-index",
		severity:   domain.SeverityInfo,
		message:    "Indexed element dereferenced without a bounds check",
		suggestion: "Guard the index or use optional chaining",
		dimension:  domain.DimensionTypeSafety,
		suppress:   isCommentLine,
	},
}

var (
	jsonParseRe = regexp.MustCompile(`JSON\.parse\s*\(`)
	tryBlockRe  = regexp.MustCompile(`\btry\b`)
)

// scanTypeSafety runs the assertion rule table plus the JSON.parse
// check, which needs a look-behind for an enclosing try
func scanTypeSafety(lines []string) []domain.Issue {
	issues := runRules(domain.CheckAdvanced, typeSafetyRules, lines)

	for i, line := range lines {
		if !jsonParseRe.MatchString(line) || isCommentLine(line) {
			continue
		}
		behind := windowBefore(lines, i, constants.ContextWindowLines)
		if tryBlockRe.MatchString(behind) {
			continue
		}
		issues = append(issues, domain.Issue{
			Check:      domain.CheckAdvanced,
			Category:   "unchecked-json-parse",
			Severity:   domain.SeverityError,
			Line:       i + 1,
			Message:    "JSON.parse outside a try block throws on malformed input",
			Suggestion: "Wrap the parse in try/catch or use a safe parse helper",
			Dimension:  domain.DimensionTypeSafety,
		})
	}
	return issues
}

var (
	adhocCacheRe = regexp.MustCompile(`\b(?:const|let|var)\s+\w*(?:[Cc]ache|[Mm]emo|[Ss]tore)\w*\s*=\s*(?:new\s+Map\s*\(|\{\s*\}|\[\s*\])`)
	adhocQueueRe = regexp.MustCompile(`\b\w*[Qq]ueue\w*\.push\s*\(`)
)

// scanAdhocCache flags module-level caches and queues when the project
// has declared a central facility for them
func (e *AdvancedEngine) scanAdhocCache(lines []string) []domain.Issue {
	rules := []rule{
		{
			re:         adhocCacheRe,
			category:   "ad-hoc-cache",
			severity:   domain.SeverityInfo,
			message:    "Ad hoc cache shadows the central " + e.cfg.CentralCacheModule + " facility",
			suggestion: "Use " + e.cfg.CentralCacheModule + " instead of a local cache",
			suppress:   isCommentLine,
		},
		{
			re:         adhocQueueRe,
			category:   "ad-hoc-cache",
			severity:   domain.SeverityInfo,
			message:    "Ad hoc queue shadows the central " + e.cfg.CentralCacheModule + " facility",
			suggestion: "Use " + e.cfg.CentralCacheModule + " instead of a local queue",
			suppress:   isCommentLine,
		},
	}
	return runRulesFirstMatch(domain.CheckAdvanced, rules, lines)
}
