package analyzer

import (
	"strings"
	"testing"

	"github.com/editguard/editguard/domain"
	"github.com/editguard/editguard/internal/config"
)

func newQualityEngine() *QualityEngine {
	cfg := config.DefaultConfig()
	return NewQualityEngine(&cfg.Quality, nil)
}

const componentPath = "src/components/UserList.tsx"

func TestQualityEngine_MissingKey(t *testing.T) {
	engine := newQualityEngine()

	content := strings.Join([]string{
		`export function UserList({ users }: Props) {`,
		`  return (`,
		`    <ul>`,
		`      {users.map((user) => (`,
		`        <li>{user.name}</li>`,
		`      ))}`,
		`    </ul>`,
		`  )`,
		`}`,
	}, "\n")

	missing := issuesWithCategory(engine.Analyze(componentPath, content), "missing-key")
	if len(missing) != 1 {
		t.Fatalf("expected 1 missing-key issue, got %d", len(missing))
	}
	if missing[0].Line != 4 {
		t.Errorf("expected issue on line 4, got %d", missing[0].Line)
	}
	if missing[0].Severity != domain.SeverityError {
		t.Errorf("expected error severity, got %s", missing[0].Severity)
	}
}

func TestQualityEngine_KeyedMapIsClean(t *testing.T) {
	engine := newQualityEngine()

	content := strings.Join([]string{
		`{users.map((user) => (`,
		`  <li key={user.id}>{user.name}</li>`,
		`))}`,
	}, "\n")

	if got := issuesWithCategory(engine.Analyze(componentPath, content), "missing-key"); len(got) != 0 {
		t.Errorf("expected no missing-key issue when key is present, got %d", len(got))
	}
}

func TestQualityEngine_NonJSXMapIgnored(t *testing.T) {
	engine := newQualityEngine()

	content := `const names = users.map((user) => user.name)`

	if got := issuesWithCategory(engine.Analyze(componentPath, content), "missing-key"); len(got) != 0 {
		t.Errorf("expected no missing-key issue for a data-only map, got %d", len(got))
	}
}

func TestQualityEngine_HookDependencies(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		category string
		detected bool
	}{
		{
			name:     "effect without deps single line",
			content:  `useEffect(() => { loadData() })`,
			category: "missing-deps",
			detected: true,
		},
		{
			name: "effect without deps multi line",
			content: strings.Join([]string{
				`useEffect(() => {`,
				`  loadData()`,
				`})`,
			}, "\n"),
			category: "missing-deps",
			detected: true,
		},
		{
			name: "effect with deps",
			content: strings.Join([]string{
				`useEffect(() => {`,
				`  loadData()`,
				`}, [userId])`,
			}, "\n"),
			category: "missing-deps",
			detected: false,
		},
		{
			name:     "memo without deps is not an effect",
			content:  `const total = useMemo(() => items.reduce(sum), [items])`,
			category: "missing-deps",
			detected: false,
		},
		{
			name: "object literal in deps",
			content: strings.Join([]string{
				`useEffect(() => {`,
				`  sync(options)`,
				`}, [{ retries: 3 }])`,
			}, "\n"),
			category: "unstable-dependency",
			detected: true,
		},
		{
			name: "array literal in deps",
			content: strings.Join([]string{
				`const cb = useCallback(() => {`,
				`  track(ids)`,
				`}, [[1, 2]])`,
			}, "\n"),
			category: "unstable-dependency",
			detected: true,
		},
		{
			name: "variable deps are stable",
			content: strings.Join([]string{
				`useEffect(() => {`,
				`  sync(options)`,
				`}, [options, retries])`,
			}, "\n"),
			category: "unstable-dependency",
			detected: false,
		},
	}

	engine := newQualityEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := issuesWithCategory(engine.Analyze(componentPath, tt.content), tt.category)

			if tt.detected && len(got) == 0 {
				t.Errorf("expected a %s issue", tt.category)
			}
			if !tt.detected && len(got) > 0 {
				t.Errorf("expected no %s issue, got %+v", tt.category, got)
			}
		})
	}
}

func TestQualityEngine_UntypedProps(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		detected bool
	}{
		{"props any", `function UserCard(props: any) {`, true},
		{"fc any", `const UserCard: React.FC<any> = (props) => {`, true},
		{"bare props", `function UserCard(props) {`, true},
		{"typed props", `function UserCard(props: UserCardProps) {`, false},
		{"typed fc", `const UserCard: React.FC<UserCardProps> = (props) => {`, false},
	}

	engine := newQualityEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := issuesWithCategory(engine.Analyze(componentPath, tt.line), "untyped-props")

			if tt.detected && len(got) == 0 {
				t.Errorf("expected an untyped-props issue for %q", tt.line)
			}
			if !tt.detected && len(got) > 0 {
				t.Errorf("expected no untyped-props issue for %q", tt.line)
			}
		})
	}
}

func TestQualityEngine_FileLength(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Quality.MaxFileLines = 10
	engine := NewQualityEngine(&cfg.Quality, nil)

	within := strings.Repeat("const n = 1\n", 10)
	if got := issuesWithCategory(engine.Analyze("src/util.ts", within), "file-length"); len(got) != 0 {
		t.Errorf("expected no file-length issue at the limit, got %d", len(got))
	}

	over := strings.Repeat("const n = 1\n", 11)
	got := issuesWithCategory(engine.Analyze("src/util.ts", over), "file-length")
	if len(got) != 1 {
		t.Fatalf("expected 1 file-length issue, got %d", len(got))
	}
	if got[0].Severity != domain.SeverityWarning {
		t.Errorf("expected warning severity, got %s", got[0].Severity)
	}
}

func TestQualityEngine_ComponentSize(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Quality.MaxComponentLines = 4
	engine := NewQualityEngine(&cfg.Quality, nil)

	var b strings.Builder
	b.WriteString("export function Dashboard() {\n")
	for i := 0; i < 6; i++ {
		b.WriteString("  render()\n")
	}
	b.WriteString("}\n")

	got := issuesWithCategory(engine.Analyze(componentPath, b.String()), "large-component")
	if len(got) != 1 {
		t.Fatalf("expected 1 large-component issue, got %d", len(got))
	}
	if !strings.Contains(got[0].Message, "Dashboard") {
		t.Errorf("expected message to name the component, got %q", got[0].Message)
	}
}

func TestQualityEngine_Complexity(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Quality.MaxComplexity = 3
	engine := NewQualityEngine(&cfg.Quality, nil)

	content := strings.Join([]string{
		`if (a && b) {`,
		`  for (const x of xs) {`,
		`    if (x || y) run(x)`,
		`  }`,
		`}`,
	}, "\n")

	got := issuesWithCategory(engine.Analyze("src/branchy.ts", content), "high-complexity")
	if len(got) != 1 {
		t.Fatalf("expected 1 high-complexity issue, got %d", len(got))
	}
	if got[0].Line != 1 {
		t.Errorf("expected file-level issue on line 1, got %d", got[0].Line)
	}
}

func TestQualityEngine_NestingDepth(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Quality.MaxNestingDepth = 2
	engine := NewQualityEngine(&cfg.Quality, nil)

	content := strings.Join([]string{
		`function handler() {`,
		`  if (ready) {`,
		`    if (valid) {`,
		`      submit()`,
		`    }`,
		`  }`,
		`}`,
	}, "\n")

	got := issuesWithCategory(engine.Analyze("src/deep.ts", content), "deep-nesting")
	if len(got) != 1 {
		t.Fatalf("expected 1 deep-nesting issue, got %d", len(got))
	}
	if got[0].Line != 3 {
		t.Errorf("expected issue on the deepest line 3, got %d", got[0].Line)
	}
}

func TestQualityEngine_ZeroLimitsDisableMetrics(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Quality.MaxFileLines = 0
	cfg.Quality.MaxComponentLines = 0
	cfg.Quality.MaxComplexity = 0
	cfg.Quality.MaxNestingDepth = 0
	engine := NewQualityEngine(&cfg.Quality, nil)

	content := strings.Join([]string{
		`export function Dashboard() {`,
		`  if (a && b) {`,
		`    render()`,
		`  }`,
		`}`,
	}, "\n")

	issues := engine.Analyze(componentPath, content)
	for _, category := range []string{"file-length", "large-component", "high-complexity", "deep-nesting"} {
		if got := issuesWithCategory(issues, category); len(got) != 0 {
			t.Errorf("expected no %s issue with a zero limit, got %d", category, len(got))
		}
	}
}

func TestQualityEngine_ReactScansNeedComponentFile(t *testing.T) {
	engine := newQualityEngine()

	content := strings.Join([]string{
		`{users.map((user) => (`,
		`  <li>{user.name}</li>`,
		`))}`,
	}, "\n")

	// Same content, non-component path: the React sub-scans stay off
	issues := engine.Analyze("src/utils/render-helpers.ts", content)
	if got := issuesWithCategory(issues, "missing-key"); len(got) != 0 {
		t.Errorf("expected no missing-key issue outside component files, got %d", len(got))
	}
}
