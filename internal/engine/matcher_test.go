package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vulnsweep/vulnsweep/internal/rules"
	"github.com/vulnsweep/vulnsweep/internal/types"
)

func builtinMatcher(t *testing.T) *matcher {
	t.Helper()
	db, errs := rules.New(rules.Builtin())
	if len(errs) != 0 {
		t.Fatalf("builtin rules: %v", errs)
	}
	return &matcher{db: db, safe: rules.CompileSafePatterns(nil)}
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return name
}

func TestScanFileSQLConcatenation(t *testing.T) {
	dir := t.TempDir()
	rel := writeFile(t, dir, "db.js", `function getUser(userId) {
  const query = "SELECT * FROM users WHERE id=" + userId;
  return run(query);
}
`)
	fs, err := builtinMatcher(t).scanFile(dir, rel)
	if err != nil {
		t.Fatalf("scanFile: %v", err)
	}
	if len(fs) != 1 {
		t.Fatalf("expected exactly 1 finding, got %d: %+v", len(fs), fs)
	}
	f := fs[0]
	if f.Category != "SQL Injection" || f.Severity != types.SevHigh {
		t.Fatalf("category=%q severity=%q", f.Category, f.Severity)
	}
	if f.Line != 2 {
		t.Fatalf("line = %d, want 2", f.Line)
	}
	if f.Language != "javascript" {
		t.Fatalf("language = %q", f.Language)
	}
	if !strings.Contains(f.Match, "SELECT * FROM users") {
		t.Fatalf("match = %q", f.Match)
	}
}

func TestScanFileWhitelistSuppressesOnlyItsRule(t *testing.T) {
	dir := t.TempDir()
	rel := writeFile(t, dir, "db.js", `// parameterized: false positive guard
const query = "SELECT * FROM users WHERE id=" + userId;
const apiKey = "abcdef1234567890";
`)
	fs, err := builtinMatcher(t).scanFile(dir, rel)
	if err != nil {
		t.Fatalf("scanFile: %v", err)
	}
	for _, f := range fs {
		if f.Category == "SQL Injection" {
			t.Fatalf("whitelisted SQL finding survived: %+v", f)
		}
	}
	var creds int
	for _, f := range fs {
		if f.Category == "Hardcoded Credentials" {
			creds++
		}
	}
	if creds != 1 {
		t.Fatalf("unrelated rule affected by whitelist: %+v", fs)
	}
}

func TestScanFilePowerShellGuard(t *testing.T) {
	dir := t.TempDir()
	m := builtinMatcher(t)

	rel := writeFile(t, dir, "run.ps1", "Invoke-Expression $userInput\n")
	fs, err := m.scanFile(dir, rel)
	if err != nil {
		t.Fatalf("scanFile: %v", err)
	}
	if len(fs) != 1 || fs[0].Category != "PowerShell Execution" || fs[0].Severity != types.SevHigh {
		t.Fatalf("got %+v", fs)
	}

	rel = writeFile(t, dir, "guarded.ps1", `if (-not (Test-Path $script)) { exit 1 }
Invoke-Expression $script
`)
	fs, err = m.scanFile(dir, rel)
	if err != nil {
		t.Fatalf("scanFile: %v", err)
	}
	if len(fs) != 0 {
		t.Fatalf("Test-Path guard must suppress, got %+v", fs)
	}
}

func TestScanFileLanguageRestriction(t *testing.T) {
	dir := t.TempDir()
	m := builtinMatcher(t)

	// a python-only pattern must never fire on a go file
	rel := writeFile(t, dir, "load.go", "data := pickle.loads(raw)\n")
	fs, err := m.scanFile(dir, rel)
	if err != nil {
		t.Fatalf("scanFile: %v", err)
	}
	for _, f := range fs {
		if f.Category == "Insecure Deserialization" {
			t.Fatalf("python-only pattern fired on go: %+v", f)
		}
	}

	rel = writeFile(t, dir, "load.py", "data = pickle.loads(raw)\n")
	fs, err = m.scanFile(dir, rel)
	if err != nil {
		t.Fatalf("scanFile: %v", err)
	}
	if len(fs) != 1 || fs[0].Category != "Insecure Deserialization" {
		t.Fatalf("got %+v", fs)
	}
}

func TestScanFileUnrestrictedPatternHitsUnknownLanguage(t *testing.T) {
	dir := t.TempDir()
	db, _ := rules.New([]rules.RuleSpec{{
		Category: "Demo",
		Patterns: []rules.PatternSpec{{Expr: `needle`}},
	}})
	m := &matcher{db: db, safe: rules.CompileSafePatterns(nil)}

	rel := writeFile(t, dir, "notes.txt", "a needle in plain text\n")
	fs, err := m.scanFile(dir, rel)
	if err != nil {
		t.Fatalf("scanFile: %v", err)
	}
	if len(fs) != 1 || fs[0].Language != "unknown" {
		t.Fatalf("got %+v", fs)
	}
}

func TestScanFileSuppressionIsMonotonic(t *testing.T) {
	dir := t.TempDir()
	m := builtinMatcher(t)

	bare := writeFile(t, dir, "a.js", `const query = "SELECT * FROM t" + id;
const apiKey = "abcdef1234567890";
`)
	marked := writeFile(t, dir, "b.js", `// vulnsweep:allow
const query = "SELECT * FROM t" + id;
const apiKey = "abcdef1234567890";
`)
	before, err := m.scanFile(dir, bare)
	if err != nil {
		t.Fatal(err)
	}
	after, err := m.scanFile(dir, marked)
	if err != nil {
		t.Fatal(err)
	}
	if len(after) >= len(before) {
		t.Fatalf("safe marker did not reduce findings: %d -> %d", len(before), len(after))
	}
	if len(after) != 0 {
		t.Fatalf("global marker must suppress every rule in its window: %+v", after)
	}
}

func TestScanFileIgnoreDirective(t *testing.T) {
	dir := t.TempDir()
	rel := writeFile(t, dir, "skip.js", `// vulnsweep:ignore-file
const query = "SELECT * FROM t" + id;
`)
	fs, err := builtinMatcher(t).scanFile(dir, rel)
	if err != nil {
		t.Fatalf("scanFile: %v", err)
	}
	if len(fs) != 0 {
		t.Fatalf("directive must skip the file, got %+v", fs)
	}
}

func TestScanFileSkipsBinary(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "blob.js"), []byte("select\x00drop"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs, err := builtinMatcher(t).scanFile(dir, "blob.js")
	if err != nil {
		t.Fatalf("scanFile: %v", err)
	}
	if fs != nil {
		t.Fatalf("binary content must yield no findings, got %+v", fs)
	}
}

func TestScanFileMissingReturnsError(t *testing.T) {
	if _, err := builtinMatcher(t).scanFile(t.TempDir(), "absent.js"); err == nil {
		t.Fatal("expected read error")
	}
}

func TestLineAt(t *testing.T) {
	text := "one\ntwo\nthree"
	starts := lineStarts(text)
	cases := []struct {
		offset, line int
	}{
		{0, 1}, {3, 1}, {4, 2}, {7, 2}, {8, 3}, {12, 3},
	}
	for _, c := range cases {
		if got := lineAt(starts, c.offset); got != c.line {
			t.Fatalf("lineAt(%d) = %d, want %d", c.offset, got, c.line)
		}
	}
}

func TestRenderContext(t *testing.T) {
	lines := []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7", "l8"}
	ctx := renderContext(lines, 5, 3)
	got := strings.Split(strings.TrimRight(ctx, "\n"), "\n")
	if len(got) != 7 {
		t.Fatalf("expected 7 context lines, got %d:\n%s", len(got), ctx)
	}
	if !strings.Contains(ctx, ">    5  l5") {
		t.Fatalf("matched line not marked:\n%s", ctx)
	}
	if strings.Count(ctx, "> ") != 1 {
		t.Fatalf("exactly one marker expected:\n%s", ctx)
	}
	// clamped at file start
	top := renderContext(lines, 1, 3)
	if !strings.HasPrefix(top, ">    1  l1") {
		t.Fatalf("top clamp wrong:\n%s", top)
	}
}

func TestJoinWindowClamps(t *testing.T) {
	lines := []string{"a", "b", "c"}
	if got := joinWindow(lines, 1, 5); got != "a\nb\nc" {
		t.Fatalf("got %q", got)
	}
	if got := joinWindow(lines, 2, 0); got != "b" {
		t.Fatalf("got %q", got)
	}
}
