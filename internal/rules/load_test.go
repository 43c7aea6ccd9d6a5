package rules

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vulnsweep/vulnsweep/internal/types"
)

func writeRuleFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileJSON(t *testing.T) {
	path := writeRuleFile(t, "rules.json", `[
		{
			"type": "Custom Injection",
			"fileExtensions": ["*.py"],
			"patterns": ["eval\\s*\\("],
			"whitelist": ["safe_eval"],
			"severity": "high",
			"cweId": "CWE-95",
			"description": "d",
			"recommendation": "r"
		}
	]`)
	db, compileErrs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(compileErrs) != 0 {
		t.Fatalf("unexpected compile errors: %v", compileErrs)
	}
	r, ok := db.Rule("Custom Injection")
	if !ok {
		t.Fatal("rule not loaded")
	}
	p := r.Patterns[0]
	if p.Severity != types.SevHigh || p.CWE != "CWE-95" {
		t.Fatalf("metadata lost: %+v", p)
	}
	if !p.AppliesTo("python") || p.AppliesTo("go") {
		t.Fatalf("extension mapping wrong: %v", p.Languages)
	}
	if !r.Whitelisted("uses safe_eval wrapper") {
		t.Fatal("whitelist not loaded")
	}
}

func TestLoadFileYAML(t *testing.T) {
	path := writeRuleFile(t, "rules.yml", `
- type: Hardcoded Token
  patterns:
    - 'token\s*=\s*"[A-Za-z0-9]{20,}"'
  severity: CRITICAL
`)
	db, compileErrs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(compileErrs) != 0 {
		t.Fatalf("unexpected compile errors: %v", compileErrs)
	}
	r, ok := db.Rule("Hardcoded Token")
	if !ok {
		t.Fatal("rule not loaded")
	}
	if r.Patterns[0].Severity != types.SevCritical {
		t.Fatalf("severity = %s", r.Patterns[0].Severity)
	}
	// no fileExtensions means the rule applies everywhere
	if !r.Patterns[0].AppliesTo("unknown") {
		t.Fatal("unrestricted rule must apply to unknown files")
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrRuleSourceNotFound) {
		t.Fatalf("err = %v, want ErrRuleSourceNotFound", err)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	cases := map[string]string{
		"not json":         `{{{`,
		"missing type":     `[{"patterns": ["x"]}]`,
		"missing patterns": `[{"type": "Empty"}]`,
	}
	for name, body := range cases {
		path := writeRuleFile(t, "rules.json", body)
		_, _, err := LoadFile(path)
		if !errors.Is(err, ErrInvalidRuleSource) {
			t.Fatalf("%s: err = %v, want ErrInvalidRuleSource", name, err)
		}
	}
}

func TestLoadFileCompileErrorsRecoverable(t *testing.T) {
	path := writeRuleFile(t, "rules.json", `[
		{"type": "Mixed", "patterns": ["good", "(bad"]}
	]`)
	db, compileErrs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(compileErrs) != 1 {
		t.Fatalf("expected 1 compile error, got %v", compileErrs)
	}
	r, _ := db.Rule("Mixed")
	if len(r.Patterns) != 1 {
		t.Fatalf("expected valid pattern to survive, got %d", len(r.Patterns))
	}
}

func TestLanguagesForExtensions(t *testing.T) {
	if got := languagesForExtensions([]string{"*.py", "*.pyw"}); len(got) != 1 || got[0] != "python" {
		t.Fatalf("got %v", got)
	}
	// unmapped extensions contribute nothing, leaving the set open
	if got := languagesForExtensions([]string{"*.weird"}); len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}
