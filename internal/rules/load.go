package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vulnsweep/vulnsweep/internal/language"
	"github.com/vulnsweep/vulnsweep/internal/types"
)

var (
	// ErrRuleSourceNotFound reports a missing external rule file. Fatal to the scan.
	ErrRuleSourceNotFound = errors.New("rule source not found")
	// ErrInvalidRuleSource reports a structurally invalid rule file. Fatal to the scan.
	ErrInvalidRuleSource = errors.New("invalid rule source")
)

// fileRule is the on-disk shape of one external rule entry.
type fileRule struct {
	Type           string   `json:"type" yaml:"type"`
	FileExtensions []string `json:"fileExtensions" yaml:"fileExtensions"`
	Patterns       []string `json:"patterns" yaml:"patterns"`
	Whitelist      []string `json:"whitelist" yaml:"whitelist"`
	Severity       string   `json:"severity" yaml:"severity"`
	CWEID          string   `json:"cweId" yaml:"cweId"`
	Description    string   `json:"description" yaml:"description"`
	Recommendation string   `json:"recommendation" yaml:"recommendation"`
}

// LoadFile builds a database from an external rule file. JSON is the default
// encoding; .yml/.yaml files are decoded as YAML. The returned error slice
// carries recoverable per-pattern compile failures; the error return is fatal
// (missing file, undecodable document, entry without patterns).
func LoadFile(path string) (*Database, []error, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRuleSourceNotFound, path)
		}
		return nil, nil, err
	}

	var entries []fileRule
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(b, &entries); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidRuleSource, err)
		}
	default:
		if err := json.Unmarshal(b, &entries); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidRuleSource, err)
		}
	}

	specs := make([]RuleSpec, 0, len(entries))
	for i, e := range entries {
		if e.Type == "" {
			return nil, nil, fmt.Errorf("%w: entry %d has no type", ErrInvalidRuleSource, i)
		}
		if len(e.Patterns) == 0 {
			return nil, nil, fmt.Errorf("%w: rule %q has no patterns", ErrInvalidRuleSource, e.Type)
		}
		spec := RuleSpec{
			Category:       e.Type,
			Severity:       parseSeverity(e.Severity),
			CWE:            e.CWEID,
			Description:    e.Description,
			Recommendation: e.Recommendation,
			Languages:      languagesForExtensions(e.FileExtensions),
			Extensions:     e.FileExtensions,
		}
		for _, p := range e.Patterns {
			spec.Patterns = append(spec.Patterns, PatternSpec{Expr: p})
		}
		spec.Whitelist = e.Whitelist
		specs = append(specs, spec)
	}

	db, compileErrs := New(specs)
	return db, compileErrs, nil
}

// languagesForExtensions translates declared extension globs into a language
// set through the same table the classifier uses. Entries whose extensions
// map to no known language default to all languages rather than matching
// nothing.
func languagesForExtensions(globs []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, g := range globs {
		lang, ok := language.FromGlob(g)
		if !ok || seen[lang] {
			continue
		}
		seen[lang] = true
		out = append(out, lang)
	}
	return out
}

func parseSeverity(s string) types.Severity {
	if sev, ok := types.ParseSeverity(strings.ToUpper(strings.TrimSpace(s))); ok {
		return sev
	}
	return types.SevMedium
}
