// Package rules defines the vulnerability rule model and the in-memory rule
// database the matching engine reads. A database is built once before a scan
// begins, from the built-in set or an external rule file, and is immutable
// afterwards so concurrent file workers can read it without locks.
package rules

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/vulnsweep/vulnsweep/internal/language"
	"github.com/vulnsweep/vulnsweep/internal/types"
)

// PatternSpec declares a single match pattern. Zero-valued fields inherit
// the enclosing RuleSpec defaults at compile time.
type PatternSpec struct {
	Expr           string
	Severity       types.Severity
	CWE            string
	Description    string
	Recommendation string
	Languages      []string
}

// RuleSpec declares a vulnerability category before compilation.
type RuleSpec struct {
	Category       string
	Severity       types.Severity
	CWE            string
	Description    string
	Recommendation string
	Languages      []string
	Extensions     []string // optional glob-style extension narrowing
	Patterns       []PatternSpec
	Whitelist      []string
}

// MatchPattern is one compiled regular expression plus its metadata. The
// expression runs case-insensitively with multi-line anchoring: ^ and $
// match at line boundaries and . does not cross lines.
type MatchPattern struct {
	Expr           string
	Severity       types.Severity
	CWE            string
	Description    string
	Recommendation string
	Languages      []string // empty or containing language.All = every language

	re *regexp.Regexp
}

// Regexp returns the compiled expression.
func (p MatchPattern) Regexp() *regexp.Regexp { return p.re }

// AppliesTo reports whether the pattern applies to a file of the given
// language. An empty set and the "all" tag apply everywhere, including to
// files of unknown language; specific tags never match unknown files.
func (p MatchPattern) AppliesTo(lang string) bool {
	if len(p.Languages) == 0 {
		return true
	}
	for _, l := range p.Languages {
		if l == language.All || l == lang {
			return true
		}
	}
	return false
}

// Rule is an immutable vulnerability category: its patterns in declaration
// order plus the whitelist expressions that suppress matches found nearby.
type Rule struct {
	Category   string
	Patterns   []MatchPattern
	Extensions []string

	whitelist []*regexp.Regexp
}

// Whitelisted reports whether any of the rule's whitelist patterns matches
// the given suppression window.
func (r Rule) Whitelisted(window string) bool {
	for _, re := range r.whitelist {
		if re.MatchString(window) {
			return true
		}
	}
	return false
}

// WhitelistSize returns the number of compiled whitelist patterns.
func (r Rule) WhitelistSize() int { return len(r.whitelist) }

// Database is an immutable map of category to rule.
type Database struct {
	rules      map[string]Rule
	categories []string
}

// New compiles rule specs into a database. Patterns inherit the rule-level
// severity, CWE, description, recommendation and languages unless they carry
// their own. Expressions that fail to compile are skipped and reported in
// the returned error slice; they never fail the build. Duplicate categories
// merge their patterns and whitelists into the existing rule.
func New(specs []RuleSpec) (*Database, []error) {
	db := &Database{rules: map[string]Rule{}}
	var errs []error
	for _, spec := range specs {
		rule := db.rules[spec.Category]
		rule.Category = spec.Category
		rule.Extensions = append(rule.Extensions, spec.Extensions...)
		for _, ps := range spec.Patterns {
			mp, err := compilePattern(spec, ps)
			if err != nil {
				errs = append(errs, fmt.Errorf("rule %q: %w", spec.Category, err))
				continue
			}
			rule.Patterns = append(rule.Patterns, mp)
		}
		for _, w := range spec.Whitelist {
			re, err := regexp.Compile("(?i)" + w)
			if err != nil {
				errs = append(errs, fmt.Errorf("rule %q whitelist: %w", spec.Category, err))
				continue
			}
			rule.whitelist = append(rule.whitelist, re)
		}
		db.rules[spec.Category] = rule
	}
	db.categories = make([]string, 0, len(db.rules))
	for c := range db.rules {
		db.categories = append(db.categories, c)
	}
	sort.Strings(db.categories)
	return db, errs
}

func compilePattern(rs RuleSpec, ps PatternSpec) (MatchPattern, error) {
	re, err := regexp.Compile("(?im)" + ps.Expr)
	if err != nil {
		return MatchPattern{}, fmt.Errorf("pattern %q: %w", ps.Expr, err)
	}
	mp := MatchPattern{
		Expr:           ps.Expr,
		Severity:       ps.Severity,
		CWE:            ps.CWE,
		Description:    ps.Description,
		Recommendation: ps.Recommendation,
		Languages:      ps.Languages,
		re:             re,
	}
	if mp.Severity == "" {
		mp.Severity = rs.Severity
	}
	if mp.Severity == "" {
		mp.Severity = types.SevMedium
	}
	if mp.CWE == "" {
		mp.CWE = rs.CWE
	}
	if mp.Description == "" {
		mp.Description = rs.Description
	}
	if mp.Recommendation == "" {
		mp.Recommendation = rs.Recommendation
	}
	if len(mp.Languages) == 0 {
		mp.Languages = rs.Languages
	}
	return mp, nil
}

// Categories returns the category names in sorted order.
func (db *Database) Categories() []string { return db.categories }

// Rule looks up a category.
func (db *Database) Rule(category string) (Rule, bool) {
	r, ok := db.rules[category]
	return r, ok
}

// Len returns the number of rules.
func (db *Database) Len() int { return len(db.rules) }

// PatternCount returns the total number of compiled patterns.
func (db *Database) PatternCount() int {
	n := 0
	for _, r := range db.rules {
		n += len(r.Patterns)
	}
	return n
}
