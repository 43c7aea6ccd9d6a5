package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/vulnsweep/vulnsweep/internal/language"
	"github.com/vulnsweep/vulnsweep/internal/rules"
	"github.com/vulnsweep/vulnsweep/internal/types"
)

const (
	// suppressionRadius is the half-height of the window tested against
	// whitelist and safe patterns. It is wider than the display context so a
	// guard clause slightly separated from the flagged line still suppresses.
	suppressionRadius = 5
	// contextRadius is the half-height of the rendered context block.
	contextRadius = 3
)

// IgnoreFileDirective marks a file that opts out of scanning entirely.
const IgnoreFileDirective = "vulnsweep:ignore-file"

// matcher evaluates the rule database against single files. It holds only
// immutable state and is shared by all workers.
type matcher struct {
	db        *rules.Database
	safe      []*regexp.Regexp
	languages map[string]bool // nil means no filter
	strictExt bool
}

// scanFile runs every applicable pattern over one file and returns the
// surviving findings. Read failures are returned to the caller, which logs
// them and counts the file as scanned with zero findings.
func (m *matcher) scanFile(root, rel string) ([]types.Finding, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}
	if looksBinary(data) {
		return nil, nil
	}
	text := string(data)
	if strings.Contains(text, IgnoreFileDirective) {
		return nil, nil
	}

	lang := language.Classify(rel)
	if m.languages != nil && !m.languages[lang] {
		return nil, nil
	}

	lines := strings.Split(text, "\n")
	starts := lineStarts(text)

	var out []types.Finding
	for _, cat := range m.db.Categories() {
		rule, _ := m.db.Rule(cat)
		if m.strictExt && len(rule.Extensions) > 0 && !matchAnyExtension(rel, rule.Extensions) {
			// optional narrowing only: rules without an extension list are
			// never dropped by this check
			continue
		}
		for _, p := range rule.Patterns {
			if !p.AppliesTo(lang) {
				continue
			}
			for _, loc := range p.Regexp().FindAllStringIndex(text, -1) {
				lineNo := lineAt(starts, loc[0])
				window := joinWindow(lines, lineNo, suppressionRadius)
				if rule.Whitelisted(window) || m.safeMatch(window) {
					continue
				}
				out = append(out, types.Finding{
					Category:       cat,
					Severity:       p.Severity,
					Path:           rel,
					Line:           lineNo,
					Match:          strings.TrimSpace(text[loc[0]:loc[1]]),
					Description:    p.Description,
					CWE:            p.CWE,
					Recommendation: p.Recommendation,
					Language:       lang,
					Context:        renderContext(lines, lineNo, contextRadius),
				})
			}
		}
	}
	return out, nil
}

func (m *matcher) safeMatch(window string) bool {
	for _, re := range m.safe {
		if re.MatchString(window) {
			return true
		}
	}
	return false
}

// lineStarts returns the byte offset of each line start, in ascending order.
func lineStarts(text string) []int {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineAt returns the 1-based line number containing the byte offset.
func lineAt(starts []int, offset int) int {
	return sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
}

// joinWindow returns the lines within radius of the 1-based lineNo, clamped
// to file bounds, joined for suppression testing.
func joinWindow(lines []string, lineNo, radius int) string {
	lo := lineNo - 1 - radius
	if lo < 0 {
		lo = 0
	}
	hi := lineNo + radius
	if hi > len(lines) {
		hi = len(lines)
	}
	return strings.Join(lines[lo:hi], "\n")
}

// renderContext formats the display block: each line prefixed with its
// 1-based number, the matched line marked with ">".
func renderContext(lines []string, lineNo, radius int) string {
	lo := lineNo - 1 - radius
	if lo < 0 {
		lo = 0
	}
	hi := lineNo + radius
	if hi > len(lines) {
		hi = len(lines)
	}
	var b strings.Builder
	for i := lo; i < hi; i++ {
		marker := "  "
		if i == lineNo-1 {
			marker = "> "
		}
		fmt.Fprintf(&b, "%s%4d  %s\n", marker, i+1, lines[i])
	}
	return b.String()
}
