// Package ignore implements the .vulnsweepignore exclusion file: one pattern
// per line, # comments, blank lines skipped. Patterns ending in / exclude a
// directory subtree, patterns with glob metacharacters match the basename or
// the full relative path, anything else matches exactly.
package ignore

import (
	"bufio"
	"os"
	"path"
	"strings"
)

type patternKind int

const (
	kindExact patternKind = iota
	kindDir
	kindGlob
)

type pattern struct {
	kind patternKind
	text string
}

// Matcher answers whether a relative path is excluded.
type Matcher struct {
	patterns []pattern
}

// Load reads an ignore file. A missing file yields an empty matcher and no
// error so callers can attempt the load unconditionally.
func Load(filePath string) (Matcher, error) {
	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Matcher{}, nil
		}
		return Matcher{}, err
	}
	defer f.Close()

	var m Matcher
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasSuffix(line, "/"):
			m.patterns = append(m.patterns, pattern{kind: kindDir, text: strings.TrimSuffix(line, "/")})
		case strings.ContainsAny(line, "*?["):
			m.patterns = append(m.patterns, pattern{kind: kindGlob, text: line})
		default:
			m.patterns = append(m.patterns, pattern{kind: kindExact, text: line})
		}
	}
	return m, sc.Err()
}

// Match reports whether rel (forward-slash relative path) is ignored.
func (m Matcher) Match(rel string) bool {
	rel = strings.ReplaceAll(rel, "\\", "/")
	base := path.Base(rel)
	for _, p := range m.patterns {
		switch p.kind {
		case kindDir:
			if rel == p.text || strings.HasPrefix(rel, p.text+"/") || strings.Contains(rel, "/"+p.text+"/") {
				return true
			}
		case kindGlob:
			if ok, _ := path.Match(p.text, base); ok {
				return true
			}
			if ok, _ := path.Match(p.text, rel); ok {
				return true
			}
		case kindExact:
			if rel == p.text || base == p.text {
				return true
			}
		}
	}
	return false
}

// Empty reports whether the matcher holds no patterns.
func (m Matcher) Empty() bool { return len(m.patterns) == 0 }
