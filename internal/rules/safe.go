package rules

import "regexp"

// defaultSafeExprs is the process-wide set of cross-language idioms that mark
// a match as a non-issue when they appear anywhere in its suppression window.
// The list is deliberately narrow: each entry is a guard or review marker, not
// a generic keyword, so it cannot swallow findings from unrelated rules.
var defaultSafeExprs = []string{
	// explicit review / suppression markers
	`\bnosec\b`,
	`vulnsweep:allow`,
	`security[- ]reviewed`,
	// ownership and authorization guards near the flagged line
	`\b(check|verify|require|assert)[_ ]?(owner(ship)?|permission|authori[sz](ed|ation)|access)\b`,
	`\bis[_ ]?(owner|authori[sz]ed|admin)\b`,
	`\bhas[_ ]?(permission|role|access)\b`,
	// parameterization idioms
	`\bprepared\s+statement\b`,
	`\bparameterized\s+quer(y|ies)\b`,
	// PowerShell defensive guards
	`\bTest-Path\b`,
	`-WhatIf\b`,
}

var defaultSafe = compileSafe(defaultSafeExprs)

func compileSafe(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		re, err := regexp.Compile("(?i)" + e)
		if err != nil {
			continue
		}
		out = append(out, re)
	}
	return out
}

// DefaultSafePatterns returns the built-in safe-pattern expressions.
func DefaultSafePatterns() []string {
	out := make([]string, len(defaultSafeExprs))
	copy(out, defaultSafeExprs)
	return out
}

// CompileSafePatterns compiles an override safe-pattern list. A nil or empty
// input returns the compiled defaults. Invalid expressions are dropped.
func CompileSafePatterns(exprs []string) []*regexp.Regexp {
	if len(exprs) == 0 {
		return defaultSafe
	}
	return compileSafe(exprs)
}
