// Package report renders aggregated scan results for humans and pipelines.
// It consumes the engine's output; no matching logic lives here.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/vulnsweep/vulnsweep/internal/types"
)

// PrintOptions controls terminal rendering.
type PrintOptions struct {
	NoColor     bool
	ShowContext bool
}

var (
	styleCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true)
	styleHigh     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styleMedium   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleLow      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleHeader   = lipgloss.NewStyle().Bold(true)
)

func severityLabel(s types.Severity, noColor bool) string {
	if noColor {
		return string(s)
	}
	switch s {
	case types.SevCritical:
		return styleCritical.Render(string(s))
	case types.SevHigh:
		return styleHigh.Render(string(s))
	case types.SevMedium:
		return styleMedium.Render(string(s))
	default:
		return styleLow.Render(string(s))
	}
}

// PrintText writes the findings table and summary to w. Findings arrive
// already sorted by severity, path and line.
func PrintText(w io.Writer, res *types.ScanResult, opts PrintOptions) {
	header := fmt.Sprintf("Scanned %s (%d files in %.2fs)", res.Root, res.FilesScanned, res.Duration.Seconds())
	if res.Repo.Repo != "" {
		header += " [" + res.Repo.Repo
		if res.Repo.Branch != "" {
			header += "@" + res.Repo.Branch
		}
		header += "]"
	}
	if opts.NoColor {
		fmt.Fprintln(w, header)
	} else {
		fmt.Fprintln(w, styleHeader.Render(header))
	}
	fmt.Fprintln(w)

	if len(res.Findings) == 0 {
		fmt.Fprintln(w, "No vulnerabilities found.")
	} else {
		table := tablewriter.NewTable(w)
		table.Header("Severity", "Category", "Location", "CWE", "Match")
		for _, f := range res.Findings {
			table.Append([]string{
				severityLabel(f.Severity, opts.NoColor),
				f.Category,
				fmt.Sprintf("%s:%d", f.Path, f.Line),
				f.CWE,
				truncate(f.Match, 60),
			})
		}
		table.Render()

		if opts.ShowContext {
			for _, f := range res.Findings {
				fmt.Fprintf(w, "\n%s (%s) at %s:%d\n", f.Category, f.Severity, f.Path, f.Line)
				if f.Description != "" {
					fmt.Fprintf(w, "  %s\n", f.Description)
				}
				if f.Recommendation != "" {
					fmt.Fprintf(w, "  Recommendation: %s\n", f.Recommendation)
				}
				fmt.Fprint(w, indent(f.Context, "  "))
			}
		}
	}

	fmt.Fprintln(w)
	printSummary(w, res, opts)
}

func printSummary(w io.Writer, res *types.ScanResult, opts PrintOptions) {
	fmt.Fprintf(w, "Total: %d", res.TotalVulnerabilities)
	parts := make([]string, 0, 4)
	for _, s := range types.Severities() {
		parts = append(parts, fmt.Sprintf("%s: %d", severityLabel(s, opts.NoColor), res.BySeverity[s]))
	}
	fmt.Fprintf(w, " (%s)\n", strings.Join(parts, ", "))

	if len(res.ByCategory) > 0 {
		fmt.Fprintln(w, "By category:")
		for _, c := range sortedKeys(res.ByCategory) {
			fmt.Fprintf(w, "  %-28s %d\n", c, res.ByCategory[c])
		}
	}
	if len(res.ByLanguage) > 0 {
		fmt.Fprintln(w, "By language:")
		for _, l := range sortedKeys(res.ByLanguage) {
			fmt.Fprintf(w, "  %-28s %d\n", l, res.ByLanguage[l])
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func indent(s, prefix string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n") + "\n"
}

// ShouldFail reports whether findings at or above the threshold severity
// exist. Unknown thresholds default to HIGH.
func ShouldFail(res *types.ScanResult, failOn string) bool {
	th, ok := types.ParseSeverity(strings.ToUpper(strings.TrimSpace(failOn)))
	if !ok {
		th = types.SevHigh
	}
	for _, f := range res.Findings {
		if f.Severity.Rank() >= th.Rank() {
			return true
		}
	}
	return false
}
