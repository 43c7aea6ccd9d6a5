package types

import (
	"time"
)

// Severity is the risk level assigned to a finding.
type Severity string

const (
	SevCritical Severity = "CRITICAL"
	SevHigh     Severity = "HIGH"
	SevMedium   Severity = "MEDIUM"
	SevLow      Severity = "LOW"
)

// Severities returns the canonical severities from most to least severe.
func Severities() []Severity {
	return []Severity{SevCritical, SevHigh, SevMedium, SevLow}
}

// Rank maps a severity onto an ordinal for sorting; higher is more severe.
func (s Severity) Rank() int {
	switch s {
	case SevCritical:
		return 4
	case SevHigh:
		return 3
	case SevMedium:
		return 2
	case SevLow:
		return 1
	}
	return 0
}

// ParseSeverity normalizes a severity string. Unrecognized values report ok=false.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SevCritical, SevHigh, SevMedium, SevLow:
		return Severity(s), true
	}
	return "", false
}

// Finding is one reported vulnerability instance at a specific file and line.
// Findings are immutable once created; identity is structural.
type Finding struct {
	Category       string   `json:"category"`
	Severity       Severity `json:"severity"`
	Path           string   `json:"path"`
	Line           int      `json:"line"` // 1-based
	Match          string   `json:"match"`
	Description    string   `json:"description,omitempty"`
	CWE            string   `json:"cwe,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
	Language       string   `json:"language"`
	Context        string   `json:"context,omitempty"`
}

// RepoMetadata is best-effort git information about the scanned tree.
type RepoMetadata struct {
	Repo   string `json:"repo,omitempty"`
	Commit string `json:"commit,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// ScanResult aggregates findings and counters for one scan. It is created
// empty at scan start via NewScanResult and mutated only through Add and
// Finalize while files stream in.
type ScanResult struct {
	StartedAt            time.Time        `json:"started_at"`
	Root                 string           `json:"root"`
	FilesScanned         int              `json:"files_scanned"`
	TotalVulnerabilities int              `json:"total_vulnerabilities"`
	BySeverity           map[Severity]int `json:"by_severity"`
	ByCategory           map[string]int   `json:"by_category"`
	ByLanguage           map[string]int   `json:"by_language"`
	Findings             []Finding        `json:"findings"`
	Duration             time.Duration    `json:"-"`
	Repo                 RepoMetadata     `json:"repo_metadata,omitempty"`
}

// NewScanResult returns an empty result with the severity buckets pre-seeded
// at zero so reports always show all four buckets.
func NewScanResult(root string) *ScanResult {
	r := &ScanResult{
		StartedAt:  time.Now(),
		Root:       root,
		BySeverity: make(map[Severity]int, 4),
		ByCategory: map[string]int{},
		ByLanguage: map[string]int{},
	}
	for _, s := range Severities() {
		r.BySeverity[s] = 0
	}
	return r
}

// Add folds one finding into the result, keeping the count mappings and the
// finding list in lockstep.
func (r *ScanResult) Add(f Finding) {
	r.Findings = append(r.Findings, f)
	r.TotalVulnerabilities++
	r.BySeverity[f.Severity]++
	r.ByCategory[f.Category]++
	r.ByLanguage[f.Language]++
}

// Finalize records the elapsed wall time.
func (r *ScanResult) Finalize() {
	r.Duration = time.Since(r.StartedAt)
}
