// Package engine is the scanning core: it selects files, evaluates the rule
// database against each one, applies whitelist and safe-pattern suppression,
// and folds per-file finding batches into a ScanResult.
package engine

import (
	"context"
	"runtime"
	"sort"
	"strings"

	"github.com/vulnsweep/vulnsweep/internal/gitmeta"
	"github.com/vulnsweep/vulnsweep/internal/logging"
	"github.com/vulnsweep/vulnsweep/internal/rules"
	"github.com/vulnsweep/vulnsweep/internal/types"
)

// LanguageAll is the sentinel filter value meaning no language restriction.
const LanguageAll = "all"

// Config controls scanning behavior including scope, rules and filters.
type Config struct {
	Root            string
	RulesPath       string // external rule source; empty means built-in rules
	Languages       string // comma-separated language filter; empty or "all" scans everything
	IncludeGlobs    string
	ExcludeGlobs    string
	MaxBytes        int64
	Threads         int
	DefaultExcludes bool
	StrictExt       bool     // narrow rules by their declared extension globs
	SafePatterns    []string // override the global safe-pattern set; nil keeps defaults
	Progress        func(path string)
}

type fileResult struct {
	path     string
	findings []types.Finding
	err      error
}

// Scan runs a full scan and returns the aggregated result. Fatal conditions
// (missing root, missing or invalid rule source) surface as errors before
// any file is processed; per-file failures are logged and contribute zero
// findings.
func Scan(ctx context.Context, cfg Config) (*types.ScanResult, error) {
	db, err := buildDatabase(cfg)
	if err != nil {
		return nil, err
	}

	files, err := SelectFiles(cfg)
	if err != nil {
		return nil, err
	}

	res := types.NewScanResult(cfg.Root)
	res.Repo = gitmeta.Lookup(cfg.Root)

	m := &matcher{
		db:        db,
		safe:      rules.CompileSafePatterns(cfg.SafePatterns),
		languages: parseLanguageFilter(cfg.Languages),
		strictExt: cfg.StrictExt,
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	if threads > len(files) && len(files) > 0 {
		threads = len(files)
	}

	jobs := make(chan string)
	results := make(chan fileResult)

	for i := 0; i < threads; i++ {
		go func() {
			for rel := range jobs {
				fs, err := m.scanFile(cfg.Root, rel)
				results <- fileResult{path: rel, findings: fs, err: err}
			}
		}()
	}

	// The feeder stops dispatching when the context is cancelled and reports
	// how many files it handed out, so the fold below always consumes exactly
	// the in-flight work and partial results stay internally consistent.
	dispatched := make(chan int, 1)
	go func() {
		n := 0
		defer func() {
			close(jobs)
			dispatched <- n
		}()
		for _, rel := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- rel:
				n++
			}
		}
	}()

	// Single-goroutine fold keeps the counts deterministic regardless of
	// worker completion order.
	total := -1
	received := 0
	for total < 0 || received < total {
		select {
		case n := <-dispatched:
			total = n
		case r := <-results:
			received++
			if cfg.Progress != nil {
				cfg.Progress(r.path)
			}
			res.FilesScanned++
			if r.err != nil {
				logging.L().Warnw("skipping unreadable file", "path", r.path, "error", r.err)
				continue
			}
			for _, f := range r.findings {
				res.Add(f)
			}
		}
	}

	sortFindings(res.Findings)
	res.Finalize()
	return res, nil
}

func buildDatabase(cfg Config) (*rules.Database, error) {
	if cfg.RulesPath == "" {
		db, compileErrs := rules.New(rules.Builtin())
		logCompileErrors(compileErrs)
		return db, nil
	}
	db, compileErrs, err := rules.LoadFile(cfg.RulesPath)
	if err != nil {
		return nil, err
	}
	logCompileErrors(compileErrs)
	return db, nil
}

func logCompileErrors(errs []error) {
	for _, e := range errs {
		logging.L().Warnw("skipping malformed pattern", "error", e)
	}
}

// parseLanguageFilter returns nil for no restriction, otherwise the set of
// allowed language tags.
func parseLanguageFilter(s string) map[string]bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, LanguageAll) {
		return nil
	}
	set := map[string]bool{}
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if part == LanguageAll {
			return nil
		}
		set[part] = true
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// sortFindings orders the final list by severity (most severe first), then
// path, then line, so report output is deterministic.
func sortFindings(fs []types.Finding) {
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Severity.Rank() != fs[j].Severity.Rank() {
			return fs[i].Severity.Rank() > fs[j].Severity.Rank()
		}
		if fs[i].Path != fs[j].Path {
			return fs[i].Path < fs[j].Path
		}
		return fs[i].Line < fs[j].Line
	})
}

// Rules exposes the database a scan with this config would use, for listing
// rule categories without running a scan.
func Rules(cfg Config) (*rules.Database, error) {
	return buildDatabase(cfg)
}
