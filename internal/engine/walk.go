package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vulnsweep/vulnsweep/internal/ignore"
	"github.com/vulnsweep/vulnsweep/internal/language"
)

// ErrDirectoryNotFound reports a missing or unusable scan root. Fatal: it
// surfaces to the caller before any file is processed.
var ErrDirectoryNotFound = errors.New("scan directory not found")

// IgnoreFileName is the per-repo exclusion file honored by the selector.
const IgnoreFileName = ".vulnsweepignore"

// SelectFiles enumerates the tree under cfg.Root and returns the relative
// paths of files whose extension the language table knows, deduplicated and
// filtered through globs, the ignore file, size limits and default excludes.
func SelectFiles(cfg Config) ([]string, error) {
	info, err := os.Stat(cfg.Root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, cfg.Root)
	}

	ign, _ := ignore.Load(filepath.Join(cfg.Root, IgnoreFileName))

	seen := map[string]bool{}
	var files []string
	walkErr := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if cfg.DefaultExcludes && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(cfg.Root, p)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if seen[rel] {
			return nil
		}
		if !language.KnownExtension(rel) {
			return nil
		}
		if !allowedByGlobs(rel, cfg) {
			return nil
		}
		if ign.Match(rel) {
			return nil
		}
		if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel)) {
			return nil
		}
		if cfg.MaxBytes > 0 {
			if fi, err := d.Info(); err == nil && fi.Size() > cfg.MaxBytes {
				return nil
			}
		}
		seen[rel] = true
		files = append(files, rel)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return files, nil
}

// looksBinary applies the NUL-byte sniff used to skip non-text content that
// slipped past extension selection.
func looksBinary(b []byte) bool {
	const sniff = 800
	n := sniff
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}
