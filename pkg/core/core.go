package core

import (
	"context"

	"github.com/vulnsweep/vulnsweep/internal/engine"
	"github.com/vulnsweep/vulnsweep/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Config     = engine.Config
	Finding    = types.Finding
	Severity   = types.Severity
	ScanResult = types.ScanResult
)

// Scan is the stable entrypoint for other programs.
func Scan(ctx context.Context, cfg Config) (*ScanResult, error) {
	return engine.Scan(ctx, cfg)
}

// Categories returns the rule categories a scan with cfg would evaluate.
func Categories(cfg Config) ([]string, error) {
	db, err := engine.Rules(cfg)
	if err != nil {
		return nil, err
	}
	return db.Categories(), nil
}
