package report

import (
	"encoding/json"
	"io"

	"github.com/vulnsweep/vulnsweep/internal/types"
)

// jsonEnvelope mirrors ScanResult with a human-readable duration.
type jsonEnvelope struct {
	*types.ScanResult
	DurationSeconds float64 `json:"duration_seconds"`
}

// WriteJSON encodes the full scan result as indented JSON.
func WriteJSON(w io.Writer, res *types.ScanResult) error {
	if res.Findings == nil {
		res.Findings = []types.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonEnvelope{ScanResult: res, DurationSeconds: res.Duration.Seconds()})
}
