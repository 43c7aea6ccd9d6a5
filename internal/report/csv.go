package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/vulnsweep/vulnsweep/internal/types"
)

// WriteCSV writes one row per finding with a stable id column.
func WriteCSV(w io.Writer, res *types.ScanResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "severity", "category", "path", "line", "language", "cwe", "match", "description", "recommendation"}); err != nil {
		return err
	}
	for _, f := range res.Findings {
		row := []string{
			Fingerprint(f),
			string(f.Severity),
			f.Category,
			f.Path,
			strconv.Itoa(f.Line),
			f.Language,
			f.CWE,
			f.Match,
			f.Description,
			f.Recommendation,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
