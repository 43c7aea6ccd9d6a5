package report

import (
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/vulnsweep/vulnsweep/internal/types"
)

// Fingerprint returns a stable hex identity for a finding, used for SARIF
// partialFingerprints and the id column of tabular exports.
func Fingerprint(f types.Finding) string {
	sum := xxhash.Sum64String(fmt.Sprintf("%s|%s|%d|%s", f.Category, f.Path, f.Line, f.Match))
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
