package report

import (
	"strings"
	"testing"
	"time"

	"github.com/vulnsweep/vulnsweep/internal/types"
)

func sampleResult() *types.ScanResult {
	res := types.NewScanResult("/tmp/app")
	res.FilesScanned = 3
	res.Add(types.Finding{
		Category:       "SQL Injection",
		Severity:       types.SevHigh,
		Path:           "src/db.js",
		Line:           12,
		Match:          `query = "SELECT * FROM users" + id`,
		CWE:            "CWE-89",
		Description:    "User-controlled data concatenated into a SQL statement",
		Recommendation: "Use parameterized queries",
		Language:       "javascript",
		Context:        ">   12  query = \"SELECT * FROM users\" + id\n",
	})
	res.Add(types.Finding{
		Category: "Hardcoded Credentials",
		Severity: types.SevCritical,
		Path:     "config.py",
		Line:     3,
		Match:    `api_key = "deadbeefcafe"`,
		CWE:      "CWE-798",
		Language: "python",
	})
	res.Duration = 1500 * time.Millisecond
	return res
}

func TestPrintText(t *testing.T) {
	var b strings.Builder
	PrintText(&b, sampleResult(), PrintOptions{NoColor: true})
	out := b.String()

	for _, want := range []string{
		"Scanned /tmp/app (3 files in 1.50s)",
		"src/db.js:12",
		"CWE-89",
		"Total: 2",
		"CRITICAL: 1",
		"HIGH: 1",
		"MEDIUM: 0",
		"LOW: 0",
		"By category:",
		"By language:",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("NoColor output carries ANSI escapes")
	}
}

func TestPrintTextShowContext(t *testing.T) {
	var b strings.Builder
	PrintText(&b, sampleResult(), PrintOptions{NoColor: true, ShowContext: true})
	out := b.String()
	if !strings.Contains(out, "SQL Injection (HIGH) at src/db.js:12") {
		t.Fatalf("context header missing:\n%s", out)
	}
	if !strings.Contains(out, "Recommendation: Use parameterized queries") {
		t.Fatalf("recommendation missing:\n%s", out)
	}
}

func TestPrintTextEmpty(t *testing.T) {
	var b strings.Builder
	res := types.NewScanResult("/tmp/empty")
	PrintText(&b, res, PrintOptions{NoColor: true})
	if !strings.Contains(b.String(), "No vulnerabilities found.") {
		t.Fatalf("empty result message missing:\n%s", b.String())
	}
}

func TestShouldFail(t *testing.T) {
	res := sampleResult() // one CRITICAL, one HIGH
	cases := []struct {
		failOn string
		want   bool
	}{
		{"LOW", true},
		{"HIGH", true},
		{"CRITICAL", true},
		{"high", true},     // case-insensitive
		{"garbage", true},  // unknown threshold defaults to HIGH
		{"", true},
	}
	for _, c := range cases {
		if got := ShouldFail(res, c.failOn); got != c.want {
			t.Fatalf("ShouldFail(%q) = %v, want %v", c.failOn, got, c.want)
		}
	}

	low := types.NewScanResult("/tmp")
	low.Add(types.Finding{Severity: types.SevLow})
	if ShouldFail(low, "HIGH") {
		t.Fatal("LOW finding must not trip a HIGH threshold")
	}
	if !ShouldFail(low, "LOW") {
		t.Fatal("LOW threshold must trip on a LOW finding")
	}
	if ShouldFail(types.NewScanResult("/tmp"), "LOW") {
		t.Fatal("empty result can never fail")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	long := strings.Repeat("a", 80)
	got := truncate(long, 60)
	if len([]rune(got)) != 60 || !strings.HasSuffix(got, "…") {
		t.Fatalf("got %q", got)
	}
}
