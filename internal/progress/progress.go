// Package progress renders a scan progress bar on stderr. The bar model is
// rendered statically per tick; no interactive program is involved.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"golang.org/x/term"
)

// Bar tracks scanned-file progress and redraws in place.
type Bar struct {
	total int
	done  int
	out   io.Writer
	model progress.Model
}

// New returns a bar writing to out, or nil when total is zero so callers can
// hook it unconditionally.
func New(total int, out io.Writer) *Bar {
	if total <= 0 {
		return nil
	}
	m := progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))
	return &Bar{total: total, out: out, model: m}
}

// Tick records one scanned file and redraws. Called once per file; path is
// the about-to-scan notification payload and is shown when short enough.
func (b *Bar) Tick(path string) {
	if b == nil {
		return
	}
	b.done++
	pct := float64(b.done) / float64(b.total)
	label := path
	if len(label) > 40 {
		label = "…" + label[len(label)-39:]
	}
	fmt.Fprintf(b.out, "\r\x1b[K%s %d/%d %s", b.model.ViewAs(pct), b.done, b.total, label)
}

// Done clears the bar line.
func (b *Bar) Done() {
	if b == nil {
		return
	}
	fmt.Fprint(b.out, "\r\x1b[K")
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
