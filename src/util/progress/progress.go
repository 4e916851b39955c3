// Package progress renders an inline byte-count line for long file copies.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
)

const printInterval = 200 * time.Millisecond

// Reader wraps an io.Reader and refreshes a \r progress line on out as
// bytes flow through it, finishing with a newline at EOF. It serves the
// single-threaded copy loop; it is not safe for concurrent reads.
type Reader struct {
	r         io.Reader
	out       io.Writer
	label     string
	total     int64
	read      int64
	lastPrint time.Time
	done      bool
}

// NewReader returns a progress Reader labeled with the file being copied.
// A zero total omits the percentage.
func NewReader(r io.Reader, total int64, label string, out io.Writer) *Reader {
	return &Reader{r: r, out: out, label: label, total: total}
}

func (p *Reader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		if now := time.Now(); now.Sub(p.lastPrint) >= printInterval {
			p.print()
			p.lastPrint = now
		}
	}
	if err == io.EOF && !p.done && p.out != nil {
		p.done = true
		p.print()
		fmt.Fprintln(p.out)
	}
	return n, err
}

func (p *Reader) print() {
	if p.out == nil {
		return
	}
	if p.total > 0 {
		pct := float64(p.read) / float64(p.total) * 100
		fmt.Fprintf(p.out, "\r  %s: %s / %s (%.0f%%)",
			p.label, humanize.Bytes(uint64(p.read)), humanize.Bytes(uint64(p.total)), pct)
		return
	}
	fmt.Fprintf(p.out, "\r  %s: %s", p.label, humanize.Bytes(uint64(p.read)))
}
