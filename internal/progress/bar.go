package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Bar is the presenter used when output is not an interactive terminal:
// one progress bar per file followed by its result line.
type Bar struct {
	out  io.Writer
	bar  *progressbar.ProgressBar
	path string
	max  int64
}

func NewBar(out io.Writer) *Bar {
	if out == nil {
		out = os.Stdout
	}
	return &Bar{out: out}
}

func (b *Bar) start(f Frame) {
	b.path = f.Path
	b.max = f.Size
	if b.max <= 0 {
		b.max = 1
	}

	b.bar = progressbar.NewOptions64(
		b.max,
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionUseANSICodes(false),
		progressbar.OptionSetDescription(fmt.Sprintf("[%d/%d] %s", f.Index, f.Total, f.Path)),
		progressbar.OptionShowCount(),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionThrottle(120*time.Millisecond),
	)
	_ = b.bar.RenderBlank()
}

func (b *Bar) Draw(f Frame) error {
	if f.Done {
		return nil
	}
	if b.bar == nil || f.Path != b.path {
		b.finish()
		b.start(f)
	}

	current := int64(f.Fraction() * float64(b.max))
	return b.bar.Set64(current)
}

func (b *Bar) finish() {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
	fmt.Fprintln(b.out)
	b.bar = nil
	b.path = ""
}

func (b *Bar) Record(e Entry) {
	b.finish()
	fmt.Fprintln(b.out, "  "+e.Path)
	fmt.Fprintln(b.out, "    "+e.Detail())
}

// Wait returns immediately; there is nobody to acknowledge.
func (b *Bar) Wait() error { return nil }

func (b *Bar) Close() error {
	b.finish()
	return nil
}
