package display

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mitchellh/colorstring"
	"golang.org/x/term"
)

const (
	fallbackRows = 24
	fallbackCols = 80

	enterScreen = "\x1b[?1049h\x1b[?25l"
	leaveScreen = "\x1b[0m\x1b[?25h\x1b[?1049l"
)

var (
	ErrNotTerminal = errors.New("display: output is not a terminal")
	ErrClosed      = errors.New("display: closed")
)

// Terminal draws on an ANSI terminal using the alternate screen buffer.
type Terminal struct {
	in     *os.File
	out    *bufio.Writer
	outFd  int
	grid   grid
	colors colorstring.Colorize

	// painted holds the encoded rows last flushed; Refresh only sends rows
	// that differ from it.
	painted     []string
	paintedCols int

	mu     sync.Mutex
	raw    *term.State
	rawFd  int
	closed bool
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewTerminal switches out to the alternate screen. Keys are read from in.
func NewTerminal(in, out *os.File) (*Terminal, error) {
	if !IsTerminal(out) {
		return nil, ErrNotTerminal
	}
	t := newTerminal(in, out, int(out.Fd()))
	if _, err := t.out.WriteString(enterScreen); err != nil {
		return nil, fmt.Errorf("display: enter screen: %w", err)
	}
	if err := t.out.Flush(); err != nil {
		return nil, fmt.Errorf("display: enter screen: %w", err)
	}
	return t, nil
}

func newTerminal(in *os.File, out io.Writer, outFd int) *Terminal {
	return &Terminal{
		in:    in,
		out:   bufio.NewWriter(out),
		outFd: outFd,
		colors: colorstring.Colorize{
			Colors: colorstring.DefaultColors,
			Reset:  false,
		},
	}
}

func (t *Terminal) Size() (rows, cols int) {
	if t.outFd < 0 {
		return fallbackRows, fallbackCols
	}
	w, h, err := term.GetSize(t.outFd)
	if err != nil || w <= 0 || h <= 0 {
		return fallbackRows, fallbackCols
	}
	return h, w
}

func (t *Terminal) Clear() {
	t.grid.reset(t.Size())
}

func (t *Terminal) WriteString(row, col int, s string, style Style) {
	t.grid.put(row, col, s, style)
}

func (t *Terminal) WriteRune(row, col int, r rune, style Style) {
	t.grid.put(row, col, string(r), style)
}

func (t *Terminal) styleCode(s Style) string {
	switch s {
	case StyleBold:
		return t.colors.Color("[reset][bold]")
	case StyleDim:
		return t.colors.Color("[reset][dim]")
	case StyleError:
		return t.colors.Color("[reset][bold][red]")
	default:
		return t.colors.Color("[reset]")
	}
}

// Refresh sends the rows of the pending frame that changed since the last
// refresh.
func (t *Terminal) Refresh() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}

	if len(t.painted) != t.grid.rows || t.paintedCols != t.grid.cols {
		t.painted = make([]string, t.grid.rows)
		t.paintedCols = t.grid.cols
	}

	for r := 0; r < t.grid.rows; r++ {
		row := t.encodeRow(r)
		if row == t.painted[r] {
			continue
		}
		fmt.Fprintf(t.out, "\x1b[%d;1H", r+1)
		t.out.WriteString(row)
		t.painted[r] = row
	}
	if err := t.out.Flush(); err != nil {
		t.painted = nil
		return fmt.Errorf("display: refresh: %w", err)
	}
	return nil
}

func (t *Terminal) encodeRow(r int) string {
	var b strings.Builder
	current := StyleNormal
	b.WriteString(t.styleCode(current))
	for _, c := range t.grid.cells[r] {
		if c.tail {
			continue
		}
		if c.style != current {
			current = c.style
			b.WriteString(t.styleCode(current))
		}
		if c.text == "" {
			b.WriteByte(' ')
		} else {
			b.WriteString(c.text)
		}
	}
	b.WriteString(t.styleCode(StyleNormal))
	b.WriteString("\x1b[K")
	return b.String()
}

// WaitKey puts the input in raw mode for the duration of one byte read.
func (t *Terminal) WaitKey() error {
	if t.in == nil {
		return nil
	}
	fd := int(t.in.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("display: raw mode: %w", err)
		}
		t.mu.Lock()
		t.raw, t.rawFd = state, fd
		t.mu.Unlock()
		defer t.restoreInput()
	}

	var one [1]byte
	if _, err := t.in.Read(one[:]); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("display: read key: %w", err)
	}
	return nil
}

func (t *Terminal) restoreInput() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.restoreInputLocked()
}

func (t *Terminal) restoreInputLocked() {
	if t.raw == nil {
		return
	}
	_ = term.Restore(t.rawFd, t.raw)
	t.raw = nil
}

// Close leaves the alternate screen and restores the input mode. It is
// safe to call from another goroutine while a frame is being drawn.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	t.restoreInputLocked()
	t.out.WriteString(leaveScreen)
	return t.out.Flush()
}
