package progress

import (
	"IntegrityScan/internal/display"
	"IntegrityScan/internal/metrics"
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

const (
	timeLayout = "2006-01-02 15:04:05"

	barLabel = "Progress: ["

	historyTop = 4
	// header rows above the history plus footer rows below it
	reservedRows = 9
)

// Screen renders the live status onto a display surface:
//
//	0         File : <path>
//	1         Size : <bytes>
//	2         Progress: [####      ]  42.00%
//	3         ----------------------------
//	4..       history, two rows per entry, newest first
//	rows-4    ----------------------------
//	rows-3    Progress: [##        ]  20.00%   (files)
//	rows-2    Current | Total | Bytes read
//	rows-1    Since | Now | Elapsed | Avg. Speed
type Screen struct {
	d       display.Display
	history *History[Entry]
}

func NewScreen(d display.Display, capacity int) *Screen {
	return &Screen{d: d, history: NewHistory[Entry](capacity)}
}

func (s *Screen) History() *History[Entry] { return s.history }

func (s *Screen) Record(e Entry) { s.history.Push(e) }

// Draw clears the surface and redraws the whole frame.
func (s *Screen) Draw(f Frame) error {
	rows, cols := s.d.Size()
	width := cols - 1
	if width < 0 {
		width = 0
	}

	s.d.Clear()

	if f.Done {
		s.d.WriteString(0, 0, fmt.Sprintf("Done : %d files, press any key to exit", f.Total), display.StyleBold)
	} else {
		s.d.WriteString(0, 0, "File : "+f.Path, display.StyleBold)
		s.d.WriteString(1, 0, fmt.Sprintf("Size : %s bytes (%s)", metrics.FormatCount(f.Size), metrics.FormatBytes(f.Size)), display.StyleNormal)
		s.drawBar(2, width, f.Fraction())
	}

	rule := strings.Repeat("-", width)
	s.d.WriteString(3, 0, rule, display.StyleDim)
	s.d.WriteString(rows-4, 0, rule, display.StyleDim)

	s.drawHistory(rows)

	s.drawBar(rows-3, width, fraction(int64(f.Index), int64(f.Total)))

	s.d.WriteString(rows-2, 0, center(fmt.Sprintf("Current: %d | Total: %d | Bytes read: %s",
		f.Index, f.Total, metrics.FormatBytes(f.BytesProcessed)), width), display.StyleNormal)

	elapsed := f.Now.Sub(f.Started)
	speed := metrics.Speed(f.BytesProcessed, elapsed)
	s.d.WriteString(rows-1, 0, center(fmt.Sprintf("Since: %s | Now: %s | Elapsed: %s | Avg. Speed: %s/s",
		f.Started.Format(timeLayout),
		f.Now.Format(timeLayout),
		metrics.FormatElapsed(elapsed),
		metrics.FormatBytes(int64(speed)),
	), width), display.StyleNormal)

	return s.d.Refresh()
}

// HistoryRows is how many entries fit between the two rules.
func HistoryRows(rows int) int {
	n := (rows - reservedRows) / 2
	if n < 0 {
		return 0
	}
	return n
}

func (s *Screen) drawHistory(rows int) {
	limit := HistoryRows(rows)
	y := historyTop
	shown := 0
	s.history.Each(func(e Entry) bool {
		if shown >= limit {
			return false
		}
		s.d.WriteString(y, 0, "  "+e.Path, display.StyleNormal)
		style := display.StyleNormal
		if !e.OK {
			style = display.StyleError
		}
		s.d.WriteString(y+1, 0, "    "+e.Detail(), style)
		y += 2
		shown++
		return true
	})
}

// drawBar renders "Progress: [###   ] 42.00%" across width cells.
func (s *Screen) drawBar(row, width int, p float64) {
	after := fmt.Sprintf("] %6.2f%%", 100*p)

	length := width - len(after) - len(barLabel)
	if length < 0 {
		length = 0
	}
	done := int(p * float64(length))
	if done > length {
		done = length
	}

	s.d.WriteString(row, 0, barLabel, display.StyleNormal)
	x := len(barLabel)
	for i := 0; i < length; i++ {
		ch := ' '
		if i < done {
			ch = '#'
		}
		s.d.WriteRune(row, x+i, ch, display.StyleNormal)
	}
	s.d.WriteString(row, x+length, after, display.StyleNormal)
}

func (s *Screen) Wait() error { return s.d.WaitKey() }

func (s *Screen) Close() error { return s.d.Close() }

// truncate cuts s to at most width cells without splitting a grapheme.
func truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	state := -1
	for len(s) > 0 {
		var cluster string
		var w int
		cluster, s, w, state = uniseg.FirstGraphemeClusterInString(s, state)
		if used+w > width {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	return b.String()
}

// center pads s to width, extra space going to the right.
func center(s string, width int) string {
	s = truncate(s, width)
	pad := width - uniseg.StringWidth(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
