package progress

import (
	"IntegrityScan/internal/metrics"
	"fmt"
	"time"
)

// Entry is one completed file as shown in the history.
type Entry struct {
	Path      string
	OK        bool
	ElapsedMs int64
	Speed     float64
	SHA1      string
	CRC32     string
	Error     string
}

func (e Entry) Detail() string {
	if !e.OK {
		return "--> Error: " + e.Error
	}
	return fmt.Sprintf("--> Elapsed Time: %sms Avg. Speed: %s/s SHA1: %s CRC32: %s",
		metrics.FormatCount(e.ElapsedMs),
		metrics.FormatBytes(int64(e.Speed)),
		e.SHA1,
		e.CRC32,
	)
}

// Frame is everything one redraw needs.
type Frame struct {
	Path string
	Size int64
	Read int64

	Index          int
	Total          int
	BytesProcessed int64

	Started time.Time
	Now     time.Time

	// Done marks the final frame shown while waiting for acknowledgement.
	Done bool
}

// Fraction is Read/Size clamped to [0,1]; an empty file counts as done.
func (f Frame) Fraction() float64 {
	return fraction(f.Read, f.Size)
}

func fraction(current, total int64) float64 {
	if total <= 0 {
		return 1
	}
	p := float64(current) / float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
