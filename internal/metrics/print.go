package metrics

import (
	"fmt"
	"io"
	"time"
)

type Snapshot struct {
	DurationMs     int64
	Total          int
	Processed      int64
	Succeeded      int64
	Failed         int64
	BytesProcessed int64
	BytesPerSecond float64
}

func (s *Session) Snapshot(now time.Time) Snapshot {
	dur := s.Duration(now)

	return Snapshot{
		DurationMs:     dur.Milliseconds(),
		Total:          s.Total,
		Processed:      s.Succeeded + s.Failed,
		Succeeded:      s.Succeeded,
		Failed:         s.Failed,
		BytesProcessed: s.BytesProcessed,
		BytesPerSecond: Speed(s.BytesProcessed, dur),
	}
}

// Print writes the end-of-run summary.
func Print(w io.Writer, snap Snapshot) {
	fmt.Fprintln(w, "--- stats ---")
	fmt.Fprintln(w, "duration:", FormatElapsed(time.Duration(snap.DurationMs)*time.Millisecond))
	fmt.Fprintln(w, "files:", snap.Processed, "/", snap.Total)
	fmt.Fprintln(w, "ok:", snap.Succeeded)
	fmt.Fprintln(w, "failed:", snap.Failed)
	fmt.Fprintf(w, "bytes_read: %s (%s)\n", FormatCount(snap.BytesProcessed), FormatBytes(snap.BytesProcessed))
	fmt.Fprintf(w, "avg_speed: %s/s\n", FormatBytes(int64(snap.BytesPerSecond)))
}
