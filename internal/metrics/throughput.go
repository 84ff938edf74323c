package metrics

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	KiB = 1024
	MiB = KiB * 1024
	GiB = MiB * 1024
	TiB = GiB * 1024
)

// Speed returns bytes per second over whole elapsed seconds. Anything
// under one second reports 0.
func Speed(bytes int64, elapsed time.Duration) float64 {
	secs := int64(elapsed / time.Second)
	if secs <= 0 || bytes <= 0 {
		return 0
	}
	return float64(bytes) / float64(secs)
}

// FormatBytes picks the largest binary unit the value exceeds.
func FormatBytes(b int64) string {
	switch {
	case b > TiB:
		return fmt.Sprintf("%.3f TiB", float64(b)/TiB)
	case b > GiB:
		return fmt.Sprintf("%.3f GiB", float64(b)/GiB)
	case b > MiB:
		return fmt.Sprintf("%.3f MiB", float64(b)/MiB)
	case b > KiB:
		return fmt.Sprintf("%.3f KiB", float64(b)/KiB)
	default:
		return strconv.FormatInt(b, 10)
	}
}

var grouping = message.NewPrinter(language.English)

// FormatCount groups digits by thousands: 1234567 -> "1,234,567".
func FormatCount(n int64) string {
	return grouping.Sprintf("%d", n)
}

// FormatElapsed renders d as H:MM:SS.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := int64(d / time.Hour)
	m := int64(d/time.Minute) % 60
	s := int64(d/time.Second) % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
