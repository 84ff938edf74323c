package progress

import (
	"IntegrityScan/internal/display"
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_EvictsOldestNewestFirst(t *testing.T) {
	const capacity = 100
	h := NewHistory[int](capacity)

	for i := 0; i <= capacity; i++ {
		h.Push(i)
		require.LessOrEqual(t, h.Len(), h.Cap())
	}

	assert.Equal(t, capacity, h.Len())
	items := h.Items()
	assert.Equal(t, capacity, items[0], "newest first")
	assert.Equal(t, 1, items[len(items)-1], "0 was evicted")
	assert.NotContains(t, items, 0)
}

func TestHistory_TableDriven(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		pushes   int
		want     []int
	}{
		{"empty", 3, 0, []int{}},
		{"partial", 3, 2, []int{1, 0}},
		{"exactly full", 3, 3, []int{2, 1, 0}},
		{"wrapped twice", 3, 7, []int{6, 5, 4}},
		{"capacity clamped to one", 0, 4, []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory[int](tt.capacity)
			for i := 0; i < tt.pushes; i++ {
				h.Push(i)
			}
			assert.Equal(t, tt.want, h.Items())
		})
	}
}

func TestHistory_EachStopsEarly(t *testing.T) {
	h := NewHistory[string](4)
	for _, s := range []string{"a", "b", "c"} {
		h.Push(s)
	}
	var seen []string
	h.Each(func(s string) bool {
		seen = append(seen, s)
		return len(seen) < 2
	})
	assert.Equal(t, []string{"c", "b"}, seen)
}

func baseFrame() Frame {
	start := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	return Frame{
		Path:           "/data/movie.mkv",
		Size:           2048,
		Read:           1024,
		Index:          1,
		Total:          4,
		BytesProcessed: 0,
		Started:        start,
		Now:            start.Add(10 * time.Second),
	}
}

func TestScreen_DrawLayout(t *testing.T) {
	rec := display.NewRecorder(20, 81)
	s := NewScreen(rec, 10)

	s.Record(Entry{Path: "/data/a.bin", OK: true, ElapsedMs: 1500, Speed: 2048, SHA1: "sha", CRC32: "CRC"})
	s.Record(Entry{Path: "/data/b.bin", OK: false, Error: "IOError: EACCES: permission denied"})

	require.NoError(t, s.Draw(baseFrame()))
	lines := rec.Frame()
	require.Len(t, lines, 20)

	assert.Equal(t, "File : /data/movie.mkv", lines[0])
	assert.Equal(t, "Size : 2,048 bytes (2.000 KiB)", lines[1])

	// width 80 = label 11 + bar 60 + "]  50.00%" 9
	assert.Equal(t, "Progress: ["+strings.Repeat("#", 30)+strings.Repeat(" ", 30)+"]  50.00%", lines[2])
	assert.Equal(t, strings.Repeat("-", 80), lines[3])

	// newest first
	assert.Equal(t, "  /data/b.bin", lines[4])
	assert.Equal(t, "    --> Error: IOError: EACCES: permission denied", lines[5])
	assert.Equal(t, display.StyleError, rec.StyleAt(5, 4))
	assert.Equal(t, "  /data/a.bin", lines[6])
	assert.Equal(t, "    --> Elapsed Time: 1,500ms Avg. Speed: 2.000 KiB/s SHA1: sha CRC32: CRC", lines[7])
	assert.Equal(t, display.StyleNormal, rec.StyleAt(7, 4))

	assert.Equal(t, strings.Repeat("-", 80), lines[16])
	assert.Equal(t, "Progress: ["+strings.Repeat("#", 15)+strings.Repeat(" ", 45)+"]  25.00%", lines[17])
	assert.Contains(t, lines[18], "Current: 1 | Total: 4 | Bytes read: 0")
	assert.LessOrEqual(t, len(lines[19]), 80)
	assert.True(t, strings.HasPrefix(lines[19], "Since: 2024-01-02 03:04:05 | Now: 2024-01-02 03:04:15 | Elapsed: 0:00:10"), lines[19])
}

func TestScreen_EmptyFileIsComplete(t *testing.T) {
	rec := display.NewRecorder(12, 41)
	s := NewScreen(rec, 10)

	f := baseFrame()
	f.Size, f.Read = 0, 0
	require.NoError(t, s.Draw(f))

	assert.Equal(t, "Progress: ["+strings.Repeat("#", 20)+"] 100.00%", rec.Frame()[2])
}

func TestScreen_HistoryLimitedByHeight(t *testing.T) {
	rec := display.NewRecorder(13, 60)
	s := NewScreen(rec, 100)
	for i := 0; i < 10; i++ {
		s.Record(Entry{Path: fmt.Sprintf("f%d", i), OK: true})
	}

	require.NoError(t, s.Draw(baseFrame()))
	lines := rec.Frame()

	// (13-9)/2 = 2 entries fit
	assert.Equal(t, 2, HistoryRows(13))
	assert.Equal(t, "  f9", lines[4])
	assert.Equal(t, "  f8", lines[6])
	assert.Equal(t, strings.Repeat("-", 59), lines[9])
	assert.Equal(t, 10, s.History().Len())
}

func TestScreen_NarrowTerminalsDoNotPanic(t *testing.T) {
	sizes := [][2]int{{0, 0}, {1, 1}, {3, 5}, {9, 12}, {24, 19}, {5, 200}}
	for _, sz := range sizes {
		t.Run(fmt.Sprintf("%dx%d", sz[0], sz[1]), func(t *testing.T) {
			rec := display.NewRecorder(sz[0], sz[1])
			s := NewScreen(rec, 5)
			s.Record(Entry{Path: "x", OK: false, Error: "boom"})

			f := baseFrame()
			f.Read = f.Size * 3 // over-reporting must still clamp
			require.NotPanics(t, func() {
				require.NoError(t, s.Draw(f))
			})

			for _, line := range rec.Frame() {
				assert.LessOrEqual(t, len(line), sz[1])
			}
		})
	}
}

func TestScreen_DoneFrameAndWait(t *testing.T) {
	rec := display.NewRecorder(12, 60)
	s := NewScreen(rec, 5)

	f := baseFrame()
	f.Done = true
	f.Index = 4
	require.NoError(t, s.Draw(f))
	assert.Equal(t, "Done : 4 files, press any key to exit", rec.Frame()[0])

	require.NoError(t, s.Wait())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, rec.Keys)
	assert.True(t, rec.Closed)
}

func TestScreen_RefreshErrorPropagates(t *testing.T) {
	rec := display.NewRecorder(12, 60)
	rec.RefreshErr = fmt.Errorf("tty gone")
	s := NewScreen(rec, 5)

	err := s.Draw(baseFrame())
	require.Error(t, err)
}

func TestCenterAndTruncate(t *testing.T) {
	assert.Equal(t, "  ab   ", center("ab", 7))
	assert.Equal(t, "abc", center("abcdef", 3))
	assert.Equal(t, "", center("abc", 0))
	assert.Equal(t, "日本", truncate("日本語", 5))
}

func TestEntry_Detail(t *testing.T) {
	ok := Entry{OK: true, ElapsedMs: 12345, Speed: 500, SHA1: "s", CRC32: "C"}
	assert.Equal(t, "--> Elapsed Time: 12,345ms Avg. Speed: 500/s SHA1: s CRC32: C", ok.Detail())

	bad := Entry{Error: "IOError: ENOENT: no such file or directory"}
	assert.Equal(t, "--> Error: IOError: ENOENT: no such file or directory", bad.Detail())
}

func TestBar_RendersPerFileAndResults(t *testing.T) {
	var buf bytes.Buffer
	b := NewBar(&buf)

	f := baseFrame()
	require.NoError(t, b.Draw(f))
	f.Read = f.Size
	require.NoError(t, b.Draw(f))
	b.Record(Entry{Path: f.Path, OK: true, SHA1: "abc", CRC32: "DEF"})

	empty := baseFrame()
	empty.Path, empty.Size, empty.Read, empty.Index = "/data/empty", 0, 0, 2
	require.NoError(t, b.Draw(empty))
	b.Record(Entry{Path: empty.Path, OK: false, Error: "gone"})

	require.NoError(t, b.Draw(Frame{Done: true}))
	require.NoError(t, b.Wait())
	require.NoError(t, b.Close())

	out := buf.String()
	assert.Contains(t, out, "[1/4] /data/movie.mkv")
	assert.Contains(t, out, "[2/4] /data/empty")
	assert.Contains(t, out, "SHA1: abc CRC32: DEF")
	assert.Contains(t, out, "--> Error: gone")
}
