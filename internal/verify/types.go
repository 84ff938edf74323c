package verify

import (
	def "IntegrityScan/definitions"
	"IntegrityScan/internal/metrics"
	"IntegrityScan/internal/progress"
	"fmt"
	"time"
)

// ChunkState is the progress of the file currently being read.
type ChunkState struct {
	Path string
	Size int64
	Read int64
}

// FileResult is the outcome of one file. Err is nil on success; otherwise
// only Path, Size (when known) and Description are meaningful.
type FileResult struct {
	Path    string
	SHA1    string
	CRC32   string
	Size    int64
	Elapsed time.Duration
	Speed   float64

	Err         error
	Description string
}

func (r FileResult) OK() bool { return r.Err == nil }

func (r FileResult) Record() def.Record {
	return def.Record{
		SHA1:      r.SHA1,
		CRC32:     r.CRC32,
		Size:      r.Size,
		ElapsedMs: r.Elapsed.Milliseconds(),
		Path:      r.Path,
	}
}

func (r FileResult) Entry() progress.Entry {
	return progress.Entry{
		Path:      r.Path,
		OK:        r.OK(),
		ElapsedMs: r.Elapsed.Milliseconds(),
		Speed:     r.Speed,
		SHA1:      r.SHA1,
		CRC32:     r.CRC32,
		Error:     r.Description,
	}
}

type State int

const (
	StateIdle State = iota
	StateEnumerating
	StateProcessingFile
	StateFileComplete
	StateAllDone
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEnumerating:
		return "enumerating"
	case StateProcessingFile:
		return "processing_file"
	case StateFileComplete:
		return "file_complete"
	case StateAllDone:
		return "all_done"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Report struct {
	State    State
	Files    int
	Problems int
	LogPath  string
	Snapshot metrics.Snapshot
}
