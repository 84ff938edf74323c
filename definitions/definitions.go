package definitions

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	Header              = "# format: {SHA1} {CRC32} {size} {elapsedTime} <{path}>"
	ExecutionTimePrefix = "execution time: "

	NamePrefix = ".integrity-cache-"
	NameLayout = "2006-01-02-150405"

	SHA1Width    = 40
	CRC32Width   = 8
	NumericWidth = 12
)

// ErrUnrepresentablePath is returned for paths a line-based manifest
// cannot hold.
var ErrUnrepresentablePath = errors.New("path contains a line break")

type Record struct {
	SHA1      string
	CRC32     string
	Size      int64
	ElapsedMs int64
	Path      string
}

func (r Record) String() string {
	return fmt.Sprintf("%-*s %-*s %*d %*d <%s>",
		SHA1Width, r.SHA1,
		CRC32Width, r.CRC32,
		NumericWidth, r.Size,
		NumericWidth, r.ElapsedMs,
		r.Path,
	)
}

// Validate rejects records whose line would not parse back: a newline in
// the path splits the record across two lines.
func (r Record) Validate() error {
	if strings.ContainsRune(r.Path, '\n') {
		return fmt.Errorf("%w: %q", ErrUnrepresentablePath, r.Path)
	}
	return nil
}

// ParseRecord reverses Record.String for any record that passes Validate. Numeric columns may grow past their
// width, so the line is split on whitespace up to the first '<' and the
// path is everything between it and the trailing '>'.
func ParseRecord(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")

	open := strings.IndexByte(line, '<')
	if open < 0 || !strings.HasSuffix(line, ">") || open == len(line)-1 {
		return Record{}, fmt.Errorf("manifest: record without <path>: %q", line)
	}

	cols := strings.Fields(line[:open])
	if len(cols) != 4 {
		return Record{}, fmt.Errorf("manifest: expected 4 columns before path, got %d: %q", len(cols), line)
	}

	size, err := strconv.ParseInt(cols[2], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("manifest: size column: %w", err)
	}
	elapsed, err := strconv.ParseInt(cols[3], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("manifest: elapsed column: %w", err)
	}

	return Record{
		SHA1:      cols[0],
		CRC32:     cols[1],
		Size:      size,
		ElapsedMs: elapsed,
		Path:      line[open+1 : len(line)-1],
	}, nil
}

func ExecutionTimeLine(t time.Time) string {
	return fmt.Sprintf("%s%*d", ExecutionTimePrefix, NumericWidth, t.UnixMilli())
}

func ParseExecutionTime(line string) (time.Time, error) {
	rest, ok := strings.CutPrefix(strings.TrimRight(line, "\r\n"), ExecutionTimePrefix)
	if !ok {
		return time.Time{}, fmt.Errorf("manifest: missing %q prefix: %q", ExecutionTimePrefix, line)
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(rest), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("manifest: execution time: %w", err)
	}
	return time.UnixMilli(ms), nil
}

// ArtifactName embeds the run start to second granularity in local time.
func ArtifactName(started time.Time) string {
	return NamePrefix + started.Format(NameLayout)
}
