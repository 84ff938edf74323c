// Package resultlog writes the per-run manifest of verified files.
//
// A manifest is created once per run, named after the run start, and never
// overwritten. Every record is synced before Append returns, so a crash
// leaves all earlier records readable.
package resultlog

import (
	def "IntegrityScan/definitions"
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

type Log struct {
	f    afero.File
	path string
}

// Create opens a new manifest in dir and writes its two header lines.
func Create(fsys afero.Fs, dir string, started time.Time) (*Log, error) {
	path := filepath.Join(dir, def.ArtifactName(started))

	f, err := fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("manifest: create: %w", err)
	}

	l := &Log{f: f, path: path}
	if err := l.writeLine(def.Header); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := l.writeLine(def.ExecutionTimeLine(started)); err != nil {
		_ = f.Close()
		return nil, err
	}
	return l, nil
}

func (l *Log) Path() string { return l.path }

// Append writes one record and syncs it to stable storage. A record that
// fails Validate is not written and the error wraps
// definitions.ErrUnrepresentablePath.
func (l *Log) Append(r def.Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	return l.writeLine(r.String())
}

func (l *Log) writeLine(line string) error {
	if _, err := l.f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("manifest: write %s: %w", l.path, err)
	}
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("manifest: sync %s: %w", l.path, err)
	}
	return nil
}

func (l *Log) Close() error {
	if err := l.f.Close(); err != nil {
		return fmt.Errorf("manifest: close %s: %w", l.path, err)
	}
	return nil
}

// ReadFile parses a manifest back into its start time and records.
func ReadFile(fsys afero.Fs, path string) (started time.Time, records []def.Record, err error) {
	f, err := fsys.Open(path)
	if err != nil {
		return time.Time{}, nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		switch line {
		case 1:
			if text != def.Header {
				return time.Time{}, nil, fmt.Errorf("manifest %s: unexpected header %q", path, text)
			}
		case 2:
			started, err = def.ParseExecutionTime(text)
			if err != nil {
				return time.Time{}, nil, err
			}
		default:
			r, perr := def.ParseRecord(text)
			if perr != nil {
				return time.Time{}, nil, fmt.Errorf("manifest %s line %d: %w", path, line, perr)
			}
			records = append(records, r)
		}
	}
	if err := sc.Err(); err != nil {
		return time.Time{}, nil, err
	}
	if line < 2 {
		return time.Time{}, nil, fmt.Errorf("manifest %s: truncated header", path)
	}
	return started, records, nil
}
