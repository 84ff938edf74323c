package verify

import (
	"IntegrityScan/internal/metrics"
	"crypto/sha1" // #nosec G505 -- used for file integrity verification only
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"time"

	"github.com/spf13/afero"
)

// ChunkSize is the size of every read.
const ChunkSize = 8192

// ChecksumStep folds one chunk into a running checksum seeded by the
// previous chunk's result.
type ChecksumStep func(seed uint32, chunk []byte) uint32

// CRC32Step is the IEEE CRC-32 fold; the first chunk is seeded with 0.
func CRC32Step(seed uint32, chunk []byte) uint32 {
	return crc32.Update(seed, crc32.IEEETable, chunk)
}

type Digester struct {
	fs   afero.Fs
	now  func() time.Time
	step ChecksumStep
	buf  []byte
}

func NewDigester(fsys afero.Fs, now func() time.Time) *Digester {
	if now == nil {
		now = time.Now
	}
	return &Digester{
		fs:   fsys,
		now:  now,
		step: CRC32Step,
		buf:  make([]byte, ChunkSize),
	}
}

// Digest reads path to the end in ChunkSize reads, feeding SHA-1 and the
// CRC-32 fold. onChunk is called once the size is known and after every
// chunk; an error from it aborts the digest and is returned as is. I/O
// problems never produce an error: they come back as a failed FileResult.
func (d *Digester) Digest(path string, onChunk func(ChunkState) error) (FileResult, error) {
	res := FileResult{Path: path}

	info, err := d.fs.Stat(path)
	if err != nil {
		return failed(res, err), nil
	}
	res.Size = info.Size()

	report := func(read int64) error {
		if onChunk == nil {
			return nil
		}
		return onChunk(ChunkState{Path: path, Size: res.Size, Read: read})
	}
	if err := report(0); err != nil {
		return res, err
	}

	start := d.now()

	f, err := d.fs.Open(path) // #nosec G304
	if err != nil {
		return failed(res, err), nil
	}
	defer func() {
		_ = f.Close()
	}()

	var (
		h    hash.Hash = sha1.New() // #nosec G401 -- used for file integrity verification only
		sum  uint32
		read int64
	)
	for {
		n, rerr := f.Read(d.buf)
		if n > 0 {
			chunk := d.buf[:n]
			if _, werr := h.Write(chunk); werr != nil {
				return failed(res, werr), nil
			}
			sum = d.step(sum, chunk)
			read += int64(n)

			if err := report(read); err != nil {
				return res, err
			}
		}
		if rerr == io.EOF || (n == 0 && rerr == nil) {
			break
		}
		if rerr != nil {
			return failed(res, rerr), nil
		}
	}

	res.Elapsed = d.now().Sub(start)
	if res.Elapsed < 0 {
		res.Elapsed = 0
	}
	res.SHA1 = hex.EncodeToString(h.Sum(nil))
	res.CRC32 = fmt.Sprintf("%08X", sum&0xFFFFFFFF)
	res.Speed = metrics.Speed(res.Size, res.Elapsed)
	return res, nil
}

func failed(res FileResult, err error) FileResult {
	res.Err = err
	res.Description = Describe(err)
	return res
}
