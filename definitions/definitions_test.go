package definitions

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_StringFixedColumns(t *testing.T) {
	r := Record{
		SHA1:      "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d",
		CRC32:     "3610A686",
		Size:      5,
		ElapsedMs: 12,
		Path:      "dir/hello.txt",
	}

	got := r.String()
	want := "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d 3610A686            5           12 <dir/hello.txt>"
	assert.Equal(t, want, got)
}

func TestParseRecord_TableDriven(t *testing.T) {
	tests := []struct {
		name    string
		rec     Record
		line    string
		wantErr bool
	}{
		{
			name: "round trip plain path",
			rec:  Record{SHA1: "da39a3ee5e6b4b0d3255bfef95601890afd80709", CRC32: "00000000", Size: 0, ElapsedMs: 0, Path: "empty.bin"},
		},
		{
			name: "path with spaces and brackets",
			rec:  Record{SHA1: strings.Repeat("a", 40), CRC32: "DEADBEEF", Size: 42, ElapsedMs: 7, Path: "my dir/<odd> name.txt"},
		},
		{
			name: "size wider than its column",
			rec:  Record{SHA1: strings.Repeat("b", 40), CRC32: "0000FFFF", Size: 12345678901234, ElapsedMs: 1, Path: "/big.img"},
		},
		{name: "missing path", line: "abc 0000 1 2", wantErr: true},
		{name: "too few columns", line: "abc 1 2 <p>", wantErr: true},
		{name: "bad size", line: "abc DEADBEEF x 2 <p>", wantErr: true},
		{name: "empty path brackets only", line: "abc DEADBEEF 1 2 <", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := tt.line
			if line == "" {
				line = tt.rec.String() + "\n"
			}

			got, err := ParseRecord(line)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rec, got)
		})
	}
}

func TestExecutionTimeLine(t *testing.T) {
	ts := time.UnixMilli(1700000000123)

	line := ExecutionTimeLine(ts)
	assert.Equal(t, "execution time: 1700000000123", line)

	back, err := ParseExecutionTime(line)
	require.NoError(t, err)
	assert.True(t, back.Equal(ts))

	_, err = ParseExecutionTime("started: 1")
	require.Error(t, err)
}

func TestArtifactName(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 3, 0, time.Local)
	assert.Equal(t, ".integrity-cache-2024-03-09-070503", ArtifactName(ts))

	// one second apart never collides
	assert.NotEqual(t, ArtifactName(ts), ArtifactName(ts.Add(time.Second)))
}

func TestRecord_ValidateLineBreaks(t *testing.T) {
	base := Record{SHA1: strings.Repeat("a", 40), CRC32: "00000000", Size: 1, ElapsedMs: 1}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"plain", "dir/a.txt", false},
		{"carriage return round trips", "dir/a\rb.txt", false},
		{"newline", "dir/a\nb.txt", true},
		{"trailing newline", "dir/a.txt\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			r.Path = tt.path
			err := r.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnrepresentablePath)
				return
			}
			require.NoError(t, err)
			got, err := ParseRecord(r.String())
			require.NoError(t, err)
			assert.Equal(t, r, got)
		})
	}
}
