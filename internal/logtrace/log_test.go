package logtrace

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_LevelFiltersAndFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Setup(Options{Level: "info", Output: &buf}))

	ctx := CtxWithCorrelationID(context.Background(), "run-1")

	Debug(ctx, "hidden", Fields{FieldPath: "a.txt"})
	Warn(ctx, "path skipped", Fields{FieldPath: "b.txt", FieldModule: ValueEnumerator})
	Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "path skipped")
	assert.Contains(t, out, "b.txt")
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "WARN")
}

func TestSetup_RejectsUnknownLevel(t *testing.T) {
	err := Setup(Options{Level: "chatty"})
	require.Error(t, err)
}
