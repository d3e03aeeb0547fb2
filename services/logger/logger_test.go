package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, WarnLevel)

	l.Info("room %d reconciled", 7)
	assert.Empty(t, buf.String())

	l.Warn("booking %d has check-out before check-in", 12)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), "booking 12 has check-out before check-in")
}

func TestWith_AttachesFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, DebugLevel).With("run", "abc")

	l.Debug("start")
	assert.Contains(t, buf.String(), `"run":"abc"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel("warn"))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("whatever"))
}
