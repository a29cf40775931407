package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriterCapturesOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)
	log.Info().Str("file", "a.json").Msg("processed")

	out := buf.String()
	assert.Contains(t, out, `"message":"processed"`)
	assert.Contains(t, out, `"file":"a.json"`)
}
