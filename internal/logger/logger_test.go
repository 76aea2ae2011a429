package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset() {
	SetVerbose(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())
}

func TestLevels_WhenVerbose(t *testing.T) {
	defer reset()

	tests := []struct {
		name     string
		log      func()
		expected string
	}{
		{"debug", func() { Debug("opened %s", "a.pdf") }, "[DEBUG] opened a.pdf\n"},
		{"info", func() { Info("pages %d", 3) }, "[INFO] pages 3\n"},
		{"warn", func() { Warn("backend failed") }, "[WARN] backend failed\n"},
		{"section", func() { Section("Open") }, "\n=== Open ===\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetOutput(&buf)
			SetVerbose(true)

			tc.log()

			assert.Equal(t, tc.expected, buf.String())
		})
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("hidden")
	Section("hidden")

	assert.Zero(t, buf.Len())
}
