package notice

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleWritesPlainLinesWithoutColour(t *testing.T) {
	var output bytes.Buffer
	console := NewConsoleWriter(&output, false)

	console.Info("scanning")
	console.Success("File tree inserted successfully!")
	console.Error("Folder not found: notes")

	assert.Equal(t, "scanning\nFile tree inserted successfully!\nFolder not found: notes\n", output.String())
}

func TestConsoleColoursErrors(t *testing.T) {
	var output bytes.Buffer
	console := NewConsoleWriter(&output, true)

	console.Error("No active file or editor found.")

	assert.Contains(t, output.String(), "\x1b[")
	assert.Contains(t, output.String(), "No active file or editor found.")
}

func TestRecorderKeepsOrder(t *testing.T) {
	recorder := &Recorder{}
	recorder.Info("a")
	recorder.Error("b")

	assert.Equal(t, []Notice{{Level: LevelInfo, Message: "a"}, {Level: LevelError, Message: "b"}}, recorder.Notices())
}
