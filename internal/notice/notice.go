// Package notice shows short user-facing messages.
package notice

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Level classifies a notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier displays notices to the user.
type Notifier interface {
	Info(message string)
	Success(message string)
	Error(message string)
}

// Console writes notices as single colourised lines.
type Console struct {
	writer io.Writer
	styles map[Level]*color.Color
}

// NewConsole returns a console notifier writing to file. Colours are used
// only when file is a terminal.
func NewConsole(file *os.File) *Console {
	colorEnabled := isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	return NewConsoleWriter(file, colorEnabled)
}

// NewConsoleWriter returns a console notifier writing to writer.
func NewConsoleWriter(writer io.Writer, colorEnabled bool) *Console {
	styles := map[Level]*color.Color{
		LevelInfo:    color.New(color.FgCyan),
		LevelSuccess: color.New(color.FgGreen),
		LevelError:   color.New(color.FgRed, color.Bold),
	}
	for _, style := range styles {
		if colorEnabled {
			style.EnableColor()
		} else {
			style.DisableColor()
		}
	}
	return &Console{writer: writer, styles: styles}
}

func (console *Console) Info(message string)    { console.show(LevelInfo, message) }
func (console *Console) Success(message string) { console.show(LevelSuccess, message) }
func (console *Console) Error(message string)   { console.show(LevelError, message) }

func (console *Console) show(level Level, message string) {
	fmt.Fprintln(console.writer, console.styles[level].Sprint(message))
}

// Notice is one recorded message.
type Notice struct {
	Level   Level
	Message string
}

// Recorder keeps notices in memory.
type Recorder struct {
	mutex   sync.Mutex
	notices []Notice
}

func (recorder *Recorder) Info(message string)    { recorder.record(LevelInfo, message) }
func (recorder *Recorder) Success(message string) { recorder.record(LevelSuccess, message) }
func (recorder *Recorder) Error(message string)   { recorder.record(LevelError, message) }

// Notices returns a copy of the recorded notices.
func (recorder *Recorder) Notices() []Notice {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()
	return append([]Notice(nil), recorder.notices...)
}

func (recorder *Recorder) record(level Level, message string) {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()
	recorder.notices = append(recorder.notices, Notice{Level: level, Message: message})
}

var (
	_ Notifier = (*Console)(nil)
	_ Notifier = (*Recorder)(nil)
)
