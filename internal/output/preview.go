// Package output renders generated trees for the terminal.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const (
	defaultPreviewWidth = 80
	plainPreviewStyle   = "notty"

	errorCreatePreviewFormat = "create preview renderer: %w"
	errorRenderPreviewFormat = "render preview: %w"
)

// Preview renders Markdown with glamour.
type Preview struct {
	width  int
	styled bool
}

// NewPreview sizes and styles the preview for file. Styling and the terminal
// width are only used when file is a terminal.
func NewPreview(file *os.File) Preview {
	fileDescriptor := file.Fd()
	if !isatty.IsTerminal(fileDescriptor) {
		return Preview{width: defaultPreviewWidth}
	}
	width, _, sizeError := term.GetSize(int(fileDescriptor))
	if sizeError != nil || width <= 0 {
		width = defaultPreviewWidth
	}
	return Preview{width: width, styled: true}
}

// NewPlainPreview returns an unstyled preview wrapped at width.
func NewPlainPreview(width int) Preview {
	if width <= 0 {
		width = defaultPreviewWidth
	}
	return Preview{width: width}
}

// Render returns markdown formatted for display.
func (preview Preview) Render(markdown string) (string, error) {
	styleOption := glamour.WithStandardStyle(plainPreviewStyle)
	if preview.styled {
		styleOption = glamour.WithAutoStyle()
	}
	renderer, rendererError := glamour.NewTermRenderer(styleOption, glamour.WithWordWrap(preview.width))
	if rendererError != nil {
		return "", fmt.Errorf(errorCreatePreviewFormat, rendererError)
	}
	rendered, renderError := renderer.Render(markdown)
	if renderError != nil {
		return "", fmt.Errorf(errorRenderPreviewFormat, renderError)
	}
	return rendered, nil
}

// WritePreview renders markdown and writes it to writer.
func (preview Preview) WritePreview(writer io.Writer, markdown string) error {
	rendered, renderError := preview.Render(markdown)
	if renderError != nil {
		return renderError
	}
	_, writeError := io.WriteString(writer, rendered)
	return writeError
}
