// Package editor loads vault documents, tracks an insertion cursor and writes
// edits back to disk.
package editor

import (
	"fmt"
	"os"
	"strings"

	"github.com/temirov/filetree/internal/filelock"
)

const (
	lineSeparator           = "\n"
	carriageReturn          = "\r"
	defaultFilePermissions  = 0o644
	errorReadDocumentFormat = "read document %s: %w"
	errorSaveDocumentFormat = "save document %s: %w"
)

// Cursor is a zero-based position. Ch counts characters within the line.
// A negative Line addresses the end of the document.
type Cursor struct {
	Line int
	Ch   int
}

// EndOfDocument addresses the position after the last character.
var EndOfDocument = Cursor{Line: -1}

// Document is the text of one file.
type Document struct {
	filesystemPath string
	permissions    os.FileMode
	content        string
	modified       bool
}

// NewDocument returns an in-memory document that saves to filesystemPath.
func NewDocument(filesystemPath string, content string) *Document {
	return &Document{filesystemPath: filesystemPath, permissions: defaultFilePermissions, content: content}
}

// OpenDocument reads the file at filesystemPath.
func OpenDocument(filesystemPath string) (*Document, error) {
	info, statError := os.Stat(filesystemPath)
	if statError != nil {
		return nil, fmt.Errorf(errorReadDocumentFormat, filesystemPath, statError)
	}
	// #nosec G304
	contentBytes, readError := os.ReadFile(filesystemPath)
	if readError != nil {
		return nil, fmt.Errorf(errorReadDocumentFormat, filesystemPath, readError)
	}
	return &Document{
		filesystemPath: filesystemPath,
		permissions:    info.Mode().Perm(),
		content:        string(contentBytes),
	}, nil
}

// Path returns the filesystem path the document saves to.
func (document *Document) Path() string { return document.filesystemPath }

// Content returns the current text.
func (document *Document) Content() string { return document.content }

// LineCount returns the number of lines; an empty document has one line.
func (document *Document) LineCount() int {
	return strings.Count(document.content, lineSeparator) + 1
}

// Offset converts cursor into a byte offset, clamping it into the document.
func (document *Document) Offset(cursor Cursor) int {
	if cursor.Line < 0 || cursor.Line >= document.LineCount() {
		return len(document.content)
	}
	lineStart := 0
	for line := 0; line < cursor.Line; line++ {
		lineStart += strings.Index(document.content[lineStart:], lineSeparator) + len(lineSeparator)
	}
	lineText := document.content[lineStart:]
	if lineEnd := strings.Index(lineText, lineSeparator); lineEnd >= 0 {
		lineText = strings.TrimSuffix(lineText[:lineEnd], carriageReturn)
	}
	if cursor.Ch <= 0 {
		return lineStart
	}
	characterIndex := 0
	for byteIndex := range lineText {
		if characterIndex == cursor.Ch {
			return lineStart + byteIndex
		}
		characterIndex++
	}
	return lineStart + len(lineText)
}

// ReplaceRange inserts text at cursor without removing existing content.
func (document *Document) ReplaceRange(text string, cursor Cursor) {
	if text == "" {
		return
	}
	offset := document.Offset(cursor)
	document.content = document.content[:offset] + text + document.content[offset:]
	document.modified = true
}

// Save writes the document under a file lock when it was modified.
func (document *Document) Save() error {
	if !document.modified {
		return nil
	}
	if writeError := filelock.LockAndWrite(document.filesystemPath, []byte(document.content), document.permissions); writeError != nil {
		return fmt.Errorf(errorSaveDocumentFormat, document.filesystemPath, writeError)
	}
	document.modified = false
	return nil
}
