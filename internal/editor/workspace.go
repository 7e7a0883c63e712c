package editor

import (
	"github.com/temirov/filetree/internal/vault"
)

// MarkdownExtension is the extension of documents that open in a Markdown editor.
const MarkdownExtension = "md"

// Editor is a Markdown document opened at a cursor.
type Editor struct {
	document *Document
	cursor   Cursor
}

// NewEditor returns an editor over document positioned at cursor.
func NewEditor(document *Document, cursor Cursor) *Editor {
	return &Editor{document: document, cursor: cursor}
}

// GetCursor returns the insertion point.
func (editor *Editor) GetCursor() Cursor { return editor.cursor }

// ReplaceRange inserts text at cursor.
func (editor *Editor) ReplaceRange(text string, cursor Cursor) {
	editor.document.ReplaceRange(text, cursor)
}

// Save persists the document.
func (editor *Editor) Save() error {
	return editor.document.Save()
}

// Workspace holds the vault and what is currently open in it.
type Workspace struct {
	Vault *vault.Vault
	// ActiveFilePath is the vault path of the open file; empty when nothing is open.
	ActiveFilePath string
	// Cursor is where text is inserted in the active editor.
	Cursor Cursor
	// OpenDocument loads a document from disk. OpenDocument from this package is used when nil.
	OpenDocument func(filesystemPath string) (*Document, error)
}

// ActiveFile returns the open file or nil when no file of the vault is open.
func (workspace *Workspace) ActiveFile() *vault.File {
	if workspace == nil || workspace.Vault == nil || workspace.ActiveFilePath == "" {
		return nil
	}
	file, isFile := workspace.Vault.FileByPath(workspace.ActiveFilePath)
	if !isFile {
		return nil
	}
	return file
}

// ActiveEditor returns a Markdown editor for the active file. It returns nil
// without an error when no file is open or the file is not a Markdown document.
func (workspace *Workspace) ActiveEditor() (*Editor, error) {
	activeFile := workspace.ActiveFile()
	if activeFile == nil || activeFile.Extension() != MarkdownExtension {
		return nil, nil
	}
	openDocument := workspace.OpenDocument
	if openDocument == nil {
		openDocument = OpenDocument
	}
	document, openError := openDocument(workspace.Vault.FilesystemPath(activeFile.Path()))
	if openError != nil {
		return nil, openError
	}
	return NewEditor(document, workspace.Cursor), nil
}
