package commands

import (
	"errors"
	"fmt"
)

const (
	// missingContextMessage is shown when nothing is open for editing.
	missingContextMessage = "No active file or editor found."
	// folderNotFoundMessageFormat is shown when the containing folder is absent.
	folderNotFoundMessageFormat = "Folder not found: %s"
	// insertedMessage is shown after a successful insertion.
	insertedMessage = "File tree inserted successfully!"
)

// ErrMissingContext reports that no active file or Markdown editor is available.
var ErrMissingContext = errors.New(missingContextMessage)

// FolderNotFoundError reports that the folder containing the active file is not in the vault.
type FolderNotFoundError struct {
	Path        string
	Suggestions []string
}

func (folderError *FolderNotFoundError) Error() string {
	return fmt.Sprintf(folderNotFoundMessageFormat, folderError.Path)
}
