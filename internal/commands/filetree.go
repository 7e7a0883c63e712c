// Package commands contains the logic behind each user command.
package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/temirov/filetree/internal/editor"
	"github.com/temirov/filetree/internal/markdowntree"
	"github.com/temirov/filetree/internal/notice"
)

const (
	suggestionLimit = 3

	errorOpenEditorFormat = "open active editor: %w"
	errorValidateFormat   = "validate generated tree: %w"
	errorSaveFormat       = "save %s: %w"
)

// InsertOptions selects how a tree is produced and delivered.
type InsertOptions struct {
	UseRelativePaths bool
	// Strict validates the generated Markdown before it is inserted.
	Strict bool
	// DryRun renders the tree without touching the document.
	DryRun bool
	// Language orders siblings; the zero tag selects the root collation.
	Language language.Tag
}

// Result describes a generated tree.
type Result struct {
	InvocationID string
	FolderPath   string
	Markdown     string
	Inserted     bool
	Cursor       editor.Cursor
}

// FileTreeInserter renders the folder of the active file into its editor.
type FileTreeInserter struct {
	notifier notice.Notifier
	logger   *zap.Logger
}

// NewFileTreeInserter wires the inserter to its notifier and logger.
func NewFileTreeInserter(notifier notice.Notifier, logger *zap.Logger) *FileTreeInserter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileTreeInserter{notifier: notifier, logger: logger}
}

// InsertFileTree renders the folder containing the active file and inserts
// it at the cursor. Every failure is reported through the notifier before it
// is returned and leaves the document untouched.
func (inserter *FileTreeInserter) InsertFileTree(ctx context.Context, workspace *editor.Workspace, options InsertOptions) (Result, error) {
	result := Result{InvocationID: uuid.NewString()}
	logger := inserter.logger.With(zap.String("invocation", result.InvocationID))

	if contextError := ctx.Err(); contextError != nil {
		return result, contextError
	}

	activeFile := workspace.ActiveFile()
	activeEditor, editorError := workspace.ActiveEditor()
	if editorError != nil {
		wrapped := fmt.Errorf(errorOpenEditorFormat, editorError)
		inserter.notifier.Error(wrapped.Error())
		return result, wrapped
	}
	if activeFile == nil || activeEditor == nil {
		logger.Debug("missing context", zap.String("activeFile", workspace.ActiveFilePath))
		inserter.notifier.Error(missingContextMessage)
		return result, ErrMissingContext
	}

	result.FolderPath = markdowntree.ContainingFolderPath(activeFile.Path())
	folder, folderFound := workspace.Vault.FolderByPath(result.FolderPath)
	if !folderFound {
		folderError := &FolderNotFoundError{
			Path:        result.FolderPath,
			Suggestions: workspace.Vault.Suggest(result.FolderPath, suggestionLimit),
		}
		logger.Debug("folder not found", zap.String("folder", result.FolderPath), zap.Strings("suggestions", folderError.Suggestions))
		inserter.notifier.Error(folderError.Error())
		return result, folderError
	}

	result.Markdown = markdowntree.RenderTree(folder, activeFile, markdowntree.Options{
		VaultName:        workspace.Vault.Name(),
		UseRelativePaths: options.UseRelativePaths,
		Language:         options.Language,
	})
	logger.Debug("rendered tree",
		zap.String("folder", result.FolderPath),
		zap.Bool("relative", options.UseRelativePaths),
		zap.Stringer("language", options.Language),
		zap.Int("bytes", len(result.Markdown)),
	)

	if options.Strict {
		summary, validationError := markdowntree.Validate(result.Markdown)
		if validationError != nil {
			wrapped := fmt.Errorf(errorValidateFormat, validationError)
			inserter.notifier.Error(wrapped.Error())
			return result, wrapped
		}
		logger.Debug("validated tree", zap.Int("items", summary.Items), zap.Int("depth", summary.MaxDepth))
	}

	if options.DryRun {
		return result, nil
	}

	result.Cursor = activeEditor.GetCursor()
	activeEditor.ReplaceRange(result.Markdown, result.Cursor)
	if saveError := activeEditor.Save(); saveError != nil {
		wrapped := fmt.Errorf(errorSaveFormat, activeFile.Path(), saveError)
		inserter.notifier.Error(wrapped.Error())
		return result, wrapped
	}
	result.Inserted = true
	inserter.notifier.Success(insertedMessage)
	logger.Info("inserted file tree", zap.String("file", activeFile.Path()), zap.String("folder", result.FolderPath))
	return result, nil
}
