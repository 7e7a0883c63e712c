package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/filetree/internal/utils"
)

const (
	// warningSkipSubdirFormat is used when a subdirectory cannot be read.
	warningSkipSubdirFormat = "Warning: Skipping subdirectory %s due to error: %v"

	// errorAbsoluteRootFormat is used when the vault root cannot be resolved.
	errorAbsoluteRootFormat = "getting absolute path for %s: %w"

	// errorRootNotDirectoryFormat is used when the vault root is not a directory.
	errorRootNotDirectoryFormat = "vault root %s is not a directory"

	// errorReadRootFormat is used when the vault root cannot be read.
	errorReadRootFormat = "reading vault root %s: %w"

	// errorVaultRootNotFoundFormat is used when no vault marker is found above a path.
	errorVaultRootNotFoundFormat = "no %s directory found in or above %s: %w"
)

// ErrVaultRootNotFound is returned by FindRoot when no vault marker exists.
var ErrVaultRootNotFound = errors.New("vault root not found")

// ScanOptions controls how a directory is materialised into a vault.
type ScanOptions struct {
	// Name overrides the vault name. The base name of the root directory is used when empty.
	Name string
	// IgnorePatterns are evaluated against vault paths with utils.ShouldIgnoreByPath.
	IgnorePatterns []string
	// Warn receives messages about skipped subdirectories.
	Warn func(message string)
}

// Scan reads rootDirectory recursively and returns the indexed vault.
// Subdirectories that cannot be read are kept as empty folders and reported through Warn.
func Scan(rootDirectory string, options ScanOptions) (*Vault, error) {
	absoluteRootDirectory, absoluteError := filepath.Abs(rootDirectory)
	if absoluteError != nil {
		return nil, fmt.Errorf(errorAbsoluteRootFormat, rootDirectory, absoluteError)
	}
	rootInfo, statError := os.Stat(absoluteRootDirectory)
	if statError != nil {
		return nil, fmt.Errorf(errorReadRootFormat, absoluteRootDirectory, statError)
	}
	if !rootInfo.IsDir() {
		return nil, fmt.Errorf(errorRootNotDirectoryFormat, absoluteRootDirectory)
	}

	warn := options.Warn
	if warn == nil {
		warn = func(string) {}
	}
	scanner := directoryScanner{
		rootDirectory:  absoluteRootDirectory,
		ignorePatterns: options.IgnorePatterns,
		warn:           warn,
	}

	root := NewRootFolder()
	if readError := scanner.populate(root, absoluteRootDirectory); readError != nil {
		return nil, fmt.Errorf(errorReadRootFormat, absoluteRootDirectory, readError)
	}

	vaultName := options.Name
	if vaultName == "" {
		vaultName = filepath.Base(absoluteRootDirectory)
	}
	return New(vaultName, absoluteRootDirectory, root), nil
}

type directoryScanner struct {
	rootDirectory  string
	ignorePatterns []string
	warn           func(message string)
}

// populate appends the entries of directoryPath to folder, recursing into subdirectories.
func (scanner directoryScanner) populate(folder *Folder, directoryPath string) error {
	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return readDirectoryError
	}

	for _, directoryEntry := range directoryEntries {
		childVaultPath := ChildPath(folder.Path(), directoryEntry.Name())
		if utils.ShouldIgnoreByPath(childVaultPath, scanner.ignorePatterns) {
			continue
		}

		if !directoryEntry.IsDir() {
			folder.AddChild(NewFile(childVaultPath))
			continue
		}

		childFolder := NewFolder(childVaultPath)
		childDirectoryPath := filepath.Join(directoryPath, directoryEntry.Name())
		if populateError := scanner.populate(childFolder, childDirectoryPath); populateError != nil {
			scanner.warn(fmt.Sprintf(warningSkipSubdirFormat, childDirectoryPath, populateError))
		}
		folder.AddChild(childFolder)
	}
	return nil
}

// FindRoot walks upward from startPath and returns the first directory that
// contains the host configuration directory.
func FindRoot(startPath string) (string, error) {
	absoluteStartPath, absoluteError := filepath.Abs(startPath)
	if absoluteError != nil {
		return "", fmt.Errorf(errorAbsoluteRootFormat, startPath, absoluteError)
	}
	startDirectory := absoluteStartPath
	if info, statError := os.Stat(absoluteStartPath); statError != nil || !info.IsDir() {
		startDirectory = filepath.Dir(absoluteStartPath)
	}
	located, found := utils.FindAncestorContaining(startDirectory, utils.ObsidianDirectoryName)
	if !found {
		return "", fmt.Errorf(errorVaultRootNotFoundFormat, utils.ObsidianDirectoryName, startDirectory, ErrVaultRootNotFound)
	}
	return located, nil
}
