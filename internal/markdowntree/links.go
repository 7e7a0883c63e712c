package markdowntree

import (
	"strings"

	"github.com/temirov/filetree/internal/vault"
)

const (
	obsidianOpenURIPrefix = "obsidian://open?vault="
	folderQueryKey        = "&folder="
	fileQueryKey          = "&file="
)

// FolderURI builds the application URI opening the folder at folderPath.
func FolderURI(vaultName string, folderPath string) string {
	return obsidianOpenURIPrefix + URIComponentEncode(vaultName) + folderQueryKey + URIComponentEncode(folderPath)
}

// FileURI builds the application URI opening the file at filePath.
func FileURI(vaultName string, filePath string) string {
	return obsidianOpenURIPrefix + URIComponentEncode(vaultName) + fileQueryKey + URIComponentEncode(filePath)
}

// ActiveDirectory returns the part of the active file path before its last
// separator, or "" for files at the vault root.
func ActiveDirectory(activeFilePath string) string {
	separatorIndex := strings.LastIndex(activeFilePath, "/")
	if separatorIndex < 0 {
		return ""
	}
	return activeFilePath[:separatorIndex]
}

// RelativeLink strips the active file's directory and one separator from the
// front of targetPath. Targets outside that directory keep their full vault
// path; parent segments are never produced.
func RelativeLink(activeFilePath string, targetPath string) string {
	directoryPrefix := ActiveDirectory(activeFilePath) + "/"
	relativePath := strings.TrimPrefix(targetPath, directoryPrefix)
	return URIEncode(relativePath)
}

// ContainingFolderPath returns the vault path of the folder holding filePath.
// Files at the vault root resolve to vault.RootPath.
func ContainingFolderPath(filePath string) string {
	directory := ActiveDirectory(filePath)
	if directory == "" {
		return vault.RootPath
	}
	return directory
}
