package vault

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/temirov/filetree/internal/utils"
)

const (
	errorAbsolutePathFormat = "resolve absolute path for %s: %w"
	errorOutsideVaultFormat = "%s is outside the vault %s"
)

// ErrOutsideVault is returned when a filesystem path does not belong to the vault.
var ErrOutsideVault = errors.New("path is outside the vault")

// Vault is an in-memory folder tree rooted at a directory.
type Vault struct {
	name          string
	rootDirectory string
	root          *Folder
	index         map[string]Node
}

// New indexes the tree under root. rootDirectory is the absolute directory the
// tree was read from and may be empty for vaults built in memory.
func New(name string, rootDirectory string, root *Folder) *Vault {
	vault := &Vault{
		name:          name,
		rootDirectory: rootDirectory,
		root:          root,
		index:         map[string]Node{},
	}
	Walk(root, func(node Node) {
		vault.index[node.Path()] = node
	})
	return vault
}

// Name returns the display name of the vault.
func (vault *Vault) Name() string { return vault.name }

// RootDirectory returns the directory the vault was scanned from.
func (vault *Vault) RootDirectory() string { return vault.rootDirectory }

// AbstractFileByPath returns the node at vaultPath or nil when none exists.
// Both "" and "/" resolve to the root folder.
func (vault *Vault) AbstractFileByPath(vaultPath string) Node {
	if vaultPath == "" {
		vaultPath = RootPath
	}
	node, exists := vault.index[vaultPath]
	if !exists {
		return nil
	}
	return node
}

// FolderByPath returns the folder at vaultPath.
func (vault *Vault) FolderByPath(vaultPath string) (*Folder, bool) {
	folder, isFolder := vault.AbstractFileByPath(vaultPath).(*Folder)
	return folder, isFolder
}

// FileByPath returns the file at vaultPath.
func (vault *Vault) FileByPath(vaultPath string) (*File, bool) {
	file, isFile := vault.AbstractFileByPath(vaultPath).(*File)
	return file, isFile
}

// RelativePath converts a filesystem path into a vault path. Relative inputs
// are resolved against the vault root directory.
func (vault *Vault) RelativePath(filesystemPath string) (string, error) {
	candidatePath := filesystemPath
	if !filepath.IsAbs(candidatePath) {
		candidatePath = filepath.Join(vault.rootDirectory, candidatePath)
	}
	absolutePath, absoluteError := filepath.Abs(candidatePath)
	if absoluteError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, filesystemPath, absoluteError)
	}
	relativePath := utils.RelativePathOrSelf(absolutePath, vault.rootDirectory)
	if utils.IsOutsideRoot(relativePath) {
		return "", fmt.Errorf(errorOutsideVaultFormat+": %w", filesystemPath, vault.rootDirectory, ErrOutsideVault)
	}
	if relativePath == "." {
		return RootPath, nil
	}
	return relativePath, nil
}

// FilesystemPath converts a vault path into a path under the vault root directory.
func (vault *Vault) FilesystemPath(vaultPath string) string {
	if vaultPath == RootPath {
		return vault.rootDirectory
	}
	return filepath.Join(vault.rootDirectory, filepath.FromSlash(vaultPath))
}

// Paths returns every vault path except the root, sorted.
func (vault *Vault) Paths() []string {
	paths := make([]string, 0, len(vault.index))
	for vaultPath := range vault.index {
		if vaultPath == RootPath {
			continue
		}
		paths = append(paths, vaultPath)
	}
	sort.Strings(paths)
	return paths
}

// Suggest returns up to limit existing vault paths that fuzzily match query,
// best match first.
func (vault *Vault) Suggest(query string, limit int) []string {
	trimmedQuery := strings.Trim(query, utils.VaultPathSeparator)
	if trimmedQuery == "" || limit <= 0 {
		return nil
	}
	matches := fuzzy.Find(trimmedQuery, vault.Paths())
	if len(matches) < limit {
		limit = len(matches)
	}
	suggestions := make([]string, 0, limit)
	for _, match := range matches[:limit] {
		suggestions = append(suggestions, match.Str)
	}
	return suggestions
}
