package vault_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temirov/filetree/internal/utils"
	"github.com/temirov/filetree/internal/vault"
)

func writeVaultFiles(t *testing.T, root string, relativePaths ...string) {
	t.Helper()
	for _, relativePath := range relativePaths {
		fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
		if strings.HasSuffix(relativePath, "/") {
			require.NoError(t, os.MkdirAll(fullPath, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte("# "+relativePath+"\n"), 0o644))
	}
}

func TestScanBuildsIndexedTree(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Knowledge Base")
	writeVaultFiles(t, root,
		".obsidian/app.json",
		"Projects/Alpha.md",
		"Projects/Archive/Old.md",
		"Projects/Empty/",
		"Inbox.md",
	)

	scanned, scanErr := vault.Scan(root, vault.ScanOptions{IgnorePatterns: []string{utils.ObsidianDirectoryName + "/"}})
	require.NoError(t, scanErr)

	assert.Equal(t, "Knowledge Base", scanned.Name())
	assert.Equal(t, []string{
		"Inbox.md",
		"Projects",
		"Projects/Alpha.md",
		"Projects/Archive",
		"Projects/Archive/Old.md",
		"Projects/Empty",
	}, scanned.Paths())

	archive, isFolder := scanned.FolderByPath("Projects/Archive")
	require.True(t, isFolder)
	assert.Equal(t, "Archive", archive.Name())
	assert.Equal(t, "Projects", archive.Parent().Path())

	note, isFile := scanned.FileByPath("Projects/Archive/Old.md")
	require.True(t, isFile)
	assert.Equal(t, "Old.md", note.Name())
	assert.Equal(t, "md", note.Extension())

	empty, isFolder := scanned.FolderByPath("Projects/Empty")
	require.True(t, isFolder)
	assert.Empty(t, empty.Children())
}

func TestScanHonorsNameOverride(t *testing.T) {
	root := t.TempDir()
	writeVaultFiles(t, root, "note.md")

	scanned, scanErr := vault.Scan(root, vault.ScanOptions{Name: "Work"})
	require.NoError(t, scanErr)
	assert.Equal(t, "Work", scanned.Name())
}

func TestScanRejectsFileRoot(t *testing.T) {
	root := t.TempDir()
	writeVaultFiles(t, root, "note.md")

	_, scanErr := vault.Scan(filepath.Join(root, "note.md"), vault.ScanOptions{})
	require.Error(t, scanErr)
	assert.Contains(t, scanErr.Error(), "not a directory")
}

func TestAbstractFileByPathResolvesRoot(t *testing.T) {
	root := vault.NewRootFolder()
	root.AddChild(vault.NewFile("note.md"))
	inMemory := vault.New("Vault", "", root)

	for _, rootAlias := range []string{"", vault.RootPath} {
		folder, isFolder := inMemory.FolderByPath(rootAlias)
		require.True(t, isFolder, "alias %q", rootAlias)
		assert.True(t, folder.IsRoot())
		assert.Equal(t, "", folder.Name())
	}

	assert.Nil(t, inMemory.AbstractFileByPath("missing"))
	_, isFolder := inMemory.FolderByPath("note.md")
	assert.False(t, isFolder, "a file must not resolve as a folder")
}

func TestRelativePathConvertsFilesystemPaths(t *testing.T) {
	root := t.TempDir()
	writeVaultFiles(t, root, "Projects/Alpha.md")
	scanned, scanErr := vault.Scan(root, vault.ScanOptions{})
	require.NoError(t, scanErr)

	relativePath, relativeErr := scanned.RelativePath(filepath.Join(root, "Projects", "Alpha.md"))
	require.NoError(t, relativeErr)
	assert.Equal(t, "Projects/Alpha.md", relativePath)

	fromVaultRelative, vaultRelativeErr := scanned.RelativePath(filepath.Join("Projects", "Alpha.md"))
	require.NoError(t, vaultRelativeErr)
	assert.Equal(t, "Projects/Alpha.md", fromVaultRelative)

	rootPath, rootErr := scanned.RelativePath(root)
	require.NoError(t, rootErr)
	assert.Equal(t, vault.RootPath, rootPath)

	_, outsideErr := scanned.RelativePath(filepath.Dir(root))
	assert.ErrorIs(t, outsideErr, vault.ErrOutsideVault)

	assert.Equal(t, filepath.Join(root, "Projects", "Alpha.md"), scanned.FilesystemPath("Projects/Alpha.md"))
}

func TestSuggestRanksFuzzyMatches(t *testing.T) {
	root := vault.NewRootFolder()
	projects := vault.NewFolder("Projects")
	projects.AddChild(vault.NewFile("Projects/Alpha.md"))
	root.AddChild(projects).AddChild(vault.NewFile("Inbox.md"))
	inMemory := vault.New("Vault", "", root)

	suggestions := inMemory.Suggest("Projcts", 2)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "Projects", suggestions[0])
	assert.LessOrEqual(t, len(suggestions), 2)

	assert.Nil(t, inMemory.Suggest("/", 3))
	assert.Nil(t, inMemory.Suggest("Projects", 0))
}

func TestFindRootLocatesVaultMarker(t *testing.T) {
	root := t.TempDir()
	writeVaultFiles(t, root, ".obsidian/app.json", "Projects/Alpha.md")

	located, findErr := vault.FindRoot(filepath.Join(root, "Projects", "Alpha.md"))
	require.NoError(t, findErr)
	assert.Equal(t, root, located)

	_, missingErr := vault.FindRoot(t.TempDir())
	assert.ErrorIs(t, missingErr, vault.ErrVaultRootNotFound)
}
