package markdowntree_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/temirov/filetree/internal/markdowntree"
	"github.com/temirov/filetree/internal/vault"
)

const testVaultName = "My Vault"

// sampleVault builds:
//
//	Projects/
//	  zeta.md
//	  Alpha.md
//	  beta/
//	    Plan 1.md
//	  Archive/
//	  beta.md
//	Inbox.md
func sampleVault() *vault.Vault {
	root := vault.NewRootFolder()
	projects := vault.NewFolder("Projects")
	betaFolder := vault.NewFolder("Projects/beta")
	betaFolder.AddChild(vault.NewFile("Projects/beta/Plan 1.md"))
	projects.
		AddChild(vault.NewFile("Projects/zeta.md")).
		AddChild(vault.NewFile("Projects/Alpha.md")).
		AddChild(betaFolder).
		AddChild(vault.NewFolder("Projects/Archive")).
		AddChild(vault.NewFile("Projects/beta.md"))
	root.AddChild(projects).AddChild(vault.NewFile("Inbox.md"))
	return vault.New(testVaultName, "", root)
}

func mustFolder(t *testing.T, source *vault.Vault, folderPath string) *vault.Folder {
	t.Helper()
	folder, isFolder := source.FolderByPath(folderPath)
	require.True(t, isFolder, "folder %s", folderPath)
	return folder
}

func mustFile(t *testing.T, source *vault.Vault, filePath string) *vault.File {
	t.Helper()
	file, isFile := source.FileByPath(filePath)
	require.True(t, isFile, "file %s", filePath)
	return file
}

func TestRenderTreeURIMode(t *testing.T) {
	source := sampleVault()
	rendered := markdowntree.RenderTree(
		mustFolder(t, source, "Projects"),
		mustFile(t, source, "Projects/Alpha.md"),
		markdowntree.Options{VaultName: testVaultName},
	)

	expected := "" +
		"- [📂 Projects](obsidian://open?vault=My%20Vault&folder=Projects)\n" +
		"  - [Alpha.md](obsidian://open?vault=My%20Vault&file=Projects%2FAlpha.md)\n" +
		"  - [📂 Archive](obsidian://open?vault=My%20Vault&folder=Projects%2FArchive)\n" +
		"  - [📂 beta](obsidian://open?vault=My%20Vault&folder=Projects%2Fbeta)\n" +
		"    - [Plan 1.md](obsidian://open?vault=My%20Vault&file=Projects%2Fbeta%2FPlan%201.md)\n" +
		"  - [beta.md](obsidian://open?vault=My%20Vault&file=Projects%2Fbeta.md)\n" +
		"  - [zeta.md](obsidian://open?vault=My%20Vault&file=Projects%2Fzeta.md)\n"
	assert.Equal(t, expected, rendered)
}

func TestRenderTreeRelativeMode(t *testing.T) {
	source := sampleVault()
	rendered := markdowntree.RenderTree(
		mustFolder(t, source, "Projects"),
		mustFile(t, source, "Projects/Alpha.md"),
		markdowntree.Options{VaultName: testVaultName, UseRelativePaths: true},
	)

	expected := "" +
		"- [📂 Projects](Projects)\n" +
		"  - [Alpha.md](Alpha.md)\n" +
		"  - [📂 Archive](Archive)\n" +
		"  - [📂 beta](beta)\n" +
		"    - [Plan 1.md](beta/Plan%201.md)\n" +
		"  - [beta.md](beta.md)\n" +
		"  - [zeta.md](zeta.md)\n"
	assert.Equal(t, expected, rendered)
}

func TestRenderTreeOrdersSiblingsByLanguage(t *testing.T) {
	root := vault.NewRootFolder()
	fruit := vault.NewFolder("Fruit")
	fruit.
		AddChild(vault.NewFile("Fruit/zeta.md")).
		AddChild(vault.NewFile("Fruit/äpple.md")).
		AddChild(vault.NewFile("Fruit/ost.md"))
	root.AddChild(fruit)
	source := vault.New(testVaultName, "", root)

	testCases := []struct {
		name     string
		tag      language.Tag
		expected []string
	}{
		{name: "root collation", tag: language.Und, expected: []string{"äpple.md", "ost.md", "zeta.md"}},
		{name: "swedish collation", tag: language.Swedish, expected: []string{"ost.md", "zeta.md", "äpple.md"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			rendered := markdowntree.RenderTree(
				mustFolder(t, source, "Fruit"),
				mustFile(t, source, "Fruit/ost.md"),
				markdowntree.Options{UseRelativePaths: true, Language: testCase.tag},
			)
			var order []string
			for _, line := range strings.Split(strings.TrimSuffix(rendered, "\n"), "\n")[1:] {
				name := strings.TrimPrefix(line, "  - [")
				order = append(order, name[:strings.Index(name, "]")])
			}
			assert.Equal(t, testCase.expected, order)
		})
	}
}

func TestRenderTreeLineCountAndIndentation(t *testing.T) {
	source := sampleVault()
	root := mustFolder(t, source, vault.RootPath)
	rendered := markdowntree.RenderTree(root, mustFile(t, source, "Inbox.md"), markdowntree.Options{VaultName: testVaultName})

	folderCount, fileCount := 0, 0
	depths := map[string]int{}
	var record func(node vault.Node, depth int)
	record = func(node vault.Node, depth int) {
		switch typed := node.(type) {
		case *vault.Folder:
			if !typed.IsRoot() {
				folderCount++
			}
			depths[typed.Name()] = depth
			for _, child := range typed.Children() {
				record(child, depth+1)
			}
		case *vault.File:
			fileCount++
			depths[typed.Name()] = depth
		}
	}
	record(root, 0)

	lines := strings.Split(strings.TrimSuffix(rendered, "\n"), "\n")
	require.Len(t, lines, folderCount+fileCount+1)

	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		indentWidth := len(line) - len(trimmed)
		name := strings.TrimPrefix(trimmed[len("- ["):strings.Index(trimmed, "](")], markdowntree.FolderGlyph+" ")
		assert.Equal(t, depths[name]*len(markdowntree.IndentUnit), indentWidth, "line %q", line)
	}
}

func TestRenderTreeEmptyFolder(t *testing.T) {
	source := sampleVault()
	rendered := markdowntree.RenderTree(
		mustFolder(t, source, "Projects/Archive"),
		mustFile(t, source, "Projects/Alpha.md"),
		markdowntree.Options{VaultName: testVaultName, UseRelativePaths: true},
	)
	assert.Equal(t, "- [📂 Archive](Archive)\n", rendered)
}

func TestRenderTreeKeepsSameNamedFolderAndFile(t *testing.T) {
	root := vault.NewRootFolder()
	root.
		AddChild(vault.NewFile("notes")).
		AddChild(vault.NewFolder("notes")).
		AddChild(vault.NewFile("index.md"))
	source := vault.New(testVaultName, "", root)

	rendered := markdowntree.RenderTree(root, mustFile(t, source, "index.md"), markdowntree.Options{UseRelativePaths: true})
	expected := "" +
		"- [📂 ]()\n" +
		"  - [index.md](index.md)\n" +
		"  - [notes](notes)\n" +
		"  - [📂 notes](notes)\n"
	assert.Equal(t, expected, rendered)
}

func TestRenderTreeDoesNotReorderFolderChildren(t *testing.T) {
	source := sampleVault()
	projects := mustFolder(t, source, "Projects")
	before := projects.Children()

	markdowntree.RenderTree(projects, mustFile(t, source, "Projects/Alpha.md"), markdowntree.Options{})

	assert.Equal(t, before, projects.Children())
}

func TestRenderTreeURIsRoundTrip(t *testing.T) {
	source := sampleVault()
	rendered := markdowntree.RenderTree(mustFolder(t, source, vault.RootPath), mustFile(t, source, "Inbox.md"), markdowntree.Options{VaultName: "Vault & Co/ü"})

	summary, validationErr := markdowntree.Validate(rendered)
	require.NoError(t, validationErr)
	require.NotEmpty(t, summary.Destinations)

	for _, destination := range summary.Destinations {
		parsed, parseErr := url.Parse(destination)
		require.NoError(t, parseErr)
		assert.Equal(t, "obsidian", parsed.Scheme)
		assert.Equal(t, "open", parsed.Host)

		query := parsed.Query()
		assert.Equal(t, "Vault & Co/ü", query.Get("vault"))
		targetPath := query.Get("file")
		if targetPath == "" {
			targetPath = query.Get("folder")
		}
		assert.NotNil(t, source.AbstractFileByPath(targetPath), "destination %s", destination)
	}
}

func TestRenderTreeOrdersWithLocaleCollation(t *testing.T) {
	root := vault.NewRootFolder()
	for _, name := range []string{"b.md", "Émile.md", "a.md", "B.md", "e.md", "10.md", "_draft.md"} {
		root.AddChild(vault.NewFile(name))
	}
	source := vault.New(testVaultName, "", root)

	rendered := markdowntree.RenderTree(root, mustFile(t, source, "a.md"), markdowntree.Options{UseRelativePaths: true})

	var names []string
	for _, line := range strings.Split(strings.TrimSuffix(rendered, "\n"), "\n")[1:] {
		trimmed := strings.TrimSpace(line)
		names = append(names, trimmed[len("- ["):strings.Index(trimmed, "](")])
	}
	assert.Equal(t, []string{"_draft.md", "10.md", "a.md", "b.md", "B.md", "e.md", "Émile.md"}, names)
}

func TestRenderTreeLinkStyleToggleIsReversible(t *testing.T) {
	source := sampleVault()
	projects := mustFolder(t, source, "Projects")
	active := mustFile(t, source, "Projects/Alpha.md")

	original := markdowntree.RenderTree(projects, active, markdowntree.Options{VaultName: testVaultName})
	relative := markdowntree.RenderTree(projects, active, markdowntree.Options{VaultName: testVaultName, UseRelativePaths: true})
	restored := markdowntree.RenderTree(projects, active, markdowntree.Options{VaultName: testVaultName})

	assert.NotEqual(t, original, relative)
	assert.Equal(t, original, restored)
}
