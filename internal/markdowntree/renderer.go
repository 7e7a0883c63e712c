// Package markdowntree renders a vault folder as a nested Markdown bullet list
// of links and validates the result.
package markdowntree

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/temirov/filetree/internal/vault"
)

const (
	// IndentUnit is the indentation added per nesting level.
	IndentUnit = "  "
	// FolderGlyph prefixes folder names in link texts.
	FolderGlyph = "📂"

	listItemMarker = "- "
)

// Options selects the link style of a rendering.
type Options struct {
	// VaultName is encoded into application URIs.
	VaultName string
	// UseRelativePaths switches from application URIs to relative paths.
	UseRelativePaths bool
	// Language selects the collation used to order siblings. The root collation is used when unset.
	Language language.Tag
}

// RenderTree renders folder and all of its descendants. activeFile is the
// reference for relative links and stays fixed for the whole tree.
func RenderTree(folder *vault.Folder, activeFile *vault.File, options Options) string {
	renderer := treeRenderer{
		options:    options,
		activePath: activeFile.Path(),
		collator:   collate.New(options.Language),
	}
	var builder strings.Builder
	renderer.writeFolder(&builder, folder, "")
	return builder.String()
}

type treeRenderer struct {
	options    Options
	activePath string
	collator   *collate.Collator
}

func (renderer treeRenderer) writeFolder(builder *strings.Builder, folder *vault.Folder, indent string) {
	writeLine(builder, indent, FolderGlyph+" "+folder.Name(), renderer.folderLink(folder))

	childIndent := indent + IndentUnit
	for _, child := range renderer.sortedChildren(folder) {
		switch typed := child.(type) {
		case *vault.Folder:
			renderer.writeFolder(builder, typed, childIndent)
		case *vault.File:
			writeLine(builder, childIndent, typed.Name(), renderer.fileLink(typed))
		}
	}
}

// sortedChildren orders a copy of the children by name; equal names keep their order.
func (renderer treeRenderer) sortedChildren(folder *vault.Folder) []vault.Node {
	children := folder.Children()
	sort.SliceStable(children, func(left, right int) bool {
		return renderer.collator.CompareString(children[left].Name(), children[right].Name()) < 0
	})
	return children
}

func (renderer treeRenderer) folderLink(folder *vault.Folder) string {
	if renderer.options.UseRelativePaths {
		return RelativeLink(renderer.activePath, folder.Path())
	}
	return FolderURI(renderer.options.VaultName, folder.Path())
}

func (renderer treeRenderer) fileLink(file *vault.File) string {
	if renderer.options.UseRelativePaths {
		return RelativeLink(renderer.activePath, file.Path())
	}
	return FileURI(renderer.options.VaultName, file.Path())
}

func writeLine(builder *strings.Builder, indent string, text string, link string) {
	builder.WriteString(indent)
	builder.WriteString(listItemMarker)
	builder.WriteString("[")
	builder.WriteString(text)
	builder.WriteString("](")
	builder.WriteString(link)
	builder.WriteString(")\n")
}
