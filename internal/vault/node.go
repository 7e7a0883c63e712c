// Package vault models the folder tree of a document vault and materialises
// it from a directory on disk.
package vault

import (
	"path"
	"slices"
	"strings"
)

// RootPath is the vault path of the root folder.
const RootPath = "/"

// Node is either a *Folder or a *File.
type Node interface {
	Name() string
	Path() string
	Parent() *Folder
	isNode()
}

// Folder is a directory of the vault.
type Folder struct {
	name     string
	path     string
	parent   *Folder
	children []Node
}

// File is a document of the vault.
type File struct {
	name   string
	path   string
	parent *Folder
}

// NewRootFolder returns an empty root folder. The root has an empty name and the path "/".
func NewRootFolder() *Folder {
	return &Folder{path: RootPath}
}

// NewFolder returns a detached folder with the given vault path.
func NewFolder(folderPath string) *Folder {
	return &Folder{name: path.Base(folderPath), path: folderPath}
}

// NewFile returns a detached file with the given vault path.
func NewFile(filePath string) *File {
	return &File{name: path.Base(filePath), path: filePath}
}

func (folder *Folder) Name() string    { return folder.name }
func (folder *Folder) Path() string    { return folder.path }
func (folder *Folder) Parent() *Folder { return folder.parent }
func (*Folder) isNode()                {}

// IsRoot reports whether the folder is the vault root.
func (folder *Folder) IsRoot() bool { return folder.path == RootPath }

// Children returns a copy of the children in insertion order.
func (folder *Folder) Children() []Node {
	return slices.Clone(folder.children)
}

// AddChild attaches node to the folder and returns the folder for chaining.
func (folder *Folder) AddChild(node Node) *Folder {
	switch typed := node.(type) {
	case *Folder:
		typed.parent = folder
	case *File:
		typed.parent = folder
	}
	folder.children = append(folder.children, node)
	return folder
}

func (file *File) Name() string    { return file.name }
func (file *File) Path() string    { return file.path }
func (file *File) Parent() *Folder { return file.parent }
func (*File) isNode()              {}

// Extension returns the lower-case extension without the leading dot.
func (file *File) Extension() string {
	extension := path.Ext(file.name)
	return strings.ToLower(strings.TrimPrefix(extension, "."))
}

// ChildPath joins a child name onto a parent vault path.
func ChildPath(parentPath string, childName string) string {
	if parentPath == RootPath || parentPath == "" {
		return childName
	}
	return parentPath + "/" + childName
}

// Walk visits node and all of its descendants depth-first in insertion order.
func Walk(node Node, visit func(Node)) {
	visit(node)
	folder, isFolder := node.(*Folder)
	if !isFolder {
		return
	}
	for _, child := range folder.children {
		Walk(child, visit)
	}
}
