package markdowntree

import (
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// ErrInvalidTree is wrapped by every validation failure.
var ErrInvalidTree = errors.New("invalid markdown tree")

const (
	errorTopLevelFormat    = "%w: expected a single bullet list at the top level, found %s"
	errorOrderedListFormat = "%w: ordered list at depth %d"
	errorItemLinkFormat    = "%w: item %d at depth %d must contain exactly one link"
	errorItemChildFormat   = "%w: item %d at depth %d contains %s after its link"
)

// Summary describes a validated tree.
type Summary struct {
	// Items is the number of list items, one per folder or file.
	Items int
	// MaxDepth is the deepest nesting level; the top-level item has depth 0.
	MaxDepth int
	// Destinations holds every link destination in document order.
	Destinations []string
}

// Validate parses markdown and checks that it is one nested bullet list in
// which every item consists of a single link optionally followed by a nested list.
func Validate(markdown string) (Summary, error) {
	source := []byte(markdown)
	document := goldmark.New().Parser().Parse(text.NewReader(source))

	var summary Summary
	topLevel := document.FirstChild()
	if topLevel == nil {
		return summary, nil
	}
	list, isList := topLevel.(*ast.List)
	if !isList || topLevel.NextSibling() != nil {
		return summary, fmt.Errorf(errorTopLevelFormat, ErrInvalidTree, describeTopLevel(document))
	}
	validation := treeValidation{source: source, summary: &summary}
	if validationError := validation.inspectList(list, 0); validationError != nil {
		return summary, validationError
	}
	return summary, nil
}

type treeValidation struct {
	source  []byte
	summary *Summary
}

func (validation treeValidation) inspectList(list *ast.List, depth int) error {
	if list.IsOrdered() {
		return fmt.Errorf(errorOrderedListFormat, ErrInvalidTree, depth)
	}
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		validation.summary.Items++
		itemNumber := validation.summary.Items
		if depth > validation.summary.MaxDepth {
			validation.summary.MaxDepth = depth
		}

		heading := item.FirstChild()
		if heading == nil || heading.ChildCount() != 1 {
			return fmt.Errorf(errorItemLinkFormat, ErrInvalidTree, itemNumber, depth)
		}
		link, isLink := heading.FirstChild().(*ast.Link)
		if !isLink {
			return fmt.Errorf(errorItemLinkFormat, ErrInvalidTree, itemNumber, depth)
		}
		validation.summary.Destinations = append(validation.summary.Destinations, string(link.Destination))

		for rest := heading.NextSibling(); rest != nil; rest = rest.NextSibling() {
			nested, isNestedList := rest.(*ast.List)
			if !isNestedList {
				return fmt.Errorf(errorItemChildFormat, ErrInvalidTree, itemNumber, depth, rest.Kind())
			}
			if nestedError := validation.inspectList(nested, depth+1); nestedError != nil {
				return nestedError
			}
		}
	}
	return nil
}

func describeTopLevel(document ast.Node) string {
	description := ""
	for node := document.FirstChild(); node != nil; node = node.NextSibling() {
		if description != "" {
			description += ", "
		}
		description += node.Kind().String()
	}
	return description
}
