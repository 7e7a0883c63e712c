package markdowntree

import (
	"errors"
	"testing"
)

func TestPercentEncodingMatchesECMAScript(t *testing.T) {
	testCases := []struct {
		name              string
		input             string
		expectedComponent string
		expectedURI       string
	}{
		{name: "plain", input: "Notes", expectedComponent: "Notes", expectedURI: "Notes"},
		{name: "separator", input: "a/b.md", expectedComponent: "a%2Fb.md", expectedURI: "a/b.md"},
		{name: "space", input: "Plan 1.md", expectedComponent: "Plan%201.md", expectedURI: "Plan%201.md"},
		{name: "marks", input: "-_.!~*'()", expectedComponent: "-_.!~*'()", expectedURI: "-_.!~*'()"},
		{name: "reserved", input: "a?b&c=d#e", expectedComponent: "a%3Fb%26c%3Dd%23e", expectedURI: "a?b&c=d#e"},
		{name: "unicode", input: "Über 📂", expectedComponent: "%C3%9Cber%20%F0%9F%93%82", expectedURI: "%C3%9Cber%20%F0%9F%93%82"},
		{name: "percent", input: "100%", expectedComponent: "100%25", expectedURI: "100%25"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := URIComponentEncode(testCase.input); actual != testCase.expectedComponent {
				t.Fatalf("URIComponentEncode(%q): expected %q, got %q", testCase.input, testCase.expectedComponent, actual)
			}
			if actual := URIEncode(testCase.input); actual != testCase.expectedURI {
				t.Fatalf("URIEncode(%q): expected %q, got %q", testCase.input, testCase.expectedURI, actual)
			}
		})
	}
}

func TestRelativeLinkStripsOnlyTheActiveDirectory(t *testing.T) {
	testCases := []struct {
		name       string
		activePath string
		targetPath string
		expected   string
	}{
		{name: "sibling file", activePath: "notes/index.md", targetPath: "notes/todo list.md", expected: "todo%20list.md"},
		{name: "descendant", activePath: "notes/index.md", targetPath: "notes/sub/a.md", expected: "sub/a.md"},
		{name: "containing folder", activePath: "notes/index.md", targetPath: "notes", expected: "notes"},
		{name: "sibling directory", activePath: "notes/index.md", targetPath: "other/a.md", expected: "other/a.md"},
		{name: "ancestor", activePath: "notes/deep/index.md", targetPath: "notes/a.md", expected: "notes/a.md"},
		{name: "prefix only", activePath: "notes/index.md", targetPath: "archive/notes/a.md", expected: "archive/notes/a.md"},
		{name: "root active file", activePath: "index.md", targetPath: "notes/a.md", expected: "notes/a.md"},
		{name: "root active file root folder", activePath: "index.md", targetPath: "/", expected: ""},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if actual := RelativeLink(testCase.activePath, testCase.targetPath); actual != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, actual)
			}
		})
	}
}

func TestContainingFolderPath(t *testing.T) {
	testCases := map[string]string{
		"index.md":          "/",
		"notes/index.md":    "notes",
		"notes/deep/doc.md": "notes/deep",
	}
	for filePath, expected := range testCases {
		if actual := ContainingFolderPath(filePath); actual != expected {
			t.Errorf("%s: expected %q, got %q", filePath, expected, actual)
		}
	}
}

func TestFileAndFolderURIs(t *testing.T) {
	if actual := FolderURI("Work Vault", "a/b"); actual != "obsidian://open?vault=Work%20Vault&folder=a%2Fb" {
		t.Fatalf("unexpected folder uri %s", actual)
	}
	if actual := FileURI("Work", "a/b c.md"); actual != "obsidian://open?vault=Work&file=a%2Fb%20c.md" {
		t.Fatalf("unexpected file uri %s", actual)
	}
}

func TestValidateSummarisesRenderedTree(t *testing.T) {
	markdown := "" +
		"- [📂 notes](notes)\n" +
		"  - [a.md](a.md)\n" +
		"  - [📂 sub](sub)\n" +
		"    - [b.md](sub/b.md)\n"
	summary, validationError := Validate(markdown)
	if validationError != nil {
		t.Fatalf("unexpected validation error: %v", validationError)
	}
	if summary.Items != 4 {
		t.Fatalf("expected 4 items, got %d", summary.Items)
	}
	if summary.MaxDepth != 2 {
		t.Fatalf("expected depth 2, got %d", summary.MaxDepth)
	}
	expectedDestinations := []string{"notes", "a.md", "sub", "sub/b.md"}
	for index, destination := range expectedDestinations {
		if summary.Destinations[index] != destination {
			t.Fatalf("destination %d: expected %s, got %s", index, destination, summary.Destinations[index])
		}
	}
}

func TestValidateRejectsMalformedTrees(t *testing.T) {
	testCases := map[string]string{
		"paragraph":    "just text\n",
		"ordered list": "1. [a](a)\n",
		"plain item":   "- a.md\n",
		"broken link":  "- [a]b](a)\n",
		"two lists":    "- [a](a)\n\nparagraph\n\n- [b](b)\n",
	}
	for name, markdown := range testCases {
		t.Run(name, func(t *testing.T) {
			_, validationError := Validate(markdown)
			if !errors.Is(validationError, ErrInvalidTree) {
				t.Fatalf("expected ErrInvalidTree, got %v", validationError)
			}
		})
	}
}

func TestValidateAcceptsEmptyInput(t *testing.T) {
	summary, validationError := Validate("")
	if validationError != nil || summary.Items != 0 {
		t.Fatalf("expected empty summary, got %+v, %v", summary, validationError)
	}
}
