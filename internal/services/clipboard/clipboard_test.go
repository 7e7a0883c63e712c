package clipboard

import (
	"errors"
	"testing"
)

func TestCopyDelegatesToWriter(t *testing.T) {
	var copied string
	service := &Service{writeAll: func(text string) error {
		copied = text
		return nil
	}}
	if err := service.Copy("- [a](a)\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if copied != "- [a](a)\n" {
		t.Fatalf("unexpected clipboard content %q", copied)
	}
}

func TestCopyReportsUnsupportedClipboard(t *testing.T) {
	service := &Service{unsupported: true}
	if err := service.Copy("text"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestCopyWrapsWriterErrors(t *testing.T) {
	failure := errors.New("xclip missing")
	service := &Service{writeAll: func(string) error { return failure }}
	if err := service.Copy("text"); !errors.Is(err, failure) {
		t.Fatalf("expected wrapped failure, got %v", err)
	}
}
