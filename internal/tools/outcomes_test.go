package tools

import (
	"strings"
	"testing"

	"github.com/qaflow/orchestrator/internal/browser"
	"github.com/qaflow/orchestrator/internal/graph"
)

func TestOkPrefixesCheckmark(t *testing.T) {
	r := ok("did %s", "the thing")
	if r.IsError {
		t.Fatal("expected ok result to not be an error")
	}
	if !strings.HasPrefix(r.Content, "✅ ") {
		t.Fatalf("expected checkmark prefix, got %q", r.Content)
	}
}

func TestFailPrefixesCross(t *testing.T) {
	r := fail("broke on %s", "selector")
	if !r.IsError {
		t.Fatal("expected fail result to be an error")
	}
	if !strings.HasPrefix(r.Content, "❌ ") {
		t.Fatalf("expected cross prefix, got %q", r.Content)
	}
}

func TestFormatMetadataNoElements(t *testing.T) {
	meta := &browser.PageMetadata{URL: "https://example.com", Title: "Example"}
	out := formatMetadata(meta)
	if !strings.Contains(out, "📄 Page Metadata:") {
		t.Fatalf("expected page metadata header, got %q", out)
	}
	if strings.Contains(out, "🎯 Element Metadata") {
		t.Fatalf("expected no element block when there are no elements, got %q", out)
	}
}

func TestFormatMetadataWithElementsUsesNoneForEmptyFields(t *testing.T) {
	meta := &browser.PageMetadata{
		URL:   "https://example.com",
		Title: "Example",
		Elements: []graph.Element{
			{Selector: "#go", Tag: "button", Kind: graph.ElementKindButton, Text: "Go"},
		},
	}
	out := formatMetadata(meta)
	if !strings.Contains(out, "🎯 Element Metadata (Found 1 element(s)):") {
		t.Fatalf("expected element block header, got %q", out)
	}
	if !strings.Contains(out, "Element 1:") {
		t.Fatalf("expected numbered element entry, got %q", out)
	}
	if !strings.Contains(out, "• Href: None") {
		t.Fatalf("expected empty Href to render as None, got %q", out)
	}
}
