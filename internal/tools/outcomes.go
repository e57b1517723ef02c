package tools

import (
	"fmt"
	"strings"

	"github.com/qaflow/orchestrator/internal/browser"
)

func ok(format string, args ...any) *ToolResult {
	return &ToolResult{Content: "✅ " + fmt.Sprintf(format, args...)}
}

func fail(format string, args ...any) *ToolResult {
	return &ToolResult{Content: "❌ " + fmt.Sprintf(format, args...), IsError: true}
}

// formatMetadata renders the fixed-label metadata block the Transcript
// Scanner parses: a page block, and — when elements were matched — an
// element block.
func formatMetadata(meta *browser.PageMetadata) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📄 Page Metadata:\n")
	fmt.Fprintf(&b, "  • URL: %s\n", meta.URL)
	fmt.Fprintf(&b, "  • Title: %s", meta.Title)

	if len(meta.Elements) == 0 {
		return b.String()
	}

	fmt.Fprintf(&b, "\n\n🎯 Element Metadata (Found %d element(s)):", len(meta.Elements))
	for i, el := range meta.Elements {
		fmt.Fprintf(&b, "\n  Element %d:\n", i+1)
		fmt.Fprintf(&b, "  • Selector: %s\n", el.Selector)
		fmt.Fprintf(&b, "  • Tag: <%s>\n", el.Tag)
		fmt.Fprintf(&b, "  • Type: %s\n", el.Kind)
		fmt.Fprintf(&b, "  • Text: %s\n", orNone(el.Text))
		fmt.Fprintf(&b, "  • Href: %s\n", orNone(el.Href))
		fmt.Fprintf(&b, "  • ID: %s\n", orNone(el.DOMID))
		fmt.Fprintf(&b, "  • Name: %s\n", orNone(el.Name))
		fmt.Fprintf(&b, "  • Class: %s", orNone(el.Class))
	}

	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
