package graph

import "testing"

func TestElementKindForTagKnown(t *testing.T) {
	cases := map[string]ElementKind{
		"a":        ElementKindLink,
		"button":   ElementKindButton,
		"input":    ElementKindInput,
		"form":     ElementKindForm,
		"select":   ElementKindSelect,
		"textarea": ElementKindTextarea,
	}
	for tag, want := range cases {
		if got := ElementKindForTag(tag); got != want {
			t.Errorf("ElementKindForTag(%q) = %q, want %q", tag, got, want)
		}
	}
}

func TestElementKindForTagFallsBackToRawTag(t *testing.T) {
	if got := ElementKindForTag("custom-widget"); got != ElementKind("custom-widget") {
		t.Fatalf("expected fallback to raw tag, got %q", got)
	}
}

func TestTruncateElementText(t *testing.T) {
	short := "hello"
	if got := TruncateElementText(short); got != short {
		t.Fatalf("short text should be unchanged, got %q", got)
	}

	long := make([]byte, 250)
	for i := range long {
		long[i] = 'x'
	}
	got := TruncateElementText(string(long))
	if len(got) != 200 {
		t.Fatalf("expected truncation to 200 chars, got %d", len(got))
	}
}

func TestNodeAddElementAppendsNew(t *testing.T) {
	n := &Node{}
	n.AddElement(Element{Selector: "#a", Tag: "button"})
	n.AddElement(Element{Selector: "#b", Tag: "a"})
	if len(n.Elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(n.Elements))
	}
	if n.Elements[0].ID == "" || n.Elements[1].ID == "" {
		t.Fatalf("expected non-empty element IDs")
	}
	if n.Elements[0].ID == n.Elements[1].ID {
		t.Fatalf("expected distinct element IDs")
	}
}

func TestNodeAddElementMergesOnSameSelector(t *testing.T) {
	n := &Node{}
	n.AddElement(Element{Selector: "#a", Text: "old"})
	firstID := n.Elements[0].ID

	n.AddElement(Element{Selector: "#a", Text: "new"})
	if len(n.Elements) != 1 {
		t.Fatalf("expected merge, not append: got %d elements", len(n.Elements))
	}
	if n.Elements[0].Text != "new" {
		t.Fatalf("expected merged text to be updated, got %q", n.Elements[0].Text)
	}
	if n.Elements[0].ID != firstID {
		t.Fatalf("expected element ID preserved across merge")
	}
}
