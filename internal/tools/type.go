package tools

import (
	"context"
	"encoding/json"

	"github.com/qaflow/orchestrator/internal/browser"
)

type typeTool struct {
	session *browser.Session
}

type typeInput struct {
	Selector    string `json:"selector"`
	Text        string `json:"text"`
	Description string `json:"description"`
}

func (t *typeTool) Name() string { return "type" }

func (t *typeTool) Description() string {
	return "Clear an input element and type text into it. Waits for the element, identified by a CSS selector, an XPath expression prefixed with //, or text=<visible text>."
}

func (t *typeTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"selector": {"type": "string", "description": "CSS selector, //xpath, or text=<visible text>"},
			"text": {"type": "string", "description": "Text to type"},
			"description": {"type": "string", "description": "Human description of what is being entered"}
		},
		"required": ["selector", "text"]
	}`)
}

func (t *typeTool) RequiresApproval() bool { return false }

func (t *typeTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	var in typeInput
	if err := parseInput(input, &in); err != nil {
		return fail("typing: %v", err), nil
	}
	if in.Selector == "" {
		return fail("typing: selector is required"), nil
	}

	if err := t.session.Type(in.Selector, in.Text); err != nil {
		return fail("typing into %s: %v", in.Selector, err), nil
	}

	return ok("typed into %s", in.Selector), nil
}
