package tools

import (
	"context"
	"encoding/json"

	"github.com/qaflow/orchestrator/internal/browser"
)

type clickTool struct {
	session *browser.Session
}

type clickInput struct {
	Selector    string `json:"selector"`
	Description string `json:"description"`
}

func (t *clickTool) Name() string { return "click" }

func (t *clickTool) Description() string {
	return "Click an element identified by a CSS selector, an XPath expression prefixed with //, or text=<visible text>. Waits up to 10s for the element."
}

func (t *clickTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"selector": {"type": "string", "description": "CSS selector, //xpath, or text=<visible text>"},
			"description": {"type": "string", "description": "Human description of what is being clicked"}
		},
		"required": ["selector"]
	}`)
}

func (t *clickTool) RequiresApproval() bool { return false }

func (t *clickTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	var in clickInput
	if err := parseInput(input, &in); err != nil {
		return fail("clicking: %v", err), nil
	}
	if in.Selector == "" {
		return fail("clicking: selector is required"), nil
	}

	if err := t.session.Click(in.Selector); err != nil {
		return fail("clicking %s: %v", in.Selector, err), nil
	}

	return ok("clicked %s", in.Selector), nil
}
