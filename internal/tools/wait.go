package tools

import (
	"context"
	"encoding/json"

	"github.com/qaflow/orchestrator/internal/browser"
)

const defaultWaitTimeoutMs = 10000

type waitForSelectorTool struct {
	session *browser.Session
}

type waitForSelectorInput struct {
	Selector  string `json:"selector"`
	TimeoutMs int    `json:"timeout_ms"`
}

func (t *waitForSelectorTool) Name() string { return "wait-for-selector" }

func (t *waitForSelectorTool) Description() string {
	return "Wait until a selector resolves to an element on the page. Default timeout 10000ms."
}

func (t *waitForSelectorTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"selector": {"type": "string"},
			"timeout_ms": {"type": "integer", "default": 10000}
		},
		"required": ["selector"]
	}`)
}

func (t *waitForSelectorTool) RequiresApproval() bool { return false }

func (t *waitForSelectorTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	var in waitForSelectorInput
	if err := parseInput(input, &in); err != nil {
		return fail("waiting for selector: %v", err), nil
	}
	if in.Selector == "" {
		return fail("waiting for selector: selector is required"), nil
	}

	if err := t.session.WaitForSelector(in.Selector, in.TimeoutMs); err != nil {
		return fail("waiting for selector %s: %v", in.Selector, err), nil
	}

	return ok("selector appeared: %s", in.Selector), nil
}

type waitForTextTool struct {
	session *browser.Session
}

type waitForTextInput struct {
	Text      string `json:"text"`
	TimeoutMs int    `json:"timeout_ms"`
}

func (t *waitForTextTool) Name() string { return "wait-for-text" }

func (t *waitForTextTool) Description() string {
	return "Wait until the given text appears anywhere on the page. Default timeout 10000ms."
}

func (t *waitForTextTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"text": {"type": "string"},
			"timeout_ms": {"type": "integer", "default": 10000}
		},
		"required": ["text"]
	}`)
}

func (t *waitForTextTool) RequiresApproval() bool { return false }

func (t *waitForTextTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	var in waitForTextInput
	if err := parseInput(input, &in); err != nil {
		return fail("waiting for text: %v", err), nil
	}
	if in.Text == "" {
		return fail("waiting for text: text is required"), nil
	}

	if err := t.session.WaitForText(in.Text, in.TimeoutMs); err != nil {
		return fail("waiting for text %q: %v", in.Text, err), nil
	}

	return ok("text appeared: %s", in.Text), nil
}
