package tools

import (
	"context"
	"encoding/json"

	"github.com/qaflow/orchestrator/internal/browser"
)

type getContentTool struct {
	session *browser.Session
}

func (t *getContentTool) Name() string { return "get-content" }

func (t *getContentTool) Description() string {
	return "Return a truncated dump of the current page's DOM outline."
}

func (t *getContentTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *getContentTool) RequiresApproval() bool { return false }

func (t *getContentTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	content, err := t.session.GetContent()
	if err != nil {
		return fail("getting content: %v", err), nil
	}

	return ok("retrieved page content:\n%s", content), nil
}

type execJSTool struct {
	session *browser.Session
}

type execJSInput struct {
	Script string `json:"script"`
}

func (t *execJSTool) Name() string { return "exec-js" }

func (t *execJSTool) Description() string {
	return "Execute a JavaScript expression in the page and return its stringified result."
}

func (t *execJSTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"script": {"type": "string", "description": "JavaScript expression to evaluate in the page"}
		},
		"required": ["script"]
	}`)
}

func (t *execJSTool) RequiresApproval() bool { return false }

func (t *execJSTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	var in execJSInput
	if err := parseInput(input, &in); err != nil {
		return fail("executing script: %v", err), nil
	}
	if in.Script == "" {
		return fail("executing script: script is required"), nil
	}

	result, err := t.session.ExecJS(in.Script)
	if err != nil {
		return fail("executing script: %v", err), nil
	}

	return ok("executed script, result: %s", result), nil
}
