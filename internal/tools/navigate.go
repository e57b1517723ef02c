package tools

import (
	"context"
	"encoding/json"

	"github.com/qaflow/orchestrator/internal/browser"
	"github.com/qaflow/orchestrator/internal/model"
)

type navigateTool struct {
	session *browser.Session
	cfg     model.BrowserConfig
}

type navigateInput struct {
	URL string `json:"url"`
}

func (t *navigateTool) Name() string { return "navigate" }

func (t *navigateTool) Description() string {
	return "Navigate the active page to a URL. Waits up to 30s for the page to load."
}

func (t *navigateTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"url": {"type": "string", "description": "Absolute URL to navigate to"}
		},
		"required": ["url"]
	}`)
}

func (t *navigateTool) RequiresApproval() bool { return false }

func (t *navigateTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	var in navigateInput
	if err := parseInput(input, &in); err != nil {
		return fail("navigating: %v", err), nil
	}
	if in.URL == "" {
		return fail("navigating: url is required"), nil
	}

	if err := t.session.Initialize(t.cfg); err != nil {
		return fail("navigating to %s: %v", in.URL, err), nil
	}

	if _, err := t.session.Navigate(in.URL); err != nil {
		return fail("navigating to %s: %v", in.URL, err), nil
	}

	meta, err := t.session.GetMetadata("")
	if err != nil {
		return ok("navigated to %s", in.URL), nil
	}

	return ok("navigated to %s\n%s", in.URL, formatMetadata(meta)), nil
}
