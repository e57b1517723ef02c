package tools

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/qaflow/orchestrator/internal/browser"
)

type screenshotTool struct {
	session *browser.Session
	dir     string
}

type screenshotInput struct {
	Filename string `json:"filename"`
}

func (t *screenshotTool) Name() string { return "screenshot" }

func (t *screenshotTool) Description() string {
	return "Capture the current page and save it as a PNG file. If no filename is given, one is generated."
}

func (t *screenshotTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"filename": {"type": "string", "description": "Filename to save the screenshot as, e.g. login-page.png"}
		}
	}`)
}

func (t *screenshotTool) RequiresApproval() bool { return false }

func (t *screenshotTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	var in screenshotInput
	if err := parseInput(input, &in); err != nil {
		return fail("taking screenshot: %v", err), nil
	}

	filename := in.Filename
	if filename == "" {
		filename = "screenshot-" + uuid.New().String() + ".png"
	}

	path := filename
	if t.dir != "" {
		path = filepath.Join(t.dir, filename)
	}

	if err := t.session.Screenshot(path); err != nil {
		return fail("taking screenshot: %v", err), nil
	}

	return ok("captured screenshot: %s", filename), nil
}
