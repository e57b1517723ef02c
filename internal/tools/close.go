package tools

import (
	"context"
	"encoding/json"

	"github.com/qaflow/orchestrator/internal/browser"
)

type closeTool struct {
	session *browser.Session
}

func (t *closeTool) Name() string { return "close" }

func (t *closeTool) Description() string {
	return "Tear down the browser session. Idempotent."
}

func (t *closeTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *closeTool) RequiresApproval() bool { return false }

func (t *closeTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	_ = t.session.Close()
	return ok("browser closed"), nil
}
