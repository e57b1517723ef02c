package tools

import (
	"context"
	"encoding/json"

	"github.com/qaflow/orchestrator/internal/browser"
)

type getMetadataTool struct {
	session *browser.Session
}

type getMetadataInput struct {
	Selector string `json:"selector"`
}

func (t *getMetadataTool) Name() string { return "get-metadata" }

func (t *getMetadataTool) Description() string {
	return "Return the active page's URL and title, and, if a selector is given, the matched elements and their attributes. The Transcript Scanner reads this block to build the navigation graph."
}

func (t *getMetadataTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"selector": {"type": "string", "description": "Optional CSS selector to also report matched elements for"}
		}
	}`)
}

func (t *getMetadataTool) RequiresApproval() bool { return false }

func (t *getMetadataTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	var in getMetadataInput
	if err := parseInput(input, &in); err != nil {
		return fail("getting metadata: %v", err), nil
	}

	meta, err := t.session.GetMetadata(in.Selector)
	if err != nil {
		return fail("getting metadata: %v", err), nil
	}

	return ok("retrieved page metadata\n%s", formatMetadata(meta)), nil
}
