// Package tools implements the ten-operation Tool Catalogue: the typed
// bridge between the Agent Loop's parsed invocations and the Browser
// Session.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qaflow/orchestrator/internal/browser"
	"github.com/qaflow/orchestrator/internal/model"
)

// ToolResult is the outcome of one tool execution. Content always begins
// with a status marker (✅ or ❌); the Transcript Scanner depends on that
// marker for classifying the invocation.
type ToolResult struct {
	Content string
	IsError bool
}

// Tool is one named operation in the catalogue.
type Tool interface {
	Name() string
	Description() string
	Schema() json.RawMessage
	Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error)
	RequiresApproval() bool
}

// Catalogue is the closed set of tools available to one run's Agent
// Loop, keyed by name.
type Catalogue struct {
	tools map[string]Tool
	order []string
}

// NewCatalogue registers the ten operations against session, storing
// screenshots under screenshotDir. cfg is the engine/headless choice the
// navigate tool uses to lazily initialize session on first use.
func NewCatalogue(session *browser.Session, cfg model.BrowserConfig, screenshotDir string) *Catalogue {
	c := &Catalogue{tools: make(map[string]Tool)}
	for _, t := range []Tool{
		&navigateTool{session: session, cfg: cfg},
		&clickTool{session: session},
		&typeTool{session: session},
		&screenshotTool{session: session, dir: screenshotDir},
		&waitForSelectorTool{session: session},
		&waitForTextTool{session: session},
		&getContentTool{session: session},
		&execJSTool{session: session},
		&getMetadataTool{session: session},
		&closeTool{session: session},
	} {
		c.register(t)
	}
	return c
}

// NewCatalogueFrom builds a Catalogue from an arbitrary tool set, for
// callers that need a catalogue of fakes rather than the real ten
// browser-backed operations.
func NewCatalogueFrom(tools []Tool) *Catalogue {
	c := &Catalogue{tools: make(map[string]Tool)}
	for _, t := range tools {
		c.register(t)
	}
	return c
}

func (c *Catalogue) register(t Tool) {
	c.tools[t.Name()] = t
	c.order = append(c.order, t.Name())
}

// Get returns the named tool, or false if the name is not in the
// catalogue.
func (c *Catalogue) Get(name string) (Tool, bool) {
	t, ok := c.tools[name]
	return t, ok
}

// Names returns the registered tool names in registration order.
func (c *Catalogue) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Describe returns the "<name>: <description>" lines used to build the
// agent system prompt's tool listing.
func (c *Catalogue) Describe() []string {
	lines := make([]string, 0, len(c.order))
	for _, name := range c.order {
		t := c.tools[name]
		lines = append(lines, fmt.Sprintf("%s: %s", t.Name(), t.Description()))
	}
	return lines
}

func parseInput(input json.RawMessage, dst any) error {
	if len(input) == 0 {
		return nil
	}
	return json.Unmarshal(input, dst)
}
