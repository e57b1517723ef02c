// Package model defines the run-level data model: the Test Instruction
// that enters a run and the Outcome Record that leaves it.
package model

import (
	"time"

	"github.com/qaflow/orchestrator/internal/graph"
)

// EngineVariant selects the browser engine a run drives, per spec.md
// §3's four accepted values.
type EngineVariant string

const (
	EngineChromium     EngineVariant = "primary"
	EngineGecko        EngineVariant = "gecko"
	EngineWebKit       EngineVariant = "webkit"
	EngineEdgeChannel  EngineVariant = "chromium-edge-channel"
)

// Valid reports whether v is one of the four accepted engine variants.
func (v EngineVariant) Valid() bool {
	switch v {
	case EngineChromium, EngineGecko, EngineWebKit, EngineEdgeChannel:
		return true
	default:
		return false
	}
}

// BrowserConfig is the Test Instruction's browser configuration: engine
// variant, headless flag, and max-iteration ceiling.
type BrowserConfig struct {
	Engine        EngineVariant `json:"engine" yaml:"engine"`
	Headless      bool          `json:"headless" yaml:"headless"`
	MaxIterations int           `json:"max_iterations" yaml:"max_iterations"`
}

// TestInstruction is the immutable input describing what to automate.
// Module and Functionality are used only as prompt context; Priority is
// carried but not read by the core. None of them drive control flow.
type TestInstruction struct {
	TestID           string
	Description      string
	Module           string
	Functionality    string
	Priority         string
	Browser          BrowserConfig
	GeneratedPrompt  string // pre-assembled prompt; when empty the coordinator assembles one
}

// Status classifies how a run concluded.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusError   Status = "error"
)

// OutcomeRecord is the structured result returned to the caller.
type OutcomeRecord struct {
	TestID          string        `json:"test_id"`
	Status          Status        `json:"status"`
	ExecutionTime   time.Duration `json:"execution_time"`
	StepsExecuted   int           `json:"steps_executed"`
	AgentOutput     string        `json:"agent_output"`
	Pages           []graph.Node  `json:"pages"`
	Edges           []graph.Edge  `json:"edges"`
	Screenshots     []string      `json:"screenshots"`
	ErrorMessage    string        `json:"error_message,omitempty"`
	ExecutedAt      time.Time     `json:"executed_at"`
}
