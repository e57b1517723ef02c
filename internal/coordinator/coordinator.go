// Package coordinator implements the Run Coordinator: the eight-step
// procedure that turns a Test Instruction into an Outcome Record.
package coordinator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/qaflow/orchestrator/internal/browser"
	"github.com/qaflow/orchestrator/internal/graph"
	"github.com/qaflow/orchestrator/internal/llm"
	"github.com/qaflow/orchestrator/internal/loop"
	"github.com/qaflow/orchestrator/internal/model"
	"github.com/qaflow/orchestrator/internal/prompt"
	"github.com/qaflow/orchestrator/internal/qaerrors"
	"github.com/qaflow/orchestrator/internal/scanner"
	"github.com/qaflow/orchestrator/internal/tools"
)

// Coordinator runs one Test Instruction through the full pipeline:
// Prompt Assembler → Agent Loop → Transcript Scanner → Outcome Record.
type Coordinator struct {
	invoker       llm.Invoker
	assembler     *prompt.Assembler
	screenshotDir string
}

// New constructs a Coordinator. screenshotDir is the directory the
// screenshot tool writes every capture into, whether the model names the
// file or a name is generated.
func New(invoker llm.Invoker, assembler *prompt.Assembler, screenshotDir string) *Coordinator {
	return &Coordinator{invoker: invoker, assembler: assembler, screenshotDir: screenshotDir}
}

// Run executes instr and returns its Outcome Record. The Browser Session
// is closed exactly once before Run returns, on every exit path.
func (c *Coordinator) Run(ctx context.Context, instr model.TestInstruction) (*model.OutcomeRecord, error) {
	if instr.TestID == "" {
		instr.TestID = uuid.New().String()
	}

	system, user, err := c.buildPrompt(ctx, instr)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	session := browser.New()
	defer session.Close()

	catalogue := tools.NewCatalogue(session, instr.Browser, c.screenshotDir)

	l := loop.New(c.invoker, catalogue, instr.Browser.MaxIterations, system, user, instr.TestID)
	finalState, stepsExecuted, runErr := l.Run(ctx)

	_ = session.Close()

	transcript := l.Transcript()
	scanned := scanner.Scan(transcript)

	record := &model.OutcomeRecord{
		TestID:        instr.TestID,
		ExecutionTime: time.Since(start),
		StepsExecuted: stepsExecuted,
		AgentOutput:   transcript,
		Pages:         orEmptyNodes(scanned.Pages),
		Edges:         orEmptyEdges(scanned.Edges),
		Screenshots:   scanned.Screenshots,
		ExecutedAt:    start,
	}

	record.Status = resolveStatus(finalState, runErr, l.CriticalFailure())
	if runErr != nil {
		record.ErrorMessage = runErr.Error()
	}

	return record, nil
}

// buildPrompt produces the Agent Loop's initial (system, user) messages.
// When instr carries no pre-assembled prompt, it first asks the LLM
// Invoker to convert the test description into numbered steps, then
// assembles the agent system prompt around them.
func (c *Coordinator) buildPrompt(ctx context.Context, instr model.TestInstruction) (system, user string, err error) {
	if instr.GeneratedPrompt != "" {
		return "", instr.GeneratedPrompt, nil
	}
	if instr.Description == "" {
		return "", "", &qaerrors.InvalidInput{Field: "description", Reason: "required when generated_prompt is empty"}
	}

	conversionSystem, conversionUser, err := c.assembler.Format(prompt.TemplateTestCaseConversion, map[string]string{
		"description":   instr.Description,
		"module":        instr.Module,
		"functionality": instr.Functionality,
	})
	if err != nil {
		return "", "", err
	}

	steps, err := c.invoker.Invoke(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: conversionSystem},
		{Role: llm.RoleUser, Content: conversionUser},
	})
	if err != nil {
		return "", "", err
	}

	return c.assembler.Format(prompt.TemplateAgentSystemPrompt, map[string]string{
		"instructions": steps,
	})
}

func resolveStatus(state loop.State, runErr error, criticalFailure bool) model.Status {
	switch runErr.(type) {
	case *qaerrors.StateError:
		return model.StatusFailed
	case *qaerrors.LLMError:
		return model.StatusError
	}

	if state != loop.StateCompleted {
		return model.StatusError
	}
	if criticalFailure {
		return model.StatusFailed
	}
	return model.StatusSuccess
}

func orEmptyNodes(n []graph.Node) []graph.Node {
	if n == nil {
		return []graph.Node{}
	}
	return n
}

func orEmptyEdges(e []graph.Edge) []graph.Edge {
	if e == nil {
		return []graph.Edge{}
	}
	return e
}
