// Package loop implements the Agent Loop: the state machine that drives
// one conversation between an LLM Invoker and the Tool Catalogue until
// the model signals completion or the iteration ceiling is reached.
package loop

import (
	"context"
	"strings"

	"github.com/qaflow/orchestrator/internal/llm"
	"github.com/qaflow/orchestrator/internal/logging"
	"github.com/qaflow/orchestrator/internal/parser"
	"github.com/qaflow/orchestrator/internal/qaerrors"
	"github.com/qaflow/orchestrator/internal/tools"
)

// State is one of the Agent Loop's six states.
type State string

const (
	StateReady          State = "ready"
	StateInvokingModel   State = "invoking-model"
	StateParsing         State = "parsing"
	StateExecutingTools  State = "executing-tools"
	StateCompleted       State = "completed"
	StateAborted         State = "aborted"
)

const defaultIterationCeiling = 10

// Loop owns one run's conversation with the model and dispatches its
// tool invocations against catalogue.
type Loop struct {
	invoker   llm.Invoker
	catalogue *tools.Catalogue
	ceiling   int
	testID    string

	messages        []llm.Message
	state           State
	iterations      int
	stepsExecuted   int
	criticalFailure bool
}

// criticalTools are the tools whose ❌ outcome marks the run failed
// rather than merely imperfect, per the Run Coordinator's status rule.
var criticalTools = map[string]bool{
	"navigate": true,
	"click":    true,
	"type":     true,
}

// CriticalFailure reports whether any navigate/click/type invocation
// produced a ❌ outcome during the run.
func (l *Loop) CriticalFailure() bool {
	return l.criticalFailure
}

// New constructs a Loop for testID. ceiling <= 0 uses the default of 10.
func New(invoker llm.Invoker, catalogue *tools.Catalogue, ceiling int, system, user, testID string) *Loop {
	if ceiling <= 0 {
		ceiling = defaultIterationCeiling
	}
	return &Loop{
		invoker:   invoker,
		catalogue: catalogue,
		ceiling:   ceiling,
		testID:    testID,
		state:     StateReady,
		messages: []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: user},
		},
	}
}

// Run drives the state machine to completion. It returns the final
// state, the count of tool invocations executed, and a non-nil error
// only for the fatal cases (LLMError aborting on a model-transport
// failure, StateError when the ceiling is reached without a completion
// signal).
func (l *Loop) Run(ctx context.Context) (State, int, error) {
	l.state = StateInvokingModel

	for {
		switch l.state {
		case StateInvokingModel:
			l.iterations++
			if l.iterations > l.ceiling {
				l.state = StateAborted
				return l.state, l.stepsExecuted, &qaerrors.StateError{Reason: "iteration ceiling reached without completion"}
			}

			logging.Step(l.testID, l.iterations, "invoking model")
			reply, err := l.invoker.Invoke(ctx, l.messages)
			if err != nil {
				l.state = StateAborted
				return l.state, l.stepsExecuted, err
			}
			l.messages = append(l.messages, llm.Message{Role: llm.RoleAssistant, Content: reply})
			l.state = StateParsing

		case StateParsing:
			invocations := parser.Parse(l.lastAssistantMessage())
			if len(invocations) == 0 {
				l.state = StateCompleted
				return l.state, l.stepsExecuted, nil
			}
			l.state = StateExecutingTools
			l.executeTools(ctx, invocations)
			l.state = StateInvokingModel
		}
	}
}

func (l *Loop) lastAssistantMessage() string {
	if len(l.messages) == 0 {
		return ""
	}
	return l.messages[len(l.messages)-1].Content
}

func (l *Loop) executeTools(ctx context.Context, invocations []parser.Invocation) {
	outcomes := make([]string, 0, len(invocations))

	for _, inv := range invocations {
		tool, ok := l.catalogue.Get(inv.Name)
		if !ok {
			outcomes = append(outcomes, "❌ unknown tool: "+inv.Name)
			continue
		}

		result, err := tool.Execute(ctx, inv.Args)
		if err != nil {
			outcomes = append(outcomes, "❌ tool execution error: "+err.Error())
			if criticalTools[inv.Name] {
				l.criticalFailure = true
			}
			continue
		}
		if result.IsError {
			if criticalTools[inv.Name] {
				l.criticalFailure = true
			}
			outcomes = append(outcomes, result.Content)
			continue
		}
		l.stepsExecuted++
		outcomes = append(outcomes, result.Content)
	}

	l.messages = append(l.messages, llm.Message{
		Role:    llm.RoleUser,
		Content: strings.Join(outcomes, "\n\n"),
	})
}

// Transcript returns the full ordered message list, rendered as
// role-prefixed text, for the Outcome Record's agent_output field and
// the Transcript Scanner's input.
func (l *Loop) Transcript() string {
	var b strings.Builder
	for i, m := range l.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(string(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	return b.String()
}
