package loop

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/qaflow/orchestrator/internal/llm"
	"github.com/qaflow/orchestrator/internal/qaerrors"
	"github.com/qaflow/orchestrator/internal/tools"
)

// scriptedInvoker replays a fixed sequence of replies, one per call.
type scriptedInvoker struct {
	replies []string
	calls   int
}

func (s *scriptedInvoker) Invoke(ctx context.Context, messages []llm.Message) (string, error) {
	if s.calls >= len(s.replies) {
		s.calls++
		return "done, no further tools needed", nil
	}
	r := s.replies[s.calls]
	s.calls++
	return r, nil
}

func (s *scriptedInvoker) Provider() string { return "fake" }
func (s *scriptedInvoker) Model() string    { return "fake-model" }

// erroringInvoker always fails, simulating a transport-level LLMError.
type erroringInvoker struct{}

func (erroringInvoker) Invoke(ctx context.Context, messages []llm.Message) (string, error) {
	return "", &qaerrors.LLMError{Provider: "fake", Model: "fake-model", Err: context.DeadlineExceeded}
}
func (erroringInvoker) Provider() string { return "fake" }
func (erroringInvoker) Model() string    { return "fake-model" }

// fakeTool succeeds unless fail is set, recording invocation count.
type fakeTool struct {
	name  string
	calls int
	fail  bool
}

func (f *fakeTool) Name() string                 { return f.name }
func (f *fakeTool) Description() string          { return "fake tool" }
func (f *fakeTool) Schema() json.RawMessage      { return json.RawMessage(`{}`) }
func (f *fakeTool) RequiresApproval() bool       { return false }
func (f *fakeTool) Execute(ctx context.Context, input json.RawMessage) (*tools.ToolResult, error) {
	f.calls++
	if f.fail {
		return &tools.ToolResult{Content: "❌ fake failure", IsError: true}, nil
	}
	return &tools.ToolResult{Content: "✅ fake success"}, nil
}

func TestRunCompletesWhenModelStopsCallingTools(t *testing.T) {
	invoker := &scriptedInvoker{replies: []string{
		"USE_TOOL: screenshot\nARGS: {}\n",
	}}
	cat := tools.NewCatalogueFrom([]tools.Tool{&fakeTool{name: "screenshot"}})

	l := New(invoker, cat, 10, "system", "user", "test-1")
	state, steps, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != StateCompleted {
		t.Fatalf("expected StateCompleted, got %s", state)
	}
	if steps != 1 {
		t.Fatalf("expected 1 step executed, got %d", steps)
	}
}

func TestRunExhaustsIterationCeiling(t *testing.T) {
	ft := &fakeTool{name: "screenshot"}
	cat := tools.NewCatalogueFrom([]tools.Tool{ft})

	// The model always calls the tool and never stops, so the ceiling
	// is reached before a completion signal.
	invoker := &alwaysCallInvoker{}

	l := New(invoker, cat, 3, "system", "user", "test-1")
	state, steps, err := l.Run(context.Background())

	if state != StateAborted {
		t.Fatalf("expected StateAborted, got %s", state)
	}
	if _, ok := err.(*qaerrors.StateError); !ok {
		t.Fatalf("expected *qaerrors.StateError, got %T (%v)", err, err)
	}
	if steps != 3 {
		t.Fatalf("expected 3 steps executed, got %d", steps)
	}
	if ft.calls != 3 {
		t.Fatalf("expected tool invoked 3 times, got %d", ft.calls)
	}
}

type alwaysCallInvoker struct{}

func (alwaysCallInvoker) Invoke(ctx context.Context, messages []llm.Message) (string, error) {
	return "USE_TOOL: screenshot\nARGS: {}\n", nil
}
func (alwaysCallInvoker) Provider() string { return "fake" }
func (alwaysCallInvoker) Model() string    { return "fake-model" }

func TestRunAbortsOnLLMError(t *testing.T) {
	cat := tools.NewCatalogueFrom([]tools.Tool{&fakeTool{name: "screenshot"}})
	l := New(erroringInvoker{}, cat, 10, "system", "user", "test-1")

	state, steps, err := l.Run(context.Background())
	if state != StateAborted {
		t.Fatalf("expected StateAborted, got %s", state)
	}
	if _, ok := err.(*qaerrors.LLMError); !ok {
		t.Fatalf("expected *qaerrors.LLMError, got %T", err)
	}
	if steps != 0 {
		t.Fatalf("expected 0 steps executed, got %d", steps)
	}
}

func TestRunMarksCriticalFailureOnClickError(t *testing.T) {
	invoker := &scriptedInvoker{replies: []string{
		"USE_TOOL: click\nARGS: {\"selector\": \"#go\"}\n",
	}}
	cat := tools.NewCatalogueFrom([]tools.Tool{&fakeTool{name: "click", fail: true}})

	l := New(invoker, cat, 10, "system", "user", "test-1")
	state, _, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != StateCompleted {
		t.Fatalf("expected StateCompleted, got %s", state)
	}
	if !l.CriticalFailure() {
		t.Fatal("expected critical failure to be recorded for a failed click")
	}
}

func TestStepsExecutedCountsOnlySuccessfulToolCalls(t *testing.T) {
	invoker := &scriptedInvoker{replies: []string{
		"USE_TOOL: click\nARGS: {\"selector\": \"#go\"}\n",
		"USE_TOOL: navigate\nARGS: {\"url\": \"https://example.com\"}\n",
	}}
	cat := tools.NewCatalogueFrom([]tools.Tool{
		&fakeTool{name: "click", fail: true},
		&fakeTool{name: "navigate"},
	})

	l := New(invoker, cat, 10, "system", "user", "test-1")
	_, steps, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if steps != 1 {
		t.Fatalf("expected 1 step executed (failed click must not count), got %d", steps)
	}
}

func TestRunUnknownToolDoesNotCountAsStep(t *testing.T) {
	invoker := &scriptedInvoker{replies: []string{
		"USE_TOOL: does-not-exist\nARGS: {}\n",
	}}
	cat := tools.NewCatalogueFrom(nil)

	l := New(invoker, cat, 10, "system", "user", "test-1")
	_, steps, err := l.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if steps != 0 {
		t.Fatalf("expected 0 steps for an unknown tool, got %d", steps)
	}
}
