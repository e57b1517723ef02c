package prompt

import (
	"strings"
	"testing"

	"github.com/qaflow/orchestrator/internal/qaerrors"
)

func TestFormatSubstitutesVariables(t *testing.T) {
	a := NewAssembler(Config{})
	system, user, err := a.Format(TemplateTestCaseConversion, map[string]string{
		"description":   "Log in and verify the dashboard",
		"module":        "auth",
		"functionality": "login",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if system == "" {
		t.Fatal("expected non-empty system prompt")
	}
	if !strings.Contains(user, "Log in and verify the dashboard") {
		t.Fatalf("expected rendered description in user prompt, got %q", user)
	}
}

func TestFormatMissingVariableIsConfigurationError(t *testing.T) {
	a := NewAssembler(Config{})
	_, _, err := a.Format(TemplateTestCaseConversion, map[string]string{
		"description": "only this one is set",
	})
	if err == nil {
		t.Fatal("expected error for missing variables")
	}
	if _, ok := err.(*qaerrors.ConfigurationError); !ok {
		t.Fatalf("expected *qaerrors.ConfigurationError, got %T", err)
	}
}

func TestFormatUnknownTemplate(t *testing.T) {
	a := NewAssembler(Config{})
	_, _, err := a.Format("no-such-template", nil)
	if err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestFormatBlockedByValidatorIsInvalidInput(t *testing.T) {
	a := NewAssembler(Config{CheckInjection: true})
	a.Register("injected", Template{
		System: "sys",
		User:   "click <script>alert(1)</script> at {target}",
	})
	_, _, err := a.Format("injected", map[string]string{"target": "#go"})
	if err == nil {
		t.Fatal("expected validation to block")
	}
	if _, ok := err.(*qaerrors.InvalidInput); !ok {
		t.Fatalf("expected *qaerrors.InvalidInput, got %T", err)
	}
}

func TestAgentSystemPromptFormatsInstructions(t *testing.T) {
	a := NewAssembler(Config{})
	_, user, err := a.Format(TemplateAgentSystemPrompt, map[string]string{
		"instructions": "1. Navigate to /login\n2. Click submit",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(user, "1. Navigate to /login") {
		t.Fatalf("expected instructions embedded, got %q", user)
	}
}
