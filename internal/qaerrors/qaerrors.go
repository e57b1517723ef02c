// Package qaerrors defines the typed error taxonomy surfaced by the
// orchestration core: InvalidInput, ConfigurationError, ValidationError,
// LLMError, BrowserError, StateError, and DatabaseError. Each carries the
// structured context a caller needs (offending field or tool name) rather
// than a bare string, following the ai.ProviderError{Code, Message, Type}
// shape the teacher uses for its own provider errors.
package qaerrors

import "fmt"

// InvalidInput means the caller supplied a malformed Test Instruction or
// a prompt that failed validation before any browser was launched.
type InvalidInput struct {
	Field  string
	Reason string
}

func (e *InvalidInput) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// ConfigurationError means a required setting (provider credentials,
// engine variant) was missing or unrecognized at run construction.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// ValidationError wraps a Prompt Validator report that blocked assembly.
type ValidationError struct {
	Findings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("prompt validation failed: %d finding(s): %v", len(e.Findings), e.Findings)
}

// LLMError means the LLM Invoker's transport to the provider failed.
// It is always fatal to the current run.
type LLMError struct {
	Provider string
	Model    string
	Err      error
}

func (e *LLMError) Error() string {
	return fmt.Sprintf("llm error: provider=%s model=%s: %v", e.Provider, e.Model, e.Err)
}

func (e *LLMError) Unwrap() error {
	return e.Err
}

// BrowserError means a tool execution failed. It is non-fatal to the
// Agent Loop: every tool failure, including SessionNotReady, is reported
// as a ❌ outcome and the loop continues; repeated failures do not abort
// the run.
type BrowserError struct {
	Tool string
	Err  error
}

func (e *BrowserError) Error() string {
	return fmt.Sprintf("browser error: tool=%s: %v", e.Tool, e.Err)
}

func (e *BrowserError) Unwrap() error {
	return e.Err
}

// StateError means the loop reached its iteration ceiling without a
// completion signal. Use of the Browser Session out of order is reported
// as SessionNotReady, not StateError.
type StateError struct {
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state error: %s", e.Reason)
}

// DatabaseError wraps a persistence failure from a collaborator that
// stores Outcome Records. The core never produces this itself — it is
// declared so collaborators outside the core (§6) have a typed error to
// wrap their own failures in, matching the seven-member taxonomy.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error: %s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// SessionNotReady is the error returned by the Browser Session when a
// tool tries to use the active page before initialize() has run or after
// close(). The Agent Loop reports it as a ❌ outcome and continues.
type SessionNotReady struct{}

func (e *SessionNotReady) Error() string {
	return "browser session not ready: navigate has not been called"
}
