// Package parser implements the Tool-Call Parser: it reads an assistant
// message and extracts the USE_TOOL:/ARGS: invocations the agent system
// prompt instructs the model to emit.
package parser

import (
	"encoding/json"
	"strings"
)

// Invocation is one parsed tool call.
type Invocation struct {
	Name string
	Args json.RawMessage
}

const (
	useToolMarker = "USE_TOOL:"
	argsMarker    = "ARGS:"
)

// Parse scans message for USE_TOOL:/ARGS: pairs in textual order. A
// message with no USE_TOOL: marker yields an empty slice — the Agent
// Loop's completion signal. Unknown tool names are not rejected here;
// that check belongs to the catalogue lookup at dispatch time.
func Parse(message string) []Invocation {
	var invocations []Invocation

	rest := message
	for {
		idx := strings.Index(rest, useToolMarker)
		if idx < 0 {
			break
		}
		rest = rest[idx+len(useToolMarker):]

		nameEnd := strings.IndexByte(rest, '\n')
		var nameLine string
		if nameEnd < 0 {
			nameLine = rest
			rest = ""
		} else {
			nameLine = rest[:nameEnd]
			rest = rest[nameEnd+1:]
		}
		name := strings.TrimSpace(nameLine)
		if name == "" {
			continue
		}

		argsIdx := strings.Index(rest, argsMarker)
		if argsIdx < 0 {
			continue
		}
		rest = rest[argsIdx+len(argsMarker):]

		obj, remainder, ok := extractBraceBalancedObject(rest)
		if !ok {
			continue
		}
		rest = remainder

		invocations = append(invocations, Invocation{
			Name: name,
			Args: json.RawMessage(obj),
		})
	}

	return invocations
}

// extractBraceBalancedObject finds the first brace-balanced {...} object
// in s, tolerant of leading whitespace and surrounding prose. It returns
// the object text, the remainder of s after the closing brace, and
// whether an object was found.
func extractBraceBalancedObject(s string) (object string, remainder string, ok bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", s, false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], s[i+1:], true
			}
		}
	}

	return "", s, false
}
