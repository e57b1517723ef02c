package prompt

import (
	"regexp"
	"strings"

	"github.com/qaflow/orchestrator/internal/qaerrors"
)

// Template is a named (system prompt, user prompt template) pair. The
// user template's {placeholder} slots are substituted strictly by
// Assembler.Format.
type Template struct {
	System string
	User   string
}

// Assembler holds the named template registry and validates every
// assembled user prompt before returning it.
type Assembler struct {
	templates map[string]Template
	valCfg    Config
}

// NewAssembler returns an Assembler seeded with the two required
// templates and validating assembled prompts against valCfg.
func NewAssembler(valCfg Config) *Assembler {
	a := &Assembler{
		templates: make(map[string]Template),
		valCfg:    valCfg,
	}
	a.Register(TemplateTestCaseConversion, testCaseConversionTemplate)
	a.Register(TemplateAgentSystemPrompt, agentSystemPromptTemplate)
	return a
}

// Register adds or replaces a named template.
func (a *Assembler) Register(name string, t Template) {
	a.templates[name] = t
}

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// Format substitutes vars into the named template's user prompt and
// validates the result. A missing variable is a ConfigurationError; a
// critical validation verdict is an InvalidInput. A clean or
// warning-only verdict returns the (system, user) pair.
func (a *Assembler) Format(name string, vars map[string]string) (system, user string, err error) {
	t, ok := a.templates[name]
	if !ok {
		return "", "", &qaerrors.ConfigurationError{Field: "template", Reason: "unknown template: " + name}
	}

	rendered, err := substitute(t.User, vars)
	if err != nil {
		return "", "", err
	}

	report := Validate(rendered, a.valCfg)
	if report.Blocked {
		var messages []string
		for _, f := range report.Findings {
			messages = append(messages, f.Message)
		}
		return "", "", &qaerrors.InvalidInput{Field: "prompt", Reason: strings.Join(messages, "; ")}
	}

	return t.System, rendered, nil
}

func substitute(tmpl string, vars map[string]string) (string, error) {
	var missing string
	result := placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		key := match[1 : len(match)-1]
		val, ok := vars[key]
		if !ok {
			missing = key
			return match
		}
		return val
	})
	if missing != "" {
		return "", &qaerrors.ConfigurationError{Field: "template variable", Reason: "missing value for " + missing}
	}
	return result, nil
}

// Template names.
const (
	TemplateTestCaseConversion = "test-case-conversion"
	TemplateAgentSystemPrompt  = "agent-system-prompt"
)

var testCaseConversionTemplate = Template{
	System: "You convert a short QA test description into a numbered sequence of imperative automation steps. Respond with the steps only, one per line, no commentary.",
	User:   "Test description:\n{description}\n\nModule: {module}\nFunctionality: {functionality}\n\nConvert this into numbered imperative steps a browser automation agent can execute.",
}

var agentSystemPromptTemplate = Template{
	System: agentSystemPromptText,
	User:   "Execute the following test:\n\n{instructions}",
}

const agentSystemPromptText = `You are a QA automation agent. You drive a real browser to execute the test below by invoking tools.

Available tools:
navigate: Navigate the active page to a URL. Waits up to 30s for the page to load.
click: Click an element identified by a CSS selector, an XPath expression prefixed with //, or text=<visible text>. Waits up to 10s for the element.
type: Clear an input element and type text into it. Waits for the element, identified by a CSS selector, an XPath expression prefixed with //, or text=<visible text>.
screenshot: Capture the current page and save it as a PNG file. If no filename is given, one is generated.
wait-for-selector: Wait until a selector resolves to an element on the page. Default timeout 10000ms.
wait-for-text: Wait until the given text appears anywhere on the page. Default timeout 10000ms.
get-content: Return a truncated dump of the current page's DOM outline.
exec-js: Execute a JavaScript expression in the page and return its stringified result.
get-metadata: Return the active page's URL and title, and, if a selector is given, the matched elements and their attributes.
close: Tear down the browser session. Idempotent.

Invoke a tool by writing, on its own lines:
USE_TOOL: <tool-name>
ARGS: <json-object>

You may invoke multiple tools in one reply, each as its own USE_TOOL:/ARGS: pair. When the test is complete, reply with no USE_TOOL: marker — that is the signal you are done.

When you call get-metadata, read the returned Page Metadata and Element Metadata blocks to decide your next action; do not guess at selectors you have not observed.`
