package browser

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/qaflow/orchestrator/internal/graph"
)

const (
	navigateTimeout       = 30 * time.Second
	defaultActionTimeout  = 10 * time.Second
	maxContentDumpLen     = 4000
	maxMetadataElements   = 20
)

// Navigate opens url in the active page and waits for load, per the
// tool's 30s contract.
func (s *Session) Navigate(url string) (title string, err error) {
	page, err := s.Page()
	if err != nil {
		return "", err
	}

	_, err = page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(navigateTimeout.Milliseconds())),
	})
	if err != nil {
		return "", err
	}

	t, _ := page.Title()
	return t, nil
}

// Click waits up to 10s for selector and clicks it.
func (s *Session) Click(selector string) error {
	page, err := s.Page()
	if err != nil {
		return err
	}

	locator := page.Locator(selector)
	return locator.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(float64(defaultActionTimeout.Milliseconds())),
	})
}

// Type waits for selector, clears it, and types text.
func (s *Session) Type(selector, text string) error {
	page, err := s.Page()
	if err != nil {
		return err
	}

	locator := page.Locator(selector)
	if err := locator.Clear(playwright.LocatorClearOptions{
		Timeout: playwright.Float(float64(defaultActionTimeout.Milliseconds())),
	}); err != nil {
		return err
	}
	return locator.Type(text, playwright.LocatorTypeOptions{
		Timeout: playwright.Float(float64(defaultActionTimeout.Milliseconds())),
	})
}

// Screenshot captures the current page to filename.
func (s *Session) Screenshot(filename string) error {
	page, err := s.Page()
	if err != nil {
		return err
	}

	_, err = page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(filename),
	})
	return err
}

// WaitForSelector waits until selector resolves, or timeoutMs elapses.
func (s *Session) WaitForSelector(selector string, timeoutMs int) error {
	page, err := s.Page()
	if err != nil {
		return err
	}

	timeout := resolveTimeoutMs(timeoutMs)
	locator := page.Locator(selector)
	return locator.WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(timeout),
	})
}

// WaitForText waits until text appears anywhere on the page.
func (s *Session) WaitForText(text string, timeoutMs int) error {
	page, err := s.Page()
	if err != nil {
		return err
	}

	timeout := resolveTimeoutMs(timeoutMs)
	locator := page.GetByText(text)
	return locator.First().WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(timeout),
	})
}

// GetContent returns a truncated dump of the page's DOM outline.
func (s *Session) GetContent() (string, error) {
	page, err := s.Page()
	if err != nil {
		return "", err
	}

	content, err := page.Content()
	if err != nil {
		return "", err
	}

	if len(content) > maxContentDumpLen {
		return content[:maxContentDumpLen], nil
	}
	return content, nil
}

// ExecJS executes script in the page and returns its stringified result.
func (s *Session) ExecJS(script string) (string, error) {
	page, err := s.Page()
	if err != nil {
		return "", err
	}

	result, err := page.Evaluate(script)
	if err != nil {
		return "", err
	}

	return stringifyResult(result), nil
}

func stringifyResult(result any) string {
	switch v := result.(type) {
	case nil:
		return "null"
	case string:
		return v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

// PageMetadata is the structured result of the get-metadata tool: the
// active page's URL and title, and — when a selector was given — the
// matched elements.
type PageMetadata struct {
	URL      string
	Title    string
	Elements []graph.Element
}

// GetMetadata returns the active page's URL, title, and, when selector
// is non-empty, up to maxMetadataElements matched elements with their
// attributes.
func (s *Session) GetMetadata(selector string) (*PageMetadata, error) {
	page, err := s.Page()
	if err != nil {
		return nil, err
	}

	url := page.URL()
	title, _ := page.Title()
	meta := &PageMetadata{URL: url, Title: title}

	if selector == "" {
		return meta, nil
	}

	raw, err := page.EvalOnSelectorAll(selector, fmt.Sprintf(`els => els.slice(0, %d).map(el => ({
		tag: el.tagName.toLowerCase(),
		text: (el.textContent || '').trim(),
		href: el.getAttribute('href'),
		id: el.id,
		name: el.getAttribute('name'),
		className: el.className,
		inputType: el.getAttribute('type'),
	}))`, maxMetadataElements))
	if err != nil {
		return nil, err
	}

	entries, ok := raw.([]any)
	if !ok || len(entries) == 0 {
		return nil, fmt.Errorf("selector matched no elements: %s", selector)
	}

	for i, entry := range entries {
		row, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		tag := stringField(row, "tag")
		el := graph.Element{
			Kind:      graph.ElementKindForTag(tag),
			Tag:       tag,
			Text:      graph.TruncateElementText(stringField(row, "text")),
			DOMID:     stringField(row, "id"),
			Name:      stringField(row, "name"),
			Class:     stringField(row, "className"),
			Href:      stringField(row, "href"),
			InputType: stringField(row, "inputType"),
			Selector:  elementSelector(selector, i),
		}
		meta.Elements = append(meta.Elements, el)
	}

	return meta, nil
}

func elementSelector(base string, index int) string {
	return fmt.Sprintf("%s >> nth=%d", strings.TrimSpace(base), index)
}

func stringField(row map[string]any, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func resolveTimeoutMs(timeoutMs int) float64 {
	if timeoutMs <= 0 {
		return float64(defaultActionTimeout.Milliseconds())
	}
	return float64(timeoutMs)
}
