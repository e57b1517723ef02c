package browser

import (
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/qaflow/orchestrator/internal/model"
	"github.com/qaflow/orchestrator/internal/qaerrors"
)

// pwOnce guards the single Playwright driver process per Go process, per
// upstream Playwright's own guidance that only one driver should run at a
// time.
var (
	pwOnce     sync.Once
	pwInstance *playwright.Playwright
	pwErr      error
)

func getPlaywright() (*playwright.Playwright, error) {
	pwOnce.Do(func() {
		if err := playwright.Install(); err != nil {
			pwErr = err
			return
		}
		pwInstance, pwErr = playwright.Run()
	})
	return pwInstance, pwErr
}

// Session is the Browser Session: one launched engine and its one active
// page, scoped to exactly one run. initialize is a one-shot operation;
// subsequent calls are no-ops. close is idempotent.
type Session struct {
	mu       sync.Mutex
	browser  playwright.Browser
	browCtx  playwright.BrowserContext
	pg       playwright.Page
	ready    bool
	closed   bool
}

// New returns an uninitialized session. Call Initialize before any tool
// that touches the page.
func New() *Session {
	return &Session{}
}

// Initialize launches the engine named by cfg.Engine and opens an empty
// page. Called more than once, it is a no-op after the first successful
// call.
func (s *Session) Initialize(cfg model.BrowserConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	spec, err := resolveLaunchSpec(cfg.Engine)
	if err != nil {
		return err
	}

	pw, err := getPlaywright()
	if err != nil {
		return &qaerrors.BrowserError{Tool: "initialize", Err: err}
	}

	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	}
	if spec.channel != "" {
		opts.Channel = playwright.String(spec.channel)
	}

	browser, err := spec.browserType(pw).Launch(opts)
	if err != nil {
		return &qaerrors.BrowserError{Tool: "initialize", Err: err}
	}

	browCtx, err := browser.NewContext()
	if err != nil {
		_ = browser.Close()
		return &qaerrors.BrowserError{Tool: "initialize", Err: err}
	}

	page, err := browCtx.NewPage()
	if err != nil {
		_ = browser.Close()
		return &qaerrors.BrowserError{Tool: "initialize", Err: err}
	}

	s.browser = browser
	s.browCtx = browCtx
	s.pg = page
	s.ready = true
	return nil
}

// Page returns the active page handle. It fails with SessionNotReady
// when Initialize has not yet run or Close has already run.
func (s *Session) Page() (playwright.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready || s.closed {
		return nil, &qaerrors.SessionNotReady{}
	}
	return s.pg, nil
}

// Close tears down the session. It is idempotent: closing a
// never-initialized or already-closed session is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !s.ready {
		s.closed = true
		return nil
	}
	s.closed = true

	if s.browser != nil {
		return s.browser.Close()
	}
	return nil
}
