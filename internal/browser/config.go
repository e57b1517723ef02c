// Package browser owns the Browser Session: a single launched engine and
// its one active page, scoped to exactly one run. It never connects to an
// externally managed browser and never serves more than one caller.
package browser

import (
	"github.com/playwright-community/playwright-go"

	"github.com/qaflow/orchestrator/internal/model"
	"github.com/qaflow/orchestrator/internal/qaerrors"
)

// launchSpec is what an EngineVariant resolves to: which Playwright
// browser type drives the session, and an optional channel override for
// variants that ride on Chromium under a different distribution name.
type launchSpec struct {
	browserType func(pw *playwright.Playwright) playwright.BrowserType
	channel     string
}

func resolveLaunchSpec(engine model.EngineVariant) (launchSpec, error) {
	switch engine {
	case model.EngineChromium:
		return launchSpec{browserType: func(pw *playwright.Playwright) playwright.BrowserType { return pw.Chromium }}, nil
	case model.EngineGecko:
		return launchSpec{browserType: func(pw *playwright.Playwright) playwright.BrowserType { return pw.Firefox }}, nil
	case model.EngineWebKit:
		return launchSpec{browserType: func(pw *playwright.Playwright) playwright.BrowserType { return pw.Webkit }}, nil
	case model.EngineEdgeChannel:
		return launchSpec{
			browserType: func(pw *playwright.Playwright) playwright.BrowserType { return pw.Chromium },
			channel:     "msedge",
		}, nil
	default:
		return launchSpec{}, &qaerrors.ConfigurationError{
			Field:  "browser.engine",
			Reason: "unrecognized engine variant: " + string(engine),
		}
	}
}
