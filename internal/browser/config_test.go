package browser

import (
	"testing"

	"github.com/qaflow/orchestrator/internal/model"
	"github.com/qaflow/orchestrator/internal/qaerrors"
)

func TestResolveLaunchSpecKnownVariants(t *testing.T) {
	cases := []struct {
		engine      model.EngineVariant
		wantChannel string
	}{
		{model.EngineChromium, ""},
		{model.EngineGecko, ""},
		{model.EngineWebKit, ""},
		{model.EngineEdgeChannel, "msedge"},
	}
	for _, c := range cases {
		spec, err := resolveLaunchSpec(c.engine)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", c.engine, err)
			continue
		}
		if spec.browserType == nil {
			t.Errorf("%s: expected non-nil browserType selector", c.engine)
		}
		if spec.channel != c.wantChannel {
			t.Errorf("%s: expected channel %q, got %q", c.engine, c.wantChannel, spec.channel)
		}
	}
}

func TestResolveLaunchSpecUnknownVariant(t *testing.T) {
	_, err := resolveLaunchSpec(model.EngineVariant("not-a-real-engine"))
	if err == nil {
		t.Fatal("expected error for unknown engine variant")
	}
	if _, ok := err.(*qaerrors.ConfigurationError); !ok {
		t.Fatalf("expected *qaerrors.ConfigurationError, got %T", err)
	}
}
