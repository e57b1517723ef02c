// Package config loads the orchestration core's run-time configuration:
// provider selection, credentials, and browser defaults. It reads a YAML
// file, a .env file, and the process environment, in that order, with
// later sources overriding earlier ones.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/qaflow/orchestrator/internal/model"
	"github.com/qaflow/orchestrator/internal/qaerrors"
)

// Config is the process-wide configuration for one orchestration run.
type Config struct {
	Provider ProviderConfig      `yaml:"provider"`
	Browser  model.BrowserConfig `yaml:"browser"`
	Loop     LoopConfig          `yaml:"loop"`
}

// ProviderConfig selects and authenticates the LLM Invoker.
type ProviderConfig struct {
	// Name is one of "anthropic", "openai", "ollama".
	Name    string `yaml:"name"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
}

// LoopConfig holds Agent Loop tuning.
type LoopConfig struct {
	IterationCeiling int `yaml:"iteration_ceiling"`
}

// Default returns a Config with the documented defaults: chromium
// engine, headless, ceiling of 10.
func Default() Config {
	return Config{
		Browser: model.BrowserConfig{
			Engine:        model.EngineChromium,
			Headless:      true,
			MaxIterations: 10,
		},
		Loop: LoopConfig{IterationCeiling: 10},
	}
}

// Load reads path (if non-empty and present) as YAML over the defaults,
// loads a .env file from the working directory if present, then applies
// environment variable overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, &qaerrors.ConfigurationError{Field: "config file", Reason: err.Error()}
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, &qaerrors.ConfigurationError{Field: "config file", Reason: err.Error()}
		}
	}

	_ = godotenv.Load()
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QA_PROVIDER"); v != "" {
		cfg.Provider.Name = v
	}
	if v := os.Getenv("QA_MODEL"); v != "" {
		cfg.Provider.Model = v
	}
	if v := os.Getenv("QA_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("QA_ENGINE"); v != "" {
		cfg.Browser.Engine = model.EngineVariant(v)
	}

	switch cfg.Provider.Name {
	case "anthropic":
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
			cfg.Provider.APIKey = v
		}
	case "openai":
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.Provider.APIKey = v
		}
	}
}

// Validate checks that the provider is recognized, its credentials are
// present when required, and the engine variant is one of the four
// accepted values. Load calls it after reading every source; the only
// other ConfigurationError Load returns is for a config file it cannot
// read or parse.
func (c Config) Validate() error {
	switch c.Provider.Name {
	case "anthropic", "openai":
		if c.Provider.APIKey == "" {
			return &qaerrors.ConfigurationError{Field: "provider.api_key", Reason: "required for provider " + c.Provider.Name}
		}
	case "ollama":
		// self-hosted: no credential required.
	default:
		return &qaerrors.ConfigurationError{Field: "provider.name", Reason: "unknown provider: " + c.Provider.Name}
	}

	if c.Provider.Model == "" {
		return &qaerrors.ConfigurationError{Field: "provider.model", Reason: "required"}
	}

	if !c.Browser.Engine.Valid() {
		return &qaerrors.ConfigurationError{Field: "browser.engine", Reason: "unrecognized engine variant: " + string(c.Browser.Engine)}
	}

	return nil
}
