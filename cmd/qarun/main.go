// Command qarun runs one QA test instruction through the orchestration
// core and prints its outcome record as JSON.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/qaflow/orchestrator/internal/config"
	"github.com/qaflow/orchestrator/internal/coordinator"
	"github.com/qaflow/orchestrator/internal/llm"
	"github.com/qaflow/orchestrator/internal/logging"
	"github.com/qaflow/orchestrator/internal/model"
	"github.com/qaflow/orchestrator/internal/prompt"
)

func main() {
	if err := RunAll(); err != nil {
		logging.Error(err)
		os.Exit(1)
	}
}

// RunAll builds and executes the root command.
func RunAll() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var (
		configPath    string
		testID        string
		description   string
		module        string
		functionality string
		engine        string
		headless      bool
		maxIterations int
		screenshotDir string
		outputPath    string
		quiet         bool
	)

	cmd := &cobra.Command{
		Use:   "qarun",
		Short: "Run a QA test instruction through the browser-automation agent loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			if quiet {
				logging.Disable()
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			invoker, err := buildInvoker(cfg)
			if err != nil {
				return err
			}

			assembler := prompt.NewAssembler(prompt.Config{
				MaxLength:      20000,
				MaxTokens:      8000,
				CheckInjection: true,
			})
			coord := coordinator.New(invoker, assembler, screenshotDir)

			instr := model.TestInstruction{
				TestID:        testID,
				Description:   description,
				Module:        module,
				Functionality: functionality,
				Browser: model.BrowserConfig{
					Engine:        resolveEngine(engine, cfg),
					Headless:      headless,
					MaxIterations: maxIterationsOrDefault(maxIterations, cfg),
				},
			}

			record, err := coord.Run(context.Background(), instr)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				return err
			}

			if outputPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			return os.WriteFile(outputPath, out, 0o644)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&testID, "test-id", "", "unique identifier for this run (generated if omitted)")
	cmd.Flags().StringVar(&description, "description", "", "short QA test description to convert into steps")
	cmd.Flags().StringVar(&module, "module", "", "module name, for prompt context")
	cmd.Flags().StringVar(&functionality, "functionality", "", "functionality name, for prompt context")
	cmd.Flags().StringVar(&engine, "engine", "", "browser engine: primary, gecko, webkit, chromium-edge-channel")
	cmd.Flags().BoolVar(&headless, "headless", true, "run the browser headless")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "agent loop iteration ceiling (0 uses the config default)")
	cmd.Flags().StringVar(&screenshotDir, "screenshot-dir", ".", "directory screenshots are written to")
	cmd.Flags().StringVar(&outputPath, "output", "", "write the outcome record JSON here instead of stdout")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "silence the per-iteration progress log")

	return cmd
}

func buildInvoker(cfg config.Config) (llm.Invoker, error) {
	switch cfg.Provider.Name {
	case "anthropic":
		return llm.NewAnthropicInvoker(cfg.Provider.APIKey, cfg.Provider.Model), nil
	case "openai":
		return llm.NewOpenAIInvoker(cfg.Provider.APIKey, cfg.Provider.Model, cfg.Provider.BaseURL), nil
	default:
		return llm.NewOllamaInvoker(cfg.Provider.BaseURL, cfg.Provider.Model), nil
	}
}

func resolveEngine(flagVal string, cfg config.Config) model.EngineVariant {
	if flagVal != "" {
		return model.EngineVariant(flagVal)
	}
	return cfg.Browser.Engine
}

func maxIterationsOrDefault(flagVal int, cfg config.Config) int {
	if flagVal > 0 {
		return flagVal
	}
	return cfg.Browser.MaxIterations
}
