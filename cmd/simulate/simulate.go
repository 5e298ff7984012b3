package simulate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lint-studio/lint-studio/internal/engine"
	"github.com/lint-studio/lint-studio/internal/runner"
	"github.com/lint-studio/lint-studio/internal/simulate"
	"github.com/lint-studio/lint-studio/pkg/shared"
	"github.com/lint-studio/lint-studio/pkg/shared/config"
	"github.com/lint-studio/lint-studio/pkg/shared/logger"
)

// RunOptionsSimulate holds the arguments for the simulate command.
type RunOptionsSimulate struct {
	ConfigFile    string
	WorkspaceRoot string
	OptIn         bool
	Verbose       bool
}

var (
	AppConfig       *config.Config
	simulateOptions RunOptionsSimulate

	exampleSimulateUsage = `  # Preview the impact of enabling a rule on the current workspace
  lintstudio simulate force_cast

  # Simulate an opt-in rule against another workspace
  lintstudio simulate empty_count --opt-in --workspace /path/to/project

  # Print every violation instead of the summary only
  lintstudio simulate force_cast --verbose`
)

// SimulateCmd represents the simulate command.
var SimulateCmd = &cobra.Command{
	Use:                   "simulate RULE_ID [--opt-in] [--workspace/-w PATH] [--file/-f PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleSimulateUsage,
	Short:                 "Run the linter with a rule hypothetically enabled and report the impact",
	Args:                  cobra.ExactArgs(1),
	RunE:                  runSimulateCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runSimulateCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-simulate")
	ruleID := args[0]

	if err := validateSimulateArgs(&simulateOptions, ruleID); err != nil {
		log.Error("invalid simulate arguments", "error", err)
		return err
	}

	return runner.With(AppConfig, "core-simulate", func(r shared.LintRunner) error {
		e := engine.New(simulateOptions.ConfigFile, r, config.GetLintStudioScratchHome(AppConfig), log, simulate.Options{
			Reporter: AppConfig.Simulation.Reporter,
			Timeout:  AppConfig.Simulation.Timeout,
			Workers:  AppConfig.Simulation.Workers,
		})

		result, err := e.SimulateRule(cmd.Context(), ruleID, simulateOptions.WorkspaceRoot, simulateOptions.OptIn)
		if err != nil {
			log.Error("simulation failed", "rule", ruleID, "error", err)
			return err
		}

		fmt.Println(result.String())
		if simulateOptions.Verbose {
			for _, v := range result.Violations {
				fmt.Printf("  %s:%d [%s] %s\n", v.FilePath, v.Line, v.Severity, v.Message)
			}
		}
		return nil
	})
}

func init() {
	SimulateCmd.Flags().StringVarP(&simulateOptions.ConfigFile, "file", "f", ".swiftlint.yml", "Path to the configuration file to base the simulation on.")
	SimulateCmd.Flags().StringVarP(&simulateOptions.WorkspaceRoot, "workspace", "w", ".", "Workspace the linter runs against.")
	SimulateCmd.Flags().BoolVar(&simulateOptions.OptIn, "opt-in", false, "Register the rule in the opt-in list for the simulation.")
	SimulateCmd.Flags().BoolVarP(&simulateOptions.Verbose, "verbose", "v", false, "Print each violation the rule would introduce.")
}
