package saferules

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

// RunOptionsSafeRules holds the arguments for the safe-rules command.
type RunOptionsSafeRules struct {
	ConfigFile    string
	WorkspaceRoot string
	RulesFile     string
}

var (
	AppConfig        *config.Config
	safeRulesOptions RunOptionsSafeRules

	exampleSafeRulesUsage = `  # Find disabled rules that could be enabled without introducing violations
  lintstudio safe-rules force_cast todo empty_count

  # Read the candidate rule identifiers from a file, one per line
  lintstudio safe-rules --rules-file rules.txt --workspace /path/to/project`
)

// SafeRulesCmd represents the safe-rules command.
var SafeRulesCmd = &cobra.Command{
	Use:                   "safe-rules [RULE_ID...] [--rules-file/-i PATH] [--workspace/-w PATH] [--file/-f PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleSafeRulesUsage,
	Short:                 "Discover disabled rules whose enablement would produce zero violations",
	RunE:                  runSafeRulesCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runSafeRulesCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}
	log := logger.NewLogger(AppConfig, "core-safe-rules")

	ruleIDs, err := resolveRuleIDs(&safeRulesOptions, args)
	if err != nil {
		log.Error("invalid safe-rules arguments", "error", err)
		return err
	}

	return runner.With(AppConfig, "core-safe-rules", func(r shared.LintRunner) error {
		e := engine.New(safeRulesOptions.ConfigFile, r, config.GetLintStudioScratchHome(AppConfig), log, simulate.Options{
			Reporter: AppConfig.Simulation.Reporter,
			Timeout:  AppConfig.Simulation.Timeout,
			Workers:  AppConfig.Simulation.Workers,
		})

		safe, err := e.FindSafeRules(cmd.Context(), ruleIDs, safeRulesOptions.WorkspaceRoot)
		if err != nil {
			return err
		}
		if len(safe) == 0 {
			fmt.Println("No safe rules found.")
			return nil
		}
		for _, id := range safe {
			fmt.Println(id)
		}
		return nil
	})
}

func init() {
	SafeRulesCmd.Flags().StringVarP(&safeRulesOptions.ConfigFile, "file", "f", ".swiftlint.yml", "Path to the configuration file to base the simulations on.")
	SafeRulesCmd.Flags().StringVarP(&safeRulesOptions.WorkspaceRoot, "workspace", "w", ".", "Workspace the linter runs against.")
	SafeRulesCmd.Flags().StringVarP(&safeRulesOptions.RulesFile, "rules-file", "i", "", "Path to a file with candidate rule identifiers, one per line.")
}
