package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	diffcmd "github.com/lint-studio/lint-studio/cmd/diff"
	historycmd "github.com/lint-studio/lint-studio/cmd/history"
	"github.com/lint-studio/lint-studio/cmd/rules"
	"github.com/lint-studio/lint-studio/cmd/saferules"
	simulatecmd "github.com/lint-studio/lint-studio/cmd/simulate"
	validatecmd "github.com/lint-studio/lint-studio/cmd/validate"
	"github.com/lint-studio/lint-studio/cmd/version"
	"github.com/lint-studio/lint-studio/pkg/shared/config"
)

var (
	cfgFile   string
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "lintstudio [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Lint Studio edits, diffs, versions, and simulates linter configuration files.",
		Long: `Lint Studio is a workbench for SwiftLint-style YAML configuration files:
it edits rules with diff previews, keeps timestamped backups with restore,
and simulates the impact of enabling a rule before committing to it.
`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "application settings file (default is config.yml)")
	rootCmd.AddCommand(
		rules.RulesCmd,
		diffcmd.DiffCmd,
		historycmd.HistoryCmd,
		simulatecmd.SimulateCmd,
		saferules.SafeRulesCmd,
		validatecmd.ValidateCmd,
		version.NewVersionCmd(),
	)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = "config.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Printf("failed to load application settings: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	rules.Init(AppConfig)
	diffcmd.Init(AppConfig)
	historycmd.Init(AppConfig)
	simulatecmd.Init(AppConfig)
	saferules.Init(AppConfig)
	validatecmd.Init(AppConfig)
	version.Init(AppConfig)
}
