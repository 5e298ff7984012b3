package diff

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lint-studio/lint-studio/internal/diff"
	"github.com/lint-studio/lint-studio/internal/ruleconfig"
	"github.com/lint-studio/lint-studio/pkg/shared/config"
	"github.com/lint-studio/lint-studio/pkg/shared/logger"
)

// RunOptionsDiff holds the arguments for the diff command.
type RunOptionsDiff struct {
	ConfigFile string
	Against    string
	Full       bool
}

var (
	AppConfig   *config.Config
	diffOptions RunOptionsDiff

	exampleDiffUsage = `  # Compare the default configuration against a proposed one
  lintstudio diff --against proposed.yml

  # Compare two explicit files and print the full serialized texts
  lintstudio diff --file configs/.swiftlint.yml --against proposed.yml --full`
)

// DiffCmd represents the diff command.
var DiffCmd = &cobra.Command{
	Use:                   "diff --against/-a FILE [--file/-f PATH] [--full]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleDiffUsage,
	Short:                 "Structural diff between the configuration file and another one",
	RunE:                  runDiffCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runDiffCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-diff")

	if err := validateDiffArgs(&diffOptions); err != nil {
		log.Error("invalid diff arguments", "error", err)
		return err
	}

	current, err := ruleconfig.ParseFile(diffOptions.ConfigFile)
	if err != nil {
		return err
	}
	proposed, err := ruleconfig.ParseFile(diffOptions.Against)
	if err != nil {
		return err
	}

	d := diff.Compute(current, proposed)
	if !d.HasChanges() {
		fmt.Println("No rule changes.")
	}
	for _, id := range d.Added {
		fmt.Printf("+ %s\n", id)
	}
	for _, id := range d.Removed {
		fmt.Printf("- %s\n", id)
	}
	for _, id := range d.Modified {
		fmt.Printf("~ %s\n", id)
	}

	if diffOptions.Full {
		fmt.Println("--- before")
		fmt.Print(d.BeforeText)
		fmt.Println("--- after")
		fmt.Print(d.AfterText)
	}
	return nil
}

func init() {
	DiffCmd.Flags().StringVarP(&diffOptions.ConfigFile, "file", "f", ".swiftlint.yml", "Path to the configuration file to compare from.")
	DiffCmd.Flags().StringVarP(&diffOptions.Against, "against", "a", "", "Path to the configuration file to compare against.")
	DiffCmd.Flags().BoolVar(&diffOptions.Full, "full", false, "Also print the full serialized form of both documents.")
}
