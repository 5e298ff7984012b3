package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lint-studio/lint-studio/internal/ruleconfig"
	"github.com/lint-studio/lint-studio/pkg/shared/config"
	"github.com/lint-studio/lint-studio/pkg/shared/logger"
)

// RunOptionsValidate holds the arguments for the validate command.
type RunOptionsValidate struct {
	ConfigFile string
}

var (
	AppConfig       *config.Config
	validateOptions RunOptionsValidate
)

// ValidateCmd represents the validate command.
var ValidateCmd = &cobra.Command{
	Use:                   "validate [--file/-f PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Parse and validate the configuration file without writing anything",
	Args:                  cobra.NoArgs,
	RunE:                  runValidateCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

func runValidateCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-validate")

	if err := validateValidateArgs(&validateOptions); err != nil {
		log.Error("invalid validate arguments", "error", err)
		return err
	}

	doc, err := ruleconfig.ParseFile(validateOptions.ConfigFile)
	if err != nil {
		log.Error("parse failed", "file", validateOptions.ConfigFile, "error", err)
		return err
	}
	if err := ruleconfig.Validate(doc); err != nil {
		log.Error("validation failed", "file", validateOptions.ConfigFile, "error", err)
		return err
	}

	fmt.Printf("%s is valid (%d rule entries)\n", validateOptions.ConfigFile, len(doc.Rules))
	return nil
}

func init() {
	ValidateCmd.Flags().StringVarP(&validateOptions.ConfigFile, "file", "f", ".swiftlint.yml", "Path to the configuration file to validate.")
}
