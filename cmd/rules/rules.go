package rules

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lint-studio/lint-studio/internal/diff"
	"github.com/lint-studio/lint-studio/internal/engine"
	"github.com/lint-studio/lint-studio/internal/ruleconfig"
	"github.com/lint-studio/lint-studio/internal/simulate"
	"github.com/lint-studio/lint-studio/pkg/shared/config"
	"github.com/lint-studio/lint-studio/pkg/shared/logger"
)

// RunOptionsRules holds the arguments for the rule edit commands.
type RunOptionsRules struct {
	ConfigFile string
	Severity   string
	OptIn      bool
	DryRun     bool
	NoBackup   bool
}

var (
	AppConfig    *config.Config
	rulesOptions RunOptionsRules

	exampleRulesUsage = `  # Enable a rule in the default .swiftlint.yml
  lintstudio rules enable force_cast

  # Enable an opt-in rule with an explicit severity
  lintstudio rules enable empty_count --opt-in --severity error

  # Preview the change without writing anything
  lintstudio rules enable force_cast --dry-run

  # Disable a rule in a specific configuration file
  lintstudio rules disable todo --file configs/.swiftlint.yml`
)

// RulesCmd groups the rule edit commands.
var RulesCmd = &cobra.Command{
	Use:                   "rules {enable | disable} RULE_ID [--severity warning|error] [--opt-in] [--dry-run]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleRulesUsage,
	Short:                 "Enable or disable a lint rule in the configuration file",
}

var enableCmd = &cobra.Command{
	Use:          "enable RULE_ID",
	SilenceUsage: true,
	Short:        "Enable a rule, cleaning it out of the disabled list",
	Args:         cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRuleEdit(args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:          "disable RULE_ID",
	SilenceUsage: true,
	Short:        "Disable a rule",
	Args:         cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRuleEdit(args[0], false)
	},
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runRuleEdit previews the diff and, unless this is a dry run, saves the
// edited document with a backup.
func runRuleEdit(ruleID string, enable bool) error {
	log := logger.NewLogger(AppConfig, "core-rules")

	if err := validateRulesArgs(&rulesOptions, ruleID); err != nil {
		log.Error("invalid rules arguments", "error", err)
		return err
	}

	e := engine.New(rulesOptions.ConfigFile, nil, "", log, simulate.Options{})
	doc, err := e.Document()
	if err != nil {
		return err
	}

	if enable {
		var severity *ruleconfig.Severity
		if rulesOptions.Severity != "" {
			s := ruleconfig.Severity(rulesOptions.Severity)
			severity = &s
		}
		doc.EnableRule(ruleID, severity, rulesOptions.OptIn)
	} else {
		doc.DisableRule(ruleID)
	}

	d, err := e.GenerateDiff(doc)
	if err != nil {
		return err
	}
	printDiff(d)

	if rulesOptions.DryRun {
		log.Info("dry run, nothing written", "rule", ruleID)
		return nil
	}
	if !d.HasChanges() {
		log.Info("no changes to save", "rule", ruleID)
		return nil
	}

	backup, err := e.Save(doc, !rulesOptions.NoBackup)
	if err != nil {
		log.Error("save failed", "error", err)
		return err
	}
	if backup != nil {
		fmt.Printf("Saved. Backup: %s\n", backup.Path)
	} else {
		fmt.Println("Saved.")
	}
	return nil
}

func printDiff(d diff.Diff) {
	if !d.HasChanges() {
		fmt.Println("No rule changes.")
		return
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
}

func init() {
	RulesCmd.AddCommand(enableCmd, disableCmd)
	RulesCmd.PersistentFlags().StringVarP(&rulesOptions.ConfigFile, "file", "f", ".swiftlint.yml", "Path to the configuration file to edit.")
	RulesCmd.PersistentFlags().BoolVar(&rulesOptions.DryRun, "dry-run", false, "Show the diff without writing anything.")
	RulesCmd.PersistentFlags().BoolVar(&rulesOptions.NoBackup, "no-backup", false, "Skip the timestamped backup before saving.")
	enableCmd.Flags().StringVarP(&rulesOptions.Severity, "severity", "s", "", "Severity to set for the rule (warning or error).")
	enableCmd.Flags().BoolVar(&rulesOptions.OptIn, "opt-in", false, "Register the rule in the opt-in list as well.")
}
