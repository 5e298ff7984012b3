package history

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/lint-studio/lint-studio/internal/engine"
	"github.com/lint-studio/lint-studio/internal/simulate"
	"github.com/lint-studio/lint-studio/pkg/shared/config"
	"github.com/lint-studio/lint-studio/pkg/shared/logger"
)

// RunOptionsHistory holds the arguments for the history commands.
type RunOptionsHistory struct {
	ConfigFile string
	Keep       int
}

var (
	AppConfig      *config.Config
	historyOptions RunOptionsHistory

	exampleHistoryUsage = `  # List backups of the default configuration file, newest first
  lintstudio history list

  # Restore the backup taken at the given unix timestamp
  lintstudio history restore 1724500000

  # Keep only the five most recent backups
  lintstudio history prune --keep 5`
)

// HistoryCmd groups the backup history commands.
var HistoryCmd = &cobra.Command{
	Use:                   "history {list | restore TIMESTAMP | prune [--keep N]}",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleHistoryUsage,
	Short:                 "List, restore, or prune timestamped configuration backups",
}

var listCmd = &cobra.Command{
	Use:          "list",
	SilenceUsage: true,
	Short:        "List backups, newest first",
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEngine()
		if err != nil {
			return err
		}
		backups := e.ListBackups()
		if len(backups) == 0 {
			fmt.Println("No backups.")
			return nil
		}
		for _, b := range backups {
			fmt.Printf("%d  %s  %s\n", b.Timestamp, time.Unix(b.Timestamp, 0).Format(time.RFC3339), b.Path)
		}
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:          "restore TIMESTAMP",
	SilenceUsage: true,
	Short:        "Restore the backup with the given unix timestamp",
	Args:         cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.NewLogger(AppConfig, "core-history")

		ts, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("TIMESTAMP must be a unix timestamp, got %q", args[0])
		}

		e, err := newEngine()
		if err != nil {
			return err
		}
		backup, err := e.FindBackup(ts)
		if err != nil {
			return err
		}
		if err := e.RestoreBackup(backup); err != nil {
			log.Error("restore failed", "error", err)
			return err
		}
		fmt.Printf("Restored %s\n", backup.Path)
		return nil
	},
}

var pruneCmd = &cobra.Command{
	Use:          "prune [--keep N]",
	SilenceUsage: true,
	Short:        "Delete all but the N most recent backups",
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if historyOptions.Keep < 0 {
			return fmt.Errorf("the 'keep' flag must not be negative")
		}
		e, err := newEngine()
		if err != nil {
			return err
		}
		removed := e.PruneBackups(historyOptions.Keep)
		fmt.Printf("Removed %d backup(s).\n", removed)
		return nil
	},
}

// Init initializes the global configuration variable and applies the
// configured retention unless the user set --keep explicitly.
func Init(cfg *config.Config) {
	AppConfig = cfg
	if cfg.History.KeepCount > 0 && !pruneCmd.Flags().Changed("keep") {
		historyOptions.Keep = cfg.History.KeepCount
	}
}

func newEngine() (*engine.Engine, error) {
	if err := validateHistoryArgs(&historyOptions); err != nil {
		return nil, err
	}
	log := logger.NewLogger(AppConfig, "core-history")
	return engine.New(historyOptions.ConfigFile, nil, "", log, simulate.Options{}), nil
}

func init() {
	HistoryCmd.AddCommand(listCmd, restoreCmd, pruneCmd)
	HistoryCmd.PersistentFlags().StringVarP(&historyOptions.ConfigFile, "file", "f", ".swiftlint.yml", "Path to the configuration file the backups belong to.")
	pruneCmd.Flags().IntVar(&historyOptions.Keep, "keep", 10, "Number of most recent backups to keep.")
}
