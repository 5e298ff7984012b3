package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultSimulationTimeout = 60 * time.Second
	defaultSimulationWorkers = 2
	defaultHistoryKeepCount  = 10
	maxSimulationTimeout     = 1 * time.Hour
)

// ValidateConfig checks the global configuration and fills in defaults for
// folders, simulation limits, and retention.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := validateFolders(cfg); err != nil {
		return fmt.Errorf("YAML global config: lintstudio directive is invalid: %w", err)
	}
	if err := validateSimulation(&cfg.Simulation); err != nil {
		return fmt.Errorf("YAML global config: simulation directive is invalid: %w", err)
	}
	if err := validateHistory(&cfg.History); err != nil {
		return fmt.Errorf("YAML global config: history directive is invalid: %w", err)
	}
	return nil
}

// validateFolders resolves the home, plugins, and scratch folders with env
// overrides taking priority over the settings file.
func validateFolders(cfg *Config) error {
	if err := updateHome(cfg); err != nil {
		return fmt.Errorf("failed to resolve home folder: %w", err)
	}
	if err := updateFolder(&cfg.LintStudio.PluginsFolder, "LINTSTUDIO_PLUGINS_FOLDER", "plugins", cfg); err != nil {
		return fmt.Errorf("failed to resolve plugins folder: %w", err)
	}
	if err := updateFolder(&cfg.LintStudio.ScratchFolder, "LINTSTUDIO_SCRATCH_FOLDER", "scratch", cfg); err != nil {
		return fmt.Errorf("failed to resolve scratch folder: %w", err)
	}
	return nil
}

func updateHome(cfg *Config) error {
	if env := os.Getenv("LINTSTUDIO_HOME"); env != "" {
		cfg.LintStudio.HomeFolder = env
	}
	if cfg.LintStudio.HomeFolder != "" {
		return nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	cfg.LintStudio.HomeFolder = filepath.Join(home, ".lintstudio")
	return nil
}

func updateFolder(target *string, envVar, defaultName string, cfg *Config) error {
	if env := os.Getenv(envVar); env != "" {
		*target = env
	}
	if *target != "" {
		return nil
	}
	*target = filepath.Join(cfg.LintStudio.HomeFolder, defaultName)
	return nil
}

func validateSimulation(sim *Simulation) error {
	if sim.Timeout < 0 {
		return fmt.Errorf("invalid duration for timeout: %v cannot be negative", sim.Timeout)
	}
	if sim.Timeout > maxSimulationTimeout {
		return fmt.Errorf("invalid duration for timeout: %v exceeds maximum of %v", sim.Timeout, maxSimulationTimeout)
	}
	if sim.Timeout == 0 {
		sim.Timeout = defaultSimulationTimeout
	}
	if sim.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", sim.Workers)
	}
	if sim.Workers == 0 {
		sim.Workers = defaultSimulationWorkers
	}
	if sim.Reporter != "" && sim.Reporter != "json" && sim.Reporter != "sarif" {
		return fmt.Errorf("unsupported reporter %q, expected json or sarif", sim.Reporter)
	}
	if sim.Reporter == "" {
		sim.Reporter = "json"
	}
	return nil
}

func validateHistory(h *History) error {
	if h.KeepCount < 0 {
		return fmt.Errorf("keep_count must not be negative: %d", h.KeepCount)
	}
	if h.KeepCount == 0 {
		h.KeepCount = defaultHistoryKeepCount
	}
	return nil
}
