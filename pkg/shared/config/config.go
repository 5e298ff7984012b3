package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config holds the global application settings loaded from config.yml.
type Config struct {
	LintStudio LintStudio `yaml:"lintstudio"`
	Logger     Logger     `yaml:"logger"`
	Simulation Simulation `yaml:"simulation"`
	History    History    `yaml:"history"`
}

// LintStudio holds folder locations used by the engine. Empty values are
// resolved against the home folder during validation.
type LintStudio struct {
	HomeFolder    string `yaml:"home_folder"`
	PluginsFolder string `yaml:"plugins_folder"`
	ScratchFolder string `yaml:"scratch_folder"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// Simulation controls how impact simulations invoke the external lint runner.
type Simulation struct {
	Runner   string        `yaml:"runner"`
	Reporter string        `yaml:"reporter"`
	Timeout  time.Duration `yaml:"timeout"`
	Workers  int           `yaml:"workers"`
}

// History controls backup retention for pruning.
type History struct {
	KeepCount int `yaml:"keep_count"`
}

// ValidateConfigPath checks that the given path points at a regular file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes the YAML file at configPath into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the application settings file. A missing file yields the
// default configuration so the tool works without any setup.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if err := LoadYAML(configPath, config); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, err
	}

	return config, nil
}
