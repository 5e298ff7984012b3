package runner

import (
	"github.com/lint-studio/lint-studio/pkg/shared"
	"github.com/lint-studio/lint-studio/pkg/shared/config"
	"github.com/lint-studio/lint-studio/pkg/shared/logger"
)

// With resolves the configured lint runner and hands it to f. The default
// "exec" runner invokes the linter binary in-process; any other name is
// launched as a runner plugin and killed when f returns.
func With(cfg *config.Config, loggerName string, f func(shared.LintRunner) error) error {
	name := cfg.Simulation.Runner
	if name == "" || name == "exec" {
		return f(NewExecRunner("", logger.NewLogger(cfg, loggerName)))
	}
	return shared.WithLintRunner(cfg, loggerName, name, f)
}
