package main

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/lint-studio/lint-studio/internal/runner"
	"github.com/lint-studio/lint-studio/pkg/shared"
)

// LintRunnerSwiftlint wraps the swiftlint binary behind the lint-runner
// plugin contract.
type LintRunnerSwiftlint struct {
	logger hclog.Logger
	exec   *runner.ExecRunner
}

func (r *LintRunnerSwiftlint) Run(req shared.LintRequest) (shared.LintResult, error) {
	r.logger.Info("running swiftlint", "config", req.ConfigPath, "workspace", req.WorkspaceRoot)
	return r.exec.Run(req)
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Level:      hclog.Trace,
		Output:     os.Stderr,
		JSONFormat: true,
	})

	impl := &LintRunnerSwiftlint{
		logger: logger,
		exec:   runner.NewExecRunner(runner.DefaultBinary, logger),
	}

	pluginMap := map[string]plugin.Plugin{
		shared.PluginTypeLintRunner: &shared.LintRunnerPlugin{Impl: impl},
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: shared.HandshakeConfig,
		Plugins:         pluginMap,
	})
}
