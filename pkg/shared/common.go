package shared

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-plugin"
	"github.com/spf13/pflag"

	"github.com/lint-studio/lint-studio/pkg/shared/config"
	"github.com/lint-studio/lint-studio/pkg/shared/logger"
)

const (
	PluginTypeLintRunner string = "lintrunner"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "LINTSTUDIO",
	MagicCookieValue: "1d0b7bfa4d1f2c63a09f5d9f8f3f6de2ab4746c1",
}

var PluginMap = map[string]plugin.Plugin{
	PluginTypeLintRunner: &LintRunnerPlugin{},
}

// Versions holds build metadata for the core binary.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}

// WithLintRunner launches the named lint-runner plugin from the plugins
// folder, dispenses it, and hands the RPC client to f. The plugin process is
// killed when f returns.
func WithLintRunner(cfg *config.Config, loggerName string, pluginName string, f func(LintRunner) error) error {
	logger := logger.NewLogger(cfg, loggerName)

	pluginPath := filepath.Join(config.GetLintStudioPluginsHome(cfg), pluginName)
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig: HandshakeConfig,
		Plugins:         PluginMap,
		Cmd:             exec.Command(pluginPath),
		Logger:          logger,
	})
	defer client.Kill()

	rpcClient, err := client.Client()
	if err != nil {
		return fmt.Errorf("failed to start plugin %q: %w", pluginName, err)
	}

	raw, err := rpcClient.Dispense(PluginTypeLintRunner)
	if err != nil {
		return fmt.Errorf("failed to dispense plugin %q: %w", pluginName, err)
	}

	runner, ok := raw.(LintRunner)
	if !ok {
		return fmt.Errorf("plugin %q does not implement the lint runner contract", pluginName)
	}

	return f(runner)
}

// ForEveryStringWithBoundedGoroutines runs f for every value with at most
// limit goroutines in flight.
func ForEveryStringWithBoundedGoroutines(limit int, values []string, f func(i int, value string)) {
	guard := make(chan struct{}, limit)
	var wg sync.WaitGroup
	for i, value := range values {
		guard <- struct{}{} // would block if guard channel is already filled
		wg.Add(1)
		go func(i int, value string) {
			defer wg.Done()
			f(i, value)
			<-guard
		}(i, value)
	}
	wg.Wait()
}

// HasFlags reports whether any flag in the set was changed by the user.
func HasFlags(flags *pflag.FlagSet) bool {
	found := false
	flags.Visit(func(*pflag.Flag) {
		found = true
	})
	return found
}
