package config

// GetLintStudioHome returns the resolved home folder.
func GetLintStudioHome(cfg *Config) string {
	return cfg.LintStudio.HomeFolder
}

// GetLintStudioPluginsHome returns the resolved plugins folder.
func GetLintStudioPluginsHome(cfg *Config) string {
	return cfg.LintStudio.PluginsFolder
}

// GetLintStudioScratchHome returns the resolved scratch folder used for
// simulation sandboxes.
func GetLintStudioScratchHome(cfg *Config) string {
	return cfg.LintStudio.ScratchFolder
}
