package config

// GetDefaultConfigTemplate returns a commented project config template.
func GetDefaultConfigTemplate() string {
	return `# relnotes configuration
# Every key can be overridden with a RELNOTES_<KEY> environment variable.

changelog_yaml: CHANGELOG.yaml        # YAML source updated by 'relnotes changelog append'
changelog_md: CHANGELOG.md            # Markdown rendered from changelog_yaml
project: ""                           # Name in the changelog header (default: directory name)
repo_url: ""                          # e.g. https://github.com/org/repo (default: git origin)
server_url: https://github.com        # Base URL for author profile links
max_parallel: 4                       # Concurrent files checked by 'relnotes validate' (1-64)
plain: false                          # Disable colors and icons
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"changelog_yaml": "CHANGELOG.yaml",
		"changelog_md":   "CHANGELOG.md",
		"project":        "",
		// repo_url: empty means the CLI resolves it from the origin remote.
		"repo_url":     "",
		"server_url":   "https://github.com",
		"max_parallel": 4,
		"plain":        false,
	}
}
