// relnotes - Release notes validation for pull requests

// Package config provides layered configuration for relnotes using koanf.
// Configuration is loaded with priority: environment variables (RELNOTES_*) >
// project config (.relnotes.yml) > user config (~/.config/relnotes/config.yml) >
// defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "RELNOTES_"

// Configuration represents the relnotes CLI configuration.
type Configuration struct {
	// ChangelogYAML is the YAML source of truth the changelog commands update.
	ChangelogYAML string `koanf:"changelog_yaml" yaml:"changelog_yaml" json:"changelog_yaml" validate:"required"`
	// ChangelogMD is the markdown file rendered from ChangelogYAML.
	ChangelogMD string `koanf:"changelog_md" yaml:"changelog_md" json:"changelog_md" validate:"required"`
	// Project names the project in the rendered changelog header.
	// Empty means the base name of the working directory.
	Project string `koanf:"project" yaml:"project" json:"project"`
	// RepoURL is the repository web URL used to build PR links
	// (e.g., https://github.com/org/repo). Empty means resolve from git origin.
	RepoURL string `koanf:"repo_url" yaml:"repo_url" json:"repo_url" validate:"omitempty,http_url"`
	// ServerURL is the forge base URL used to build author profile links.
	ServerURL string `koanf:"server_url" yaml:"server_url" json:"server_url" validate:"required,http_url"`
	// MaxParallel bounds concurrent validation of multiple PR bodies.
	MaxParallel int `koanf:"max_parallel" yaml:"max_parallel" json:"max_parallel" validate:"min=1,max=64"`
	// Plain disables colors and icons in terminal output.
	Plain bool `koanf:"plain" yaml:"plain" json:"plain"`
}

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relnotes.yml).
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file (used by tests).
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project-level YAML config if present.
// A custom path that does not exist is an error; the default path is optional.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("config file not found: %s", customPath)
		}
		path = customPath
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "project"); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides.
// Only known keys are taken so RELNOTES_PR_* inputs don't leak into config.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	defaults := GetDefaults()
	cb := func(s string) string {
		key := envTransform(s)
		if _, ok := defaults[key]; !ok {
			return ""
		}
		return key
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", cb), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and fills derived values.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.RepoURL = strings.TrimSuffix(strings.TrimSpace(cfg.RepoURL), "/")
	cfg.ServerURL = strings.TrimSuffix(strings.TrimSpace(cfg.ServerURL), "/")

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if cfg.Project == "" {
		cfg.Project = defaultProjectName()
	}

	return &cfg, nil
}

// defaultProjectName returns the working directory's base name.
func defaultProjectName() string {
	wd, err := os.Getwd()
	if err != nil {
		return "project"
	}
	return filepath.Base(wd)
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: RELNOTES_MAX_PARALLEL -> max_parallel
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
