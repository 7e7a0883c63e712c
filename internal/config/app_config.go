package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/temirov/filetree/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command-specific configuration defaults.
type ApplicationConfiguration struct {
	Generate GenerateConfiguration `mapstructure:"generate" yaml:"generate"`
}

// GenerateConfiguration defines defaults for the generate command.
type GenerateConfiguration struct {
	Vault     string            `mapstructure:"vault" yaml:"vault,omitempty"`
	VaultName string            `mapstructure:"vault_name" yaml:"vault_name,omitempty"`
	Copy      *bool             `mapstructure:"copy" yaml:"copy,omitempty"`
	Strict    *bool             `mapstructure:"strict" yaml:"strict,omitempty"`
	Locale    string            `mapstructure:"locale" yaml:"locale,omitempty"`
	Paths     PathConfiguration `mapstructure:"paths" yaml:"paths"`
}

// PathConfiguration configures which vault entries are scanned.
type PathConfiguration struct {
	Exclude       []string `mapstructure:"exclude" yaml:"exclude"`
	UseGitignore  *bool    `mapstructure:"use_gitignore" yaml:"use_gitignore,omitempty"`
	UseIgnoreFile *bool    `mapstructure:"use_ignore" yaml:"use_ignore,omitempty"`
	IncludeHidden *bool    `mapstructure:"include_hidden" yaml:"include_hidden,omitempty"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	merged.Generate.Paths.Exclude = utils.DeduplicatePatterns(merged.Generate.Paths.Exclude)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Generate = result.Generate.merge(override.Generate)
	return result
}

func (config GenerateConfiguration) merge(override GenerateConfiguration) GenerateConfiguration {
	result := config
	if override.Vault != "" {
		result.Vault = override.Vault
	}
	if override.VaultName != "" {
		result.VaultName = override.VaultName
	}
	if override.Locale != "" {
		result.Locale = override.Locale
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	if override.Strict != nil {
		result.Strict = cloneBool(override.Strict)
	}
	result.Paths = result.Paths.merge(override.Paths)
	return result
}

func (config PathConfiguration) merge(override PathConfiguration) PathConfiguration {
	result := config
	if len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.DeduplicatePatterns(override.Exclude)...)
	}
	if override.UseGitignore != nil {
		result.UseGitignore = cloneBool(override.UseGitignore)
	}
	if override.UseIgnoreFile != nil {
		result.UseIgnoreFile = cloneBool(override.UseIgnoreFile)
	}
	if override.IncludeHidden != nil {
		result.IncludeHidden = cloneBool(override.IncludeHidden)
	}
	return result
}

// IgnoreOptions resolves the path configuration into vault ignore options.
// Ignore files are honored unless disabled; additionalExclusions follow the
// configured exclusions.
func (config PathConfiguration) IgnoreOptions(additionalExclusions []string) VaultIgnoreOptions {
	exclusions := append(append([]string{}, config.Exclude...), additionalExclusions...)
	return VaultIgnoreOptions{
		ExclusionPatterns: utils.DeduplicatePatterns(exclusions),
		UseGitignore:      BoolValue(config.UseGitignore, true),
		UseIgnoreFile:     BoolValue(config.UseIgnoreFile, true),
		IncludeHidden:     BoolValue(config.IncludeHidden, false),
	}
}

// CollationLanguage parses the configured locale. An empty locale selects the
// root collation.
func (config GenerateConfiguration) CollationLanguage() (language.Tag, error) {
	locale := strings.TrimSpace(config.Locale)
	if locale == "" {
		return language.Und, nil
	}
	tag, parseErr := language.Parse(locale)
	if parseErr != nil {
		return language.Und, fmt.Errorf("parse locale %q: %w", config.Locale, parseErr)
	}
	return tag, nil
}

// BoolValue dereferences value, returning fallback when it is unset.
func BoolValue(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
