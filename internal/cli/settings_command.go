package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/filetree/internal/config"
	"github.com/temirov/filetree/internal/settings"
)

const (
	settingsUse              = "settings"
	settingsShortDescription = "show the file tree settings of a vault"
	settingsLongDescription  = `Show the settings stored in the vault's plugin data file.
The vault is taken from --vault, the configuration, or the nearest directory
above the working directory that contains .obsidian.`
	relativePathsUse              = "relative-paths <true|false>"
	relativePathsShortDescription = "toggle Generate Relative Paths"
	relativePathsLongDescription  = `Enable or disable relative links for generated trees.
The setting is saved immediately in the vault's plugin data file.`

	settingsPathFormat          = "settings: %s\n"
	settingsRelativePathsFormat = "useRelativePaths: %t\n"
	relativePathsEnabledNotice  = "Generate Relative Paths enabled."
	relativePathsDisabledNotice = "Generate Relative Paths disabled."

	errorSaveSettingsFormat = "save settings: %w"
)

// createSettingsCommand returns the settings subcommand and its toggles.
func createSettingsCommand(commandEnvironment environment, configPath *string) *cobra.Command {
	var vaultDirectory string

	settingsCommand := &cobra.Command{
		Use:   settingsUse,
		Short: settingsShortDescription,
		Long:  settingsLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			store, storeError := openSettingsStore(commandEnvironment, *configPath, vaultDirectory)
			if storeError != nil {
				return storeError
			}
			return writeSettings(commandEnvironment, store)
		},
	}
	settingsCommand.PersistentFlags().StringVar(&vaultDirectory, vaultFlagName, "", vaultFlagDescription)

	relativePathsCommand := &cobra.Command{
		Use:   relativePathsUse,
		Short: relativePathsShortDescription,
		Long:  relativePathsLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			enabled, parseError := parseBooleanLiteral(arguments[0])
			if parseError != nil {
				return parseError
			}
			store, storeError := openSettingsStore(commandEnvironment, *configPath, vaultDirectory)
			if storeError != nil {
				return storeError
			}
			if saveError := store.SetUseRelativePaths(enabled); saveError != nil {
				return fmt.Errorf(errorSaveSettingsFormat, saveError)
			}
			if enabled {
				commandEnvironment.notifier.Success(relativePathsEnabledNotice)
			} else {
				commandEnvironment.notifier.Success(relativePathsDisabledNotice)
			}
			return writeSettings(commandEnvironment, store)
		},
	}
	settingsCommand.AddCommand(relativePathsCommand)
	return settingsCommand
}

// openSettingsStore locates the vault and loads its settings.
func openSettingsStore(commandEnvironment environment, configPath string, vaultDirectory string) (*settings.Store, error) {
	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: commandEnvironment.workingDirectory,
		ExplicitFilePath: configPath,
	})
	if configurationError != nil {
		return nil, fmt.Errorf(errorLoadConfigurationFormat, configurationError)
	}
	configuredDirectory := strings.TrimSpace(vaultDirectory)
	if configuredDirectory == "" {
		configuredDirectory = applicationConfiguration.Generate.Vault
	}
	resolvedDirectory, vaultError := resolveVaultDirectory(commandEnvironment.workingDirectory, configuredDirectory, commandEnvironment.workingDirectory)
	if vaultError != nil {
		return nil, vaultError
	}
	store := settings.NewStore(settings.DataFilePath(resolvedDirectory))
	if _, loadError := store.Load(); loadError != nil {
		return nil, fmt.Errorf(errorLoadSettingsFormat, loadError)
	}
	return store, nil
}

func writeSettings(commandEnvironment environment, store *settings.Store) error {
	if _, writeError := fmt.Fprintf(commandEnvironment.output, settingsPathFormat, store.Path()); writeError != nil {
		return writeError
	}
	_, writeError := fmt.Fprintf(commandEnvironment.output, settingsRelativePathsFormat, store.Settings().UseRelativePaths)
	return writeError
}
