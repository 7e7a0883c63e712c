package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/filetree/internal/config"
)

const (
	initUse              = "init"
	initShortDescription = "write the default configuration"
	initLongDescription  = `Write the default configuration to ./config.yaml or, with --global,
to ~/.filetree/config.yaml. Existing files are kept unless --force is given.`
	globalFlagName        = "global"
	forceFlagName         = "force"
	globalFlagDescription = "write the configuration into the global configuration directory"
	forceFlagDescription  = "overwrite an existing configuration file"

	initWrittenNoticeFormat = "Configuration written to %s"
)

// createInitCommand returns the init subcommand.
func createInitCommand(commandEnvironment environment) *cobra.Command {
	var global bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: commandEnvironment.workingDirectory,
			})
			if initError != nil {
				return initError
			}
			commandEnvironment.notifier.Success(fmt.Sprintf(initWrittenNoticeFormat, writtenPath))
			return nil
		},
	}
	registerToggleFlag(initCommand.Flags(), &global, globalFlagName, globalFlagDescription)
	registerToggleFlag(initCommand.Flags(), &force, forceFlagName, forceFlagDescription)
	return initCommand
}
