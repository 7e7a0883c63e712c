// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/filetree/internal/notice"
	"github.com/temirov/filetree/internal/output"
	"github.com/temirov/filetree/internal/services/clipboard"
	"github.com/temirov/filetree/internal/utils"
)

const (
	versionFlagName      = "version"
	configFlagName       = "config"
	versionTemplate      = utils.ApplicationName + " version: %s\n"
	rootUse              = utils.ApplicationName
	rootShortDescription = "insert a linked file tree into a vault note"
	rootLongDescription  = `filetree inserts a nested Markdown list of the folder that contains a note.
Every entry links to its folder or file, either through an obsidian:// URI or
through a path relative to the note. Use generate to insert a tree, settings
to toggle relative links, and init to write a default configuration.`
	versionFlagDescription = "display application version"
	configFlagDescription  = "path to a configuration file overriding ./" + utils.ConfigFileName

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
)

// errVersionDisplayed stops command execution after the version is printed.
var errVersionDisplayed = errors.New("version displayed")

// previewWriter renders Markdown for the terminal.
type previewWriter interface {
	WritePreview(writer io.Writer, markdown string) error
}

// environment carries the collaborators shared by every command.
type environment struct {
	logger           *zap.Logger
	output           io.Writer
	notifier         notice.Notifier
	clipboard        clipboard.Copier
	preview          previewWriter
	workingDirectory string
}

// Execute runs the filetree application.
func Execute(logger *zap.Logger) error {
	workingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
	}
	commandEnvironment := environment{
		logger:           logger,
		output:           os.Stdout,
		notifier:         notice.NewConsole(os.Stderr),
		clipboard:        clipboard.NewService(),
		preview:          output.NewPreview(os.Stdout),
		workingDirectory: workingDirectory,
	}
	return executeWithArguments(context.Background(), commandEnvironment, os.Args[1:])
}

func executeWithArguments(ctx context.Context, commandEnvironment environment, arguments []string) error {
	if commandEnvironment.logger == nil {
		commandEnvironment.logger = zap.NewNop()
	}
	rootCommand := createRootCommand(commandEnvironment)
	rootCommand.SetArgs(joinToggleLiterals(rootCommand, arguments))
	executionError := rootCommand.ExecuteContext(ctx)
	if errors.Is(executionError, errVersionDisplayed) {
		return nil
	}
	return executionError
}

// createRootCommand builds the root Cobra command.
func createRootCommand(commandEnvironment environment) *cobra.Command {
	var showVersion bool
	var configPath string

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Fprintf(commandEnvironment.output, versionTemplate, utils.GetApplicationVersion())
				return errVersionDisplayed
			}
			return nil
		},
	}
	rootCommand.SetOut(commandEnvironment.output)
	registerToggleFlag(rootCommand.PersistentFlags(), &showVersion, versionFlagName, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configPath, configFlagName, "", configFlagDescription)
	rootCommand.AddCommand(
		createGenerateCommand(commandEnvironment, &configPath),
		createSettingsCommand(commandEnvironment, &configPath),
		createInitCommand(commandEnvironment),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}
