package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/filetree/internal/commands"
	"github.com/temirov/filetree/internal/config"
	"github.com/temirov/filetree/internal/editor"
	"github.com/temirov/filetree/internal/settings"
	"github.com/temirov/filetree/internal/vault"
)

const (
	generateCommandName      = "generate"
	generateUse              = generateCommandName + " <note>"
	generateAlias            = "g"
	generateShortDescription = "insert the file tree of a note's folder (" + generateAlias + ")"
	generateLongDescription  = `Insert a nested Markdown list of the folder that contains <note> at the cursor.
The vault is the nearest directory above the note that contains .obsidian unless
--vault is given. Links are obsidian:// URIs unless relative paths are enabled
in the settings or requested with --relative.`
	generateUsageExample = `  # Append the tree of the note's folder to the end of the note
  filetree generate Projects/plan.md

  # Insert at the top of the note with relative links
  filetree g --line 0 --relative Projects/plan.md

  # Print the tree without modifying the note and copy it to the clipboard
  filetree g --stdout --copy Projects/plan.md`

	vaultFlagName          = "vault"
	vaultNameFlagName      = "vault-name"
	lineFlagName           = "line"
	chFlagName             = "ch"
	localeFlagName         = "locale"
	relativeFlagName       = "relative"
	copyFlagName           = "copy"
	stdoutFlagName         = "stdout"
	previewFlagName        = "preview"
	strictFlagName         = "strict"
	exclusionFlagName      = "e"
	noGitignoreFlagName    = "no-gitignore"
	noIgnoreFlagName       = "no-ignore"
	includeHiddenFlagName  = "hidden"
	defaultCursorLine      = -1
	defaultCursorCharacter = 0

	vaultFlagDescription            = "vault root directory"
	vaultNameFlagDescription        = "vault name used in obsidian:// links"
	lineFlagDescription             = "zero-based cursor line; negative appends to the end of the note"
	chFlagDescription               = "zero-based cursor character within the line"
	localeFlagDescription           = "locale used to order sibling entries, for example sv or de"
	relativeFlagDescription         = "use relative links for this invocation"
	copyFlagDescription             = "copy the generated tree to the clipboard"
	stdoutFlagDescription           = "print the tree instead of inserting it"
	previewFlagDescription          = "print a rendered preview instead of inserting the tree"
	strictFlagDescription           = "validate the generated Markdown before inserting it"
	exclusionFlagDescription        = "exclude path pattern"
	disableGitignoreFlagDescription = "do not use .gitignore"
	disableIgnoreFlagDescription    = "do not use .ignore"
	includeHiddenFlagDescription    = "include hidden files and folders other than .obsidian"

	errorResolveNoteFormat         = "resolve note path %s: %w"
	errorLoadConfigurationFormat   = "load configuration: %w"
	errorLoadIgnorePatternsFormat  = "load ignore patterns for %s: %w"
	errorScanVaultFormat           = "scan vault: %w"
	errorLoadSettingsFormat        = "load settings: %w"
	clipboardServiceMissingMessage = "clipboard service is not configured"
	clipboardCopyErrorFormat       = "copy tree to clipboard: %w"
)

var errClipboardServiceMissing = errors.New(clipboardServiceMissingMessage)

// pathOptions stores configuration for path-related flags.
type pathOptions struct {
	exclusionPatterns []string
	disableGitignore  bool
	disableIgnoreFile bool
	includeHidden     bool
}

// generateOptions holds the flags of the generate command.
type generateOptions struct {
	notePath          string
	vaultDirectory    string
	vaultName         string
	locale            string
	cursor            editor.Cursor
	relative          bool
	relativeRequested bool
	copyEnabled       bool
	stdout            bool
	preview           bool
	strict            bool
	paths             pathOptions
	changedFlags      map[string]bool
}

// addPathFlags registers path-related flags on the command.
func addPathFlags(command *cobra.Command, options *pathOptions) {
	command.Flags().StringArrayVarP(&options.exclusionPatterns, exclusionFlagName, exclusionFlagName, nil, exclusionFlagDescription)
	registerToggleFlag(command.Flags(), &options.disableGitignore, noGitignoreFlagName, disableGitignoreFlagDescription)
	registerToggleFlag(command.Flags(), &options.disableIgnoreFile, noIgnoreFlagName, disableIgnoreFlagDescription)
	registerToggleFlag(command.Flags(), &options.includeHidden, includeHiddenFlagName, includeHiddenFlagDescription)
}

// createGenerateCommand returns the generate subcommand.
func createGenerateCommand(commandEnvironment environment, configPath *string) *cobra.Command {
	var options generateOptions

	generateCommand := &cobra.Command{
		Use:     generateUse,
		Aliases: []string{generateAlias},
		Short:   generateShortDescription,
		Long:    generateLongDescription,
		Example: generateUsageExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			options.notePath = arguments[0]
			options.relativeRequested = command.Flags().Changed(relativeFlagName)
			options.changedFlags = map[string]bool{
				copyFlagName:          command.Flags().Changed(copyFlagName),
				strictFlagName:        command.Flags().Changed(strictFlagName),
				noGitignoreFlagName:   command.Flags().Changed(noGitignoreFlagName),
				noIgnoreFlagName:      command.Flags().Changed(noIgnoreFlagName),
				includeHiddenFlagName: command.Flags().Changed(includeHiddenFlagName),
			}
			return runGenerate(command.Context(), commandEnvironment, *configPath, options)
		},
	}

	addPathFlags(generateCommand, &options.paths)
	generateCommand.Flags().StringVar(&options.vaultDirectory, vaultFlagName, "", vaultFlagDescription)
	generateCommand.Flags().StringVar(&options.vaultName, vaultNameFlagName, "", vaultNameFlagDescription)
	generateCommand.Flags().StringVar(&options.locale, localeFlagName, "", localeFlagDescription)
	generateCommand.Flags().IntVar(&options.cursor.Line, lineFlagName, defaultCursorLine, lineFlagDescription)
	generateCommand.Flags().IntVar(&options.cursor.Ch, chFlagName, defaultCursorCharacter, chFlagDescription)
	registerToggleFlag(generateCommand.Flags(), &options.relative, relativeFlagName, relativeFlagDescription)
	registerToggleFlag(generateCommand.Flags(), &options.stdout, stdoutFlagName, stdoutFlagDescription)
	registerToggleFlag(generateCommand.Flags(), &options.preview, previewFlagName, previewFlagDescription)
	registerToggleFlag(generateCommand.Flags(), &options.strict, strictFlagName, strictFlagDescription)
	registerToggleFlag(generateCommand.Flags(), &options.copyEnabled, copyFlagName, copyFlagDescription)
	return generateCommand
}

// runGenerate materialises the vault around the note and inserts its folder tree.
func runGenerate(ctx context.Context, commandEnvironment environment, configPath string, options generateOptions) error {
	logger := commandEnvironment.logger

	applicationConfiguration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: commandEnvironment.workingDirectory,
		ExplicitFilePath: configPath,
	})
	if configurationError != nil {
		return fmt.Errorf(errorLoadConfigurationFormat, configurationError)
	}
	generateConfiguration := applyGenerateFlags(applicationConfiguration.Generate, options)
	collationLanguage, localeError := generateConfiguration.CollationLanguage()
	if localeError != nil {
		return localeError
	}

	notePath := resolveAgainst(commandEnvironment.workingDirectory, options.notePath)
	absoluteNotePath, absoluteError := filepath.Abs(notePath)
	if absoluteError != nil {
		return fmt.Errorf(errorResolveNoteFormat, options.notePath, absoluteError)
	}

	vaultDirectory, vaultError := resolveVaultDirectory(commandEnvironment.workingDirectory, generateConfiguration.Vault, absoluteNotePath)
	if vaultError != nil {
		return vaultError
	}

	ignoreOptions := generateConfiguration.Paths.IgnoreOptions(nil)
	ignorePatterns, ignoreError := config.LoadVaultIgnorePatterns(vaultDirectory, ignoreOptions)
	if ignoreError != nil {
		return fmt.Errorf(errorLoadIgnorePatternsFormat, vaultDirectory, ignoreError)
	}
	logger.Debug("loaded ignore patterns", zap.String("vault", vaultDirectory), zap.Strings("patterns", ignorePatterns))

	scannedVault, scanError := vault.Scan(vaultDirectory, vault.ScanOptions{
		Name:           generateConfiguration.VaultName,
		IgnorePatterns: ignorePatterns,
		Warn:           func(message string) { logger.Warn(message) },
	})
	if scanError != nil {
		return fmt.Errorf(errorScanVaultFormat, scanError)
	}

	activeFilePath, relativeError := scannedVault.RelativePath(absoluteNotePath)
	if relativeError != nil {
		logger.Debug("note is outside the vault", zap.String("note", absoluteNotePath), zap.Error(relativeError))
		activeFilePath = ""
	}

	settingsStore := settings.NewStore(settings.DataFilePath(vaultDirectory))
	currentSettings, settingsError := settingsStore.Load()
	if settingsError != nil {
		return fmt.Errorf(errorLoadSettingsFormat, settingsError)
	}
	useRelativePaths := currentSettings.UseRelativePaths
	if options.relativeRequested {
		useRelativePaths = options.relative
	}

	workspace := &editor.Workspace{
		Vault:          scannedVault,
		ActiveFilePath: activeFilePath,
		Cursor:         options.cursor,
	}
	inserter := commands.NewFileTreeInserter(commandEnvironment.notifier, logger)
	result, insertError := inserter.InsertFileTree(ctx, workspace, commands.InsertOptions{
		UseRelativePaths: useRelativePaths,
		Strict:           config.BoolValue(generateConfiguration.Strict, false),
		DryRun:           options.stdout || options.preview,
		Language:         collationLanguage,
	})
	if insertError != nil {
		return insertError
	}

	if options.preview {
		if previewError := commandEnvironment.preview.WritePreview(commandEnvironment.output, result.Markdown); previewError != nil {
			return previewError
		}
	} else if options.stdout {
		if _, writeError := fmt.Fprint(commandEnvironment.output, result.Markdown); writeError != nil {
			return writeError
		}
	}

	if config.BoolValue(generateConfiguration.Copy, false) {
		if commandEnvironment.clipboard == nil {
			return fmt.Errorf(clipboardCopyErrorFormat, errClipboardServiceMissing)
		}
		if copyError := commandEnvironment.clipboard.Copy(result.Markdown); copyError != nil {
			return fmt.Errorf(clipboardCopyErrorFormat, copyError)
		}
	}
	return nil
}

// applyGenerateFlags overlays explicitly set flags onto the loaded configuration.
func applyGenerateFlags(configuration config.GenerateConfiguration, options generateOptions) config.GenerateConfiguration {
	override := config.GenerateConfiguration{
		Vault:     strings.TrimSpace(options.vaultDirectory),
		VaultName: strings.TrimSpace(options.vaultName),
		Locale:    strings.TrimSpace(options.locale),
	}
	if options.changedFlags[copyFlagName] {
		override.Copy = boolPointer(options.copyEnabled)
	}
	if options.changedFlags[strictFlagName] {
		override.Strict = boolPointer(options.strict)
	}
	if options.changedFlags[noGitignoreFlagName] {
		override.Paths.UseGitignore = boolPointer(!options.paths.disableGitignore)
	}
	if options.changedFlags[noIgnoreFlagName] {
		override.Paths.UseIgnoreFile = boolPointer(!options.paths.disableIgnoreFile)
	}
	if options.changedFlags[includeHiddenFlagName] {
		override.Paths.IncludeHidden = boolPointer(options.paths.includeHidden)
	}
	merged := config.ApplicationConfiguration{Generate: configuration}.Merge(config.ApplicationConfiguration{Generate: override})
	if len(options.paths.exclusionPatterns) > 0 {
		merged.Generate.Paths.Exclude = append(append([]string{}, configuration.Paths.Exclude...), options.paths.exclusionPatterns...)
	}
	return merged.Generate
}

// resolveVaultDirectory returns the configured vault directory or the nearest
// vault above startPath.
func resolveVaultDirectory(workingDirectory string, configuredDirectory string, startPath string) (string, error) {
	if configuredDirectory != "" {
		return filepath.Abs(resolveAgainst(workingDirectory, configuredDirectory))
	}
	return vault.FindRoot(startPath)
}

func resolveAgainst(workingDirectory string, path string) string {
	if filepath.IsAbs(path) || workingDirectory == "" {
		return path
	}
	return filepath.Join(workingDirectory, path)
}

func boolPointer(value bool) *bool {
	return &value
}
