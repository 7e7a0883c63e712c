// Package config loads ignore files and application configuration.
package config

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/filetree/internal/utils"
)

const (
	// obsidianDirectoryPattern excludes the vault configuration directory.
	obsidianDirectoryPattern = utils.ObsidianDirectoryName + "/"
	// hiddenEntryPattern excludes every dot-prefixed file and folder, which the host never lists.
	hiddenEntryPattern = ".*"
	// gitDirectoryPattern excludes the Git directory when hidden entries are included.
	gitDirectoryPattern = utils.GitDirectoryName + "/"
	// commentPrefix starts a comment line in ignore files.
	commentPrefix = "#"
)

// LoadIgnoreFilePatterns reads an ignore file and returns its patterns.
// A missing file yields no patterns.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return ignorePatterns, nil
}

// VaultIgnoreOptions selects the sources of vault ignore patterns.
type VaultIgnoreOptions struct {
	ExclusionPatterns []string
	UseGitignore      bool
	UseIgnoreFile     bool
	IncludeHidden     bool
}

// LoadVaultIgnorePatterns walks vaultDirectory and aggregates ignore patterns.
// Patterns from utils.IgnoreFileName and utils.GitIgnoreFileName in nested
// directories are prefixed with that directory's vault path. The vault
// configuration directory is always excluded; other hidden entries are
// excluded unless IncludeHidden is set. Exclusion patterns are appended last.
func LoadVaultIgnorePatterns(vaultDirectory string, options VaultIgnoreOptions) ([]string, error) {
	aggregatedPatterns := []string{obsidianDirectoryPattern}
	if options.IncludeHidden {
		aggregatedPatterns = append(aggregatedPatterns, gitDirectoryPattern)
	} else {
		aggregatedPatterns = append(aggregatedPatterns, hiddenEntryPattern)
	}

	walkFunction := func(currentDirectoryPath string, directoryEntry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return walkError
		}
		if !directoryEntry.IsDir() {
			return nil
		}

		relativeDirectory := utils.RelativePathOrSelf(currentDirectoryPath, vaultDirectory)
		if relativeDirectory != "." && utils.ShouldIgnoreByPath(relativeDirectory, aggregatedPatterns) {
			return filepath.SkipDir
		}
		prefix := ""
		if relativeDirectory != "." {
			prefix = relativeDirectory + utils.VaultPathSeparator
		}

		for _, source := range ignoreSources(options) {
			ignoreFilePath := filepath.Join(currentDirectoryPath, source)
			patterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
			if loadError != nil {
				return fmt.Errorf("loading %s from %s: %w", source, currentDirectoryPath, loadError)
			}
			for _, pattern := range patterns {
				aggregatedPatterns = append(aggregatedPatterns, prefix+pattern)
			}
		}
		return nil
	}

	if walkError := filepath.WalkDir(vaultDirectory, walkFunction); walkError != nil {
		return nil, walkError
	}

	deduplicatedPatterns := utils.DeduplicatePatterns(aggregatedPatterns)
	for _, pattern := range options.ExclusionPatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		if !utils.ContainsString(deduplicatedPatterns, trimmedPattern) {
			deduplicatedPatterns = append(deduplicatedPatterns, trimmedPattern)
		}
	}
	return deduplicatedPatterns, nil
}

func ignoreSources(options VaultIgnoreOptions) []string {
	var sources []string
	if options.UseIgnoreFile {
		sources = append(sources, utils.IgnoreFileName)
	}
	if options.UseGitignore {
		sources = append(sources, utils.GitIgnoreFileName)
	}
	return sources
}
