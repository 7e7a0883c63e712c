// Package settings persists the plugin settings blob inside the vault.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/filetree/internal/filelock"
	"github.com/temirov/filetree/internal/utils"
)

const (
	// PluginIdentifier names the plugin directory under the vault configuration directory.
	PluginIdentifier = "file-tree"
	// DataFileName is the settings file inside the plugin directory.
	DataFileName = "data.json"

	pluginsDirectoryName = "plugins"
	dataFilePermissions  = 0o644
	jsonIndentation      = "  "

	errorReadSettingsFormat   = "read settings from %s: %w"
	errorDecodeSettingsFormat = "decode settings from %s: %w"
	errorEncodeSettingsFormat = "encode settings: %w"
	errorWriteSettingsFormat  = "write settings to %s: %w"
)

// Settings is the persisted plugin configuration.
type Settings struct {
	UseRelativePaths bool `json:"useRelativePaths"`
}

// Defaults returns the settings used when nothing was persisted.
func Defaults() Settings {
	return Settings{UseRelativePaths: false}
}

// DataFilePath returns the settings location for the vault at vaultDirectory.
func DataFilePath(vaultDirectory string) string {
	return filepath.Join(vaultDirectory, utils.ObsidianDirectoryName, pluginsDirectoryName, PluginIdentifier, DataFileName)
}

// Store loads and saves settings at a fixed path.
type Store struct {
	path     string
	settings Settings
}

// NewStore returns a store holding the defaults until Load is called.
func NewStore(path string) *Store {
	return &Store{path: path, settings: Defaults()}
}

// Path returns the settings file location.
func (store *Store) Path() string { return store.path }

// Settings returns the current settings.
func (store *Store) Settings() Settings { return store.settings }

// Load merges the persisted settings over the defaults. A missing file keeps the defaults.
func (store *Store) Load() (Settings, error) {
	merged := Defaults()
	// #nosec G304
	content, readError := os.ReadFile(store.path)
	if readError != nil {
		if os.IsNotExist(readError) {
			store.settings = merged
			return merged, nil
		}
		return Settings{}, fmt.Errorf(errorReadSettingsFormat, store.path, readError)
	}
	if len(content) > 0 {
		if decodeError := json.Unmarshal(content, &merged); decodeError != nil {
			return Settings{}, fmt.Errorf(errorDecodeSettingsFormat, store.path, decodeError)
		}
	}
	store.settings = merged
	return merged, nil
}

// Save writes the current settings atomically under a file lock.
func (store *Store) Save() error {
	encoded, encodeError := json.MarshalIndent(store.settings, "", jsonIndentation)
	if encodeError != nil {
		return fmt.Errorf(errorEncodeSettingsFormat, encodeError)
	}
	if writeError := filelock.LockAndWrite(store.path, encoded, dataFilePermissions); writeError != nil {
		return fmt.Errorf(errorWriteSettingsFormat, store.path, writeError)
	}
	return nil
}

// SetUseRelativePaths updates the link style and saves immediately.
func (store *Store) SetUseRelativePaths(useRelativePaths bool) error {
	store.settings.UseRelativePaths = useRelativePaths
	return store.Save()
}
