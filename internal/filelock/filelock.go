// Package filelock serializes writers of vault files across processes and
// replaces file contents atomically.
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const (
	lockDirectoryName     = "filetree-locks"
	lockFileSuffix        = ".lock"
	temporaryFilePattern  = ".filetree-*"
	directoryPermissions  = 0o755
	errorLockFormat       = "acquire lock on %s: %w"
	errorUnlockFormat     = "release lock on %s: %w"
	errorCreateDirFormat  = "create directory %s: %w"
	errorCreateTempFormat = "create temporary file in %s: %w"
	errorWriteTempFormat  = "write temporary file %s: %w"
	errorRenameFormat     = "replace %s: %w"
)

// FileLock guards a target file through a lock file kept outside the vault.
type FileLock struct {
	lock *flock.Flock
	path string
}

// NewFileLock creates a lock for targetPath. Every process locking the same
// absolute target path derives the same lock file under the temporary
// directory.
func NewFileLock(targetPath string) *FileLock {
	lockPath := lockPathFor(targetPath)
	return &FileLock{lock: flock.New(lockPath), path: lockPath}
}

func lockPathFor(targetPath string) string {
	absolutePath, absoluteError := filepath.Abs(targetPath)
	if absoluteError != nil {
		absolutePath = filepath.Clean(targetPath)
	}
	lockName := uuid.NewSHA1(uuid.NameSpaceURL, []byte(absolutePath)).String() + lockFileSuffix
	return filepath.Join(os.TempDir(), lockDirectoryName, lockName)
}

// Lock blocks until the exclusive lock is held.
func (fileLock *FileLock) Lock() error {
	lockDirectory := filepath.Dir(fileLock.path)
	if mkdirError := os.MkdirAll(lockDirectory, directoryPermissions); mkdirError != nil {
		return fmt.Errorf(errorCreateDirFormat, lockDirectory, mkdirError)
	}
	if lockError := fileLock.lock.Lock(); lockError != nil {
		return fmt.Errorf(errorLockFormat, fileLock.path, lockError)
	}
	return nil
}

// Unlock releases the lock.
func (fileLock *FileLock) Unlock() error {
	if unlockError := fileLock.lock.Unlock(); unlockError != nil {
		return fmt.Errorf(errorUnlockFormat, fileLock.path, unlockError)
	}
	return nil
}

// AtomicWrite writes data to a temporary file in the target directory and
// renames it over targetPath so readers never observe a partial write.
func AtomicWrite(targetPath string, data []byte, permissions os.FileMode) (err error) {
	directory := filepath.Dir(targetPath)
	if mkdirError := os.MkdirAll(directory, directoryPermissions); mkdirError != nil {
		return fmt.Errorf(errorCreateDirFormat, directory, mkdirError)
	}

	temporaryFile, createError := os.CreateTemp(directory, temporaryFilePattern)
	if createError != nil {
		return fmt.Errorf(errorCreateTempFormat, directory, createError)
	}
	temporaryPath := temporaryFile.Name()
	defer func() {
		if err != nil {
			_ = temporaryFile.Close()
			_ = os.Remove(temporaryPath)
		}
	}()

	if _, writeError := temporaryFile.Write(data); writeError != nil {
		return fmt.Errorf(errorWriteTempFormat, temporaryPath, writeError)
	}
	if syncError := temporaryFile.Sync(); syncError != nil {
		return fmt.Errorf(errorWriteTempFormat, temporaryPath, syncError)
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		return fmt.Errorf(errorWriteTempFormat, temporaryPath, closeError)
	}
	if chmodError := os.Chmod(temporaryPath, permissions); chmodError != nil {
		return fmt.Errorf(errorWriteTempFormat, temporaryPath, chmodError)
	}
	if renameError := os.Rename(temporaryPath, targetPath); renameError != nil {
		return fmt.Errorf(errorRenameFormat, targetPath, renameError)
	}
	return nil
}

// LockAndWrite holds the lock of targetPath while atomically replacing its contents.
func LockAndWrite(targetPath string, data []byte, permissions os.FileMode) (err error) {
	fileLock := NewFileLock(targetPath)
	if lockError := fileLock.Lock(); lockError != nil {
		return lockError
	}
	defer func() {
		if unlockError := fileLock.Unlock(); unlockError != nil && err == nil {
			err = unlockError
		}
	}()
	return AtomicWrite(targetPath, data, permissions)
}
