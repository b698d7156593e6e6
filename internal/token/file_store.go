package token

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"voteroom/internal/constants"
)

// FileBackend stores the token as a single file in the user's data
// directory, mode 0600. This is the default backend and the closest
// analog of the browser's localStorage.
type FileBackend struct {
	path string
}

func NewFileBackend() (*FileBackend, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &FileBackend{path: filepath.Join(dir, constants.TokenFileName)}, nil
}

// NewFileBackendAt uses an explicit file path. Used by tests and by
// deployments that keep credentials outside the default data dir.
func NewFileBackendAt(path string) *FileBackend {
	return &FileBackend{path: path}
}

func dataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	var dir string
	switch runtime.GOOS {
	case "windows":
		dir = filepath.Join(homeDir, "AppData", "Local", "voteroom")
	case "darwin":
		dir = filepath.Join(homeDir, "Library", "Application Support", "voteroom")
	default: // linux and others
		dir = filepath.Join(homeDir, ".local", "share", "voteroom")
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			dir = filepath.Join(xdgData, "voteroom")
		}
	}

	return dir, nil
}

func (b *FileBackend) Load() (string, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (b *FileBackend) Save(tok string) error {
	if err := os.WriteFile(b.path, []byte(tok), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (b *FileBackend) Delete() error {
	err := os.Remove(b.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

func (b *FileBackend) Close() error {
	return nil
}

func (b *FileBackend) Path() string {
	return b.path
}
