package tokens

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mnedelko/geniable/internal/common"
)

// TokenFileName is the fallback file inside the config directory.
const TokenFileName = "tokens.json"

// FileBackend stores the bundle as an owner-only file under Dir. It is the
// fallback when the platform keyring is unavailable or failing.
type FileBackend struct {
	Dir string
}

// NewFileBackend returns a backend writing to dir. If dir is empty, the
// per-user default ~/.geniable is used.
func NewFileBackend(dir string) *FileBackend {
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".geniable")
		}
	}
	return &FileBackend{Dir: dir}
}

func (f *FileBackend) path() string {
	return filepath.Join(f.Dir, TokenFileName)
}

func (f *FileBackend) Get() (string, error) {
	data, err := os.ReadFile(f.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}
	return string(data), nil
}

// Set writes the value via a temp file followed by a rename, so a concurrent
// reader never observes a partial write.
func (f *FileBackend) Set(value string) error {
	if err := os.MkdirAll(f.Dir, 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	tmp, err := os.CreateTemp(f.Dir, TokenFileName+".*")
	if err != nil {
		return fmt.Errorf("creating token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("restricting token file: %w", err)
	}
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.path()); err != nil {
		return fmt.Errorf("replacing token file: %w", err)
	}
	return nil
}

func (f *FileBackend) Delete() error {
	if err := os.Remove(f.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}
