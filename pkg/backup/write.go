package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFile replaces the file at name with data. When the file already
// exists its current bytes are saved to store first and the returned key
// names that snapshot; a failed snapshot leaves the file untouched.
// The new contents are written to a temporary file in the same directory
// and renamed over the target.
func WriteFile(ctx context.Context, store Store, name string, data []byte, perm fs.FileMode) (string, error) {
	var key string
	current, err := os.ReadFile(name)
	switch {
	case err == nil:
		if store != nil {
			if key, err = store.Save(ctx, name, current); err != nil {
				return "", err
			}
		}
		if info, statErr := os.Stat(name); statErr == nil {
			perm = info.Mode().Perm()
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	tmpName := tmp.Name()
	cleanup := func(cause error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%w: %w", ErrWriteFailed, cause)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		return cleanup(err)
	}
	if err := os.Rename(tmpName, name); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	return key, nil
}
