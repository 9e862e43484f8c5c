// Package atomicfile writes files through a temporary sibling that replaces
// the destination only once it is complete.
package atomicfile

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultMode is the mode for new files, before the process umask.
const DefaultMode fs.FileMode = 0644

const maxAttempts = 100

// WriteFile calls write with a temporary file next to path and renames it to
// path if write and close succeed. On error the temporary file is removed and
// path is left as it was. An existing destination keeps its permissions; new
// files get DefaultMode filtered by the umask, as with os.WriteFile.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	tmp, err := createTemp(path)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if info, statErr := os.Stat(path); statErr == nil {
		if err = tmp.Chmod(info.Mode().Perm()); err != nil {
			return fmt.Errorf("setting mode: %w", err)
		}
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming to %s: %w", path, err)
	}
	return nil
}

// createTemp opens a new file named .<base>.<pid>-<n>.tmp in the directory
// of path. Unlike os.CreateTemp the mode is DefaultMode, so the umask applies.
func createTemp(path string) (*os.File, error) {
	dir, base := filepath.Split(path)
	prefix := "." + base + "." + strconv.Itoa(os.Getpid()) + "-"

	for n := 0; n < maxAttempts; n++ {
		name := filepath.Join(dir, prefix+strconv.Itoa(n)+".tmp")
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, DefaultMode)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return f, err
	}
	return nil, fmt.Errorf("no free temp name for %s", path)
}
