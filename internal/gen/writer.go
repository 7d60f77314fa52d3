package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFileAtomic publishes content at path only once it is completely
// written: the bytes go to a temporary file in the same directory which is
// then renamed over path. On failure path is left untouched.
func WriteFileAtomic(path string, content []byte) (err error) {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}

	if err = tmp.Chmod(filePerm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", tmp.Name(), err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("publishing %s: %w", path, err)
	}

	return nil
}
