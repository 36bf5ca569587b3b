package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const LockFileName = ".novelpiad.lock"

var ErrLocked = errors.New("another novelpiad run is using this output folder")

// LockOutput takes an exclusive lock on the output folder. The returned
// function releases it.
func LockOutput(outputDir string) (func(), error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(outputDir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, outputDir)
	}

	return func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}, nil
}
