package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ConfigFile marks the root of a site.
const ConfigFile = "folio.yaml"

// ErrRootNotFound is returned by FindRoot when no site root encloses the start directory.
var ErrRootNotFound = errors.New("root not found")

// FindRoot looks upwards from startDir for the directory holding ConfigFile
// and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ConfigFile) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", ErrRootNotFound
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
