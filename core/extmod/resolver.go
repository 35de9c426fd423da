package extmod

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrModuleNotFound is returned when no file exists at the resolved location.
var ErrModuleNotFound = errors.New("dispatch module not found")

// Resolve turns a user-provided module location into the absolute path of an
// existing file. Relative locations are anchored at runDir. The returned
// error names both the resolved path and the inputs, so a user can tell
// whether the location or the anchor directory is wrong.
func Resolve(runDir, loc string) (string, error) {
	if loc == "" {
		return "", fmt.Errorf("%w: empty module location", ErrModuleNotFound)
	}
	path := loc
	if !filepath.IsAbs(path) {
		path = filepath.Join(runDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve module location %q: %w", loc, err)
	}
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return "", fmt.Errorf("%w at %q: check the location %q against the run directory %q",
			ErrModuleNotFound, abs, loc, runDir)
	}
	return abs, nil
}
