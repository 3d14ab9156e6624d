package xmldoc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound indicates that a logical config file does not exist under
// the home directory. Callers classify it with errors.Is.
var ErrNotFound = errors.New("config file not found")

// ResolveConfigFile maps a logical config file name to an absolute path
// under homeDir and verifies that a regular file exists there. No other
// validation is performed.
func ResolveConfigFile(homeDir, logicalName string) (string, error) {
	fpath := filepath.Join(homeDir, logicalName)
	info, err := os.Stat(fpath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s in home directory %s", ErrNotFound, logicalName, homeDir)
		}
		return "", fmt.Errorf("stat %s: %w", fpath, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s in home directory %s is a directory", ErrNotFound, logicalName, homeDir)
	}
	return fpath, nil
}
