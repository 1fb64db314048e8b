// Package filex holds local filesystem checks for files that are attached to
// platform containers.
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/bidscurator/internal/common"
)

// RegularFile resolves path to an absolute path and checks that it names an
// existing regular file. A missing path or a directory yields an error
// wrapping common.ErrorFileMissing.
func RegularFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", path, err)
	}

	fi, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", path, common.ErrorFileMissing)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	if !fi.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file: %w", path, common.ErrorFileMissing)
	}

	return abs, nil
}
