package cli

import (
	"fmt"
	"os"
	"path/filepath"
)

// resultFilePerm is the permission for result artifacts.
const resultFilePerm = 0o600

// resultDirPerm is the permission for result directories.
const resultDirPerm = 0o750

// writeResult writes one artifact into the run directory.
func writeResult(dir, name string, data []byte) error {
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, data, resultFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// makeRunDir creates a fresh timestamped directory under resultsDir.
func makeRunDir(resultsDir, stamp string) (string, error) {
	dir := filepath.Join(resultsDir, stamp)
	if err := os.MkdirAll(dir, resultDirPerm); err != nil {
		return "", fmt.Errorf("create results directory: %w", err)
	}
	return dir, nil
}
