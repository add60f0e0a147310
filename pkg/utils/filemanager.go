// =============================================================================
// Australian POS Data Generator - File Utilities
// =============================================================================
//
// Small filesystem helpers shared by the export writers and the CLI. Output
// file naming supports the {timestamp} and {uuid} placeholders so repeated
// runs never clobber each other's artifacts.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnsureDir creates the directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("directory path is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ExpandName substitutes the supported placeholders in an output file name
// pattern:
//
//	{timestamp} - run time as 20060102_150405
//	{uuid}      - random UUID, lowercase
func ExpandName(pattern string) string {
	name := pattern
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	name = strings.ReplaceAll(name, "{uuid}", uuid.NewString())
	return name
}

// WriteSummaryLog writes a run summary next to the generated artifacts and
// returns the path written. The file name carries a timestamp and UUID so
// successive runs in the same directory keep their own summaries.
func WriteSummaryLog(dir, summary string) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, ExpandName("run_summary_{timestamp}_{uuid}.log"))
	if err := os.WriteFile(path, []byte(summary), 0o644); err != nil {
		return "", fmt.Errorf("writing summary log: %w", err)
	}
	return path, nil
}
