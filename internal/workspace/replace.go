package workspace

import (
	"fmt"
	"os"
)

const backupSuffix = ".motion-core.bak"

// ReplaceFile rewrites an existing file with new contents under a
// backup-restore discipline: the original is copied aside first, the new
// contents are written, and the backup is removed on success or restored on
// failure. Rewrites of files the user owns (like the Tailwind entry CSS) go
// through here so an interrupted write never leaves the file truncated.
func ReplaceFile(path string, contents []byte) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s before replace: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	mode := info.Mode()

	backupPath := path + backupSuffix
	if err := os.WriteFile(backupPath, original, mode); err != nil {
		return fmt.Errorf("creating backup %s: %w", backupPath, err)
	}

	if writeErr := os.WriteFile(path, contents, mode); writeErr != nil {
		if restoreErr := os.WriteFile(path, original, mode); restoreErr != nil {
			return fmt.Errorf("write failed: %v; failed to restore backup from %s: %w", writeErr, backupPath, restoreErr)
		}
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}

	os.Remove(backupPath)
	return nil
}
