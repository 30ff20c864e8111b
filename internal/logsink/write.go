package logsink

import (
	"os"
	"path/filepath"
)

// HintFile is written next to an encrypted backup.
const HintFile = "hint.txt"

// WriteHint stores the operator's password hint in dir; an empty hint is a no-op.
func WriteHint(dir, hint string) error {
	if hint == "" {
		return nil
	}
	return os.WriteFile(filepath.Join(dir, HintFile), []byte(hint), 0o600)
}
