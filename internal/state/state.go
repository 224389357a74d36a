// Package state persists the identifier of the last uploaded artwork so the
// next run can retire it from the TV.
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	stateDirName  = ".frame-automation"
	stateFileName = "last_content_id"
)

// Path returns the state file location under the user's home directory.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, stateDirName, stateFileName), nil
}

// ReadLastContentID returns the stored content identifier, trimmed of
// whitespace. The second return is false when no usable state exists.
func ReadLastContentID() (string, bool) {
	path, err := Path()
	if err != nil {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", false
	}
	return id, true
}

// WriteLastContentID stores the content identifier, creating the state
// directory when missing and overwriting any previous value.
func WriteLastContentID(id string) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(id), 0644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}
