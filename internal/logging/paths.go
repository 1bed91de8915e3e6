package logging

import (
	"os"
	"path/filepath"
)

// LogFileName is the base name of the eldaracheck log file.
const LogFileName = "eldaracheck.log"

// DefaultLogDir returns the default log directory (~/.eldaracheck/logs/).
// Falls back to the temp directory if the home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".eldaracheck", "logs")
	}
	return filepath.Join(home, ".eldaracheck", "logs")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), LogFileName)
}
