package output

import (
	"os"
	"path/filepath"
)

// DefaultLogFilePath returns ~/.mocotch/logs/mocotch.log, or mocotch.log in
// the working directory when the home directory is unknown
func DefaultLogFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "mocotch.log"
	}
	return filepath.Join(homeDir, ".mocotch", "logs", "mocotch.log")
}
