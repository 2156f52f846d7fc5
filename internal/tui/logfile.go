package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the default path of the bbt log file.
// If BBT_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.bbt/logs/bbt.log
func GetLogFilePath() string {
	if customPath := os.Getenv("BBT_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "bbt.log"
	}

	return filepath.Join(homeDir, ".bbt", "logs", "bbt.log")
}
