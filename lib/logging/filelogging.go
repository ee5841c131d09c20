package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/ziflex/lecho/v3"
)

// Logger writes to STDOUT, or to a dated file when logFilePath is set.
func Logger(logFilePath string) *lecho.Logger {
	logger := lecho.New(
		os.Stdout,
		lecho.WithLevel(log.DEBUG),
		lecho.WithTimestamp(),
	)
	if logFilePath != "" {
		file, err := GetLoggingFile(logFilePath)
		if err != nil {
			logger.Errorf("failed to create logging file: %v", err)
			return logger
		}
		logger.SetOutput(file)
	}

	return logger
}

// GetLoggingFile appends the current date to the file name, before the
// extension if there is one.
func GetLoggingFile(path string) (*os.File, error) {
	suffix := time.Now().Format("-2006-01-02")
	if extension := filepath.Ext(path); extension != "" {
		path = strings.TrimSuffix(path, extension) + suffix + extension
	} else {
		path = path + suffix + ".log"
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
}
