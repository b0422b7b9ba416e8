package logger

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const logDir = "logs"

// NewLogger builds the JSON logger used across the service. When LOG_FILE is
// set, entries are written asynchronously to logs/<LOG_FILE> and mirrored to
// the console; otherwise they go to stdout.
func NewLogger(service string) *logrus.Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "time",
			logrus.FieldKeyMsg:  "msg",
		},
	})
	logger.SetLevel(levelFromEnv(os.Getenv("LOG_LEVEL")))
	logger.SetOutput(os.Stdout)

	fileName := os.Getenv("LOG_FILE")
	if fileName == "" {
		return logger
	}

	logFile := filepath.Clean(filepath.Join(logDir, fileName))
	if !strings.HasPrefix(logFile, logDir+string(filepath.Separator)) {
		log.Fatalf("Invalid log file path: must be in logs directory")
	}
	if err := os.MkdirAll(logDir, 0750); err != nil {
		log.Fatalf("Failed to create logs directory: %v", err)
	}

	asyncWriter, err := NewAsyncFileWriter(logFile, 32*1024)
	if err != nil {
		log.Fatalf("Failed to initialize async log writer: %v", err)
	}
	logger.SetOutput(asyncWriter)
	logger.AddHook(NewConsoleHook())

	logger.WithField("service", service).Debug("file logging enabled")
	return logger
}

func levelFromEnv(v string) logrus.Level {
	level, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(v)))
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
