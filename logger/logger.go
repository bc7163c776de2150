package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	InfoLogger  *logrus.Logger
	WarnLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

// InitLoggers sets up the shared loggers. Each level writes to its own
// rotated file under LOG_DIR (default "logs") and to stdout/stderr.
func InitLoggers() {
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	InfoLogger = newLogger(filepath.Join(logDir, "info.log"), logrus.InfoLevel, os.Stdout)
	WarnLogger = newLogger(filepath.Join(logDir, "warn.log"), logrus.WarnLevel, os.Stdout)
	ErrorLogger = newLogger(filepath.Join(logDir, "error.log"), logrus.ErrorLevel, os.Stderr)
}

func newLogger(file string, level logrus.Level, console io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetOutput(io.MultiWriter(console, &lumberjack.Logger{
		Filename:   file,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}))
	return l
}
