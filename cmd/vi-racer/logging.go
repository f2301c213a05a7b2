package main

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	logDir      = "logs"
	logFileName = "vi-racer.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging routes all logging to logs/vi-racer.log when debug is set, and discards it otherwise
// The terminal owns stdout and stderr while the game runs
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetDefault(log.NewWithOptions(io.Discard, log.Options{}))
		stdlog.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		stdlog.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	rotateLog(logPath)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		stdlog.SetOutput(io.Discard)
		return nil
	}

	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.StampMilli,
		Prefix:          "vi-racer",
		Level:           log.DebugLevel,
	})
	log.SetDefault(logger)

	// Libraries using the standard logger land in the same file
	std := logger.StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})
	stdlog.SetFlags(0)
	stdlog.SetOutput(std.Writer())

	log.Info("logging started", "pid", os.Getpid())
	return file
}

// rotateLog moves an oversized log aside under a timestamped name
func rotateLog(path string) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	base := strings.TrimSuffix(logFileName, filepath.Ext(logFileName))
	rotated := filepath.Join(logDir, fmt.Sprintf("%s-%s.log", base, time.Now().Format("20060102-150405")))
	if err := os.Rename(path, rotated); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to rotate log file: %v\n", err)
	}
}
