package main

import (
	"errors"
	"log"
	"os"
	"strings"

	"aicontext/cmd"
	"aicontext/pkg/logging"
	"aicontext/pkg/version"

	"go.uber.org/zap"
	"golang.org/x/term"
)

func main() {
	if _, err := logging.Setup(false, version.AppName, version.Get().Version); err != nil {
		log.Printf("Failed to initialize logger, using fallback: %v", err)
	}

	// Only this function decides the exit code.
	err := cmd.Execute()
	logger := logging.Logger
	if err != nil {
		logger.Error("ai-context execution failed", zap.Error(err))
		syncLogger(logger)
		os.Exit(1)
	}
	syncLogger(logger)
}

// syncLogger flushes the logger when stderr supports it. Syncing a pipe or
// console returns EINVAL on some platforms, which is not worth reporting.
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if err := logger.Sync(); err != nil {
		if errors.Is(err, os.ErrInvalid) || strings.Contains(strings.ToLower(err.Error()), "invalid argument") {
			return
		}
		log.Printf("Logger sync failed: %v", err)
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
