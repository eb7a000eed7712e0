package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")

	logger, err := NewLogger("debug", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("collection started")
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not created: %v", err)
	}
	if !strings.Contains(string(data), "collection started") || !strings.Contains(string(data), "INFO") {
		t.Fatalf("unexpected log output: %s", data)
	}
}

func TestNewLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	logger, err := NewLogger("chatty", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("unknown level must fall back to info, not debug")
	}
	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info must be enabled")
	}
}
