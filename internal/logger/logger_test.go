package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLevelsWrittenToFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Console = false
			opts.Compress = false
			opts.Level = tt.level
			opts.File = filepath.Join(dir, tt.level+".log")

			log := New(opts)
			log.Debug("debug message")
			log.Info("info message")
			log.Warn("warn message", zap.Int("site", 3))
			log.Error("error message")
			_ = log.Sync()

			content, err := os.ReadFile(opts.File)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			for _, exp := range tt.expected {
				if !strings.Contains(string(content), `"`+exp+`"`) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(string(content), `"`+exc+`"`) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestNoOutputsIsNop(t *testing.T) {
	log := New(Options{})
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected a logger with no outputs to be disabled")
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("nonsense") != zapcore.InfoLevel {
		t.Error("expected unknown level to default to info")
	}
	if ParseLevel("debug") != zapcore.DebugLevel {
		t.Error("expected debug")
	}
}
