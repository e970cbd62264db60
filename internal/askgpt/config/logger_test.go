package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger_Defaults(t *testing.T) {
	logger, err := NewLogger(NewDefaultConfig().Logging)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	logger, err := NewLogger(Logging{Level: "debug", Format: "json"})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(Logging{Level: "banana", Format: "json"})
	if err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestNewLogger_InvalidFormat(t *testing.T) {
	_, err := NewLogger(Logging{Level: "info", Format: "xml"})
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "askgpt.log")
	logger, err := NewLogger(Logging{Level: "info", Format: "json", File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	logger.Info("written to file")
	logger.Debug("below level")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file = %q, want it to contain the info entry", data)
	}
	if strings.Contains(string(data), "below level") {
		t.Errorf("log file = %q, want debug entry filtered", data)
	}
}
