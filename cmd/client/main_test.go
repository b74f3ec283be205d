// cmd/client/main_test.go
package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opd-ai/go-glide/pkg/config"
	"github.com/opd-ai/go-glide/pkg/logging"
)

func TestTerminalLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.log")

	logger, closeLog, err := terminalLogger(path)
	if err != nil {
		t.Fatalf("terminalLogger() failed: %v", err)
	}
	logger.Info(context.Background(), "Ship arrived")
	if err := closeLog(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"Ship arrived"`) {
		t.Errorf("log file = %q, expected the arrival entry", data)
	}
}

func TestTerminalLogger_NoPathDiscards(t *testing.T) {
	logger, closeLog, err := terminalLogger("")
	if err != nil {
		t.Fatalf("terminalLogger() failed: %v", err)
	}
	if logger == nil {
		t.Fatal("terminalLogger() returned a nil logger")
	}
	if err := closeLog(); err != nil {
		t.Errorf("close failed: %v", err)
	}
}

func TestTerminalLogger_BadPath(t *testing.T) {
	if _, _, err := terminalLogger(filepath.Join(t.TempDir(), "missing", "client.log")); err == nil {
		t.Error("terminalLogger() should fail for a missing directory")
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(config.EnvWidth, "")
	t.Setenv(config.EnvHeight, "")

	cfg, err := loadConfig(context.Background(), logging.Discard(), filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Window.Width != config.DefaultConfig().Window.Width {
		t.Errorf("Width = %d, expected the default", cfg.Window.Width)
	}
}
