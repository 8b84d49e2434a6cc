package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olivier-w/motionsim/internal/config"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	out, prefix := log.Writer(), log.Prefix()
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetPrefix(prefix)
	})
}

func TestSetupLoggingWritesToFile(t *testing.T) {
	restoreLogger(t)
	cfg := config.Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "debug.log")

	closeLog, err := setupLogging(cfg, func(string) string { return "" })
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	log.Printf("hello from the test")
	closeLog()

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello from the test") {
		t.Fatalf("expected log line, got %q", data)
	}
}

func TestSetupLoggingDebugEnvUsesDefaultFile(t *testing.T) {
	restoreLogger(t)
	restore := chdirTemp(t)
	defer restore()

	closeLog, err := setupLogging(config.Default(), func(key string) string {
		if key == config.EnvDebug {
			return "1"
		}
		return ""
	})
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	closeLog()

	if _, err := os.Stat(defaultLogFile); err != nil {
		t.Fatalf("expected %s: %v", defaultLogFile, err)
	}
}

func TestSetupLoggingDiscardsByDefault(t *testing.T) {
	restoreLogger(t)
	restore := chdirTemp(t)
	defer restore()

	closeLog, err := setupLogging(config.Default(), func(string) string { return "" })
	if err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	closeLog()

	if _, err := os.Stat(defaultLogFile); !os.IsNotExist(err) {
		t.Fatalf("expected no log file, got %v", err)
	}
}

func chdirTemp(t *testing.T) func() {
	t.Helper()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir temp dir: %v", err)
	}
	return func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatalf("restore cwd: %v", err)
		}
	}
}
