package main

import (
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/motionsim/internal/config"
)

const defaultLogFile = "motionsim.log"

// setupLogging routes the standard logger. The TUI owns the terminal, so
// interactive runs log to a file only when asked and discard otherwise.
func setupLogging(cfg config.Config, getenv func(string) string) (func(), error) {
	if cfg.Headless {
		log.SetOutput(os.Stderr)
		log.SetPrefix("motionsim: ")
		return func() {}, nil
	}

	path := cfg.LogFile
	if path == "" && getenv(config.EnvDebug) != "" {
		path = defaultLogFile
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	f, err := tea.LogToFile(path, "motionsim")
	if err != nil {
		return nil, err
	}
	return func() { f.Close() }, nil
}
