package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/motionsim/internal/chime"
	"github.com/olivier-w/motionsim/internal/config"
	"github.com/olivier-w/motionsim/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg, os.Getenv)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.Headless {
		sc := cfg.Current()
		if cfg.Scenario != "" {
			sc, err = resolveScenario(ui.ScenarioSelectedMsg{Path: cfg.Scenario}, cfg.Params)
			if err != nil {
				return err
			}
		}
		sum, err := runHeadless(sc, cfg.Step, cfg.OutDir)
		if err != nil {
			return err
		}
		return writeSummary(os.Stdout, sum)
	}

	s := session{cfg: cfg}
	if cfg.Chime {
		c, err := chime.Load(cfg.ChimeFile, cfg.ChimeVolume)
		if err != nil {
			log.Printf("chime disabled: %v", err)
		} else {
			defer c.Close()
			s.notifier = c
		}
	}

	var model tea.Model
	if cfg.Scenario != "" {
		m, err := buildSimModel(ui.ScenarioSelectedMsg{Path: cfg.Scenario}, s)
		if err != nil {
			return err
		}
		model = m
	} else {
		model = newStartupModel(s)
	}

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	return err
}
