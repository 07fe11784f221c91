package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nhdewitt/memwatch/internal/counters"
	"github.com/nhdewitt/memwatch/internal/report"
	"github.com/nhdewitt/memwatch/internal/sampler"
)

func main() {
	// Keep engine logging out of the TUI.
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(logrus.ErrorLevel)

	interval := sampler.DefaultInterval
	if raw := os.Getenv("MEMWATCH_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			interval = d
		}
	}

	s := sampler.New(counters.NewSource(), report.NewRunner(), interval)
	s.Start()
	defer s.Stop()

	p := tea.NewProgram(newModel(s))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
