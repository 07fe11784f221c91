package main

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhdewitt/memwatch/internal/pressure"
	"github.com/nhdewitt/memwatch/internal/sampler"
)

const refreshEvery = time.Second

type tickMsg time.Time

type model struct {
	sampler *sampler.Sampler
	latest  *sampler.Result
}

func newModel(s *sampler.Sampler) *model {
	return &model{sampler: s}
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) Init() tea.Cmd {
	return tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tickMsg:
		// The view only ever reads the last published sample; it never
		// triggers sampling itself.
		m.latest = m.sampler.Latest()
		return m, tick()
	}
	return m, nil
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("memwatch"))
	b.WriteRune('\n')

	if m.latest == nil {
		b.WriteString(messageStyle.Render("waiting for first sample..."))
		b.WriteString("\n\n(q to quit)\n")
		return b.String()
	}

	b.WriteString(badgeFor(m.latest.Level))
	b.WriteRune('\n')
	b.WriteString(statStyle.Render(m.latest.Stats.MemoryLine()))
	b.WriteRune('\n')
	b.WriteString(statStyle.Render(m.latest.Stats.SwapLine()))
	b.WriteRune('\n')
	b.WriteString(footerStyle.Render("sampled " + m.latest.Timestamp.Format("15:04:05")))
	b.WriteString("\n\n(q to quit)\n")

	return b.String()
}

func badgeFor(level pressure.Level) string {
	switch level {
	case pressure.Critical:
		return criticalStyle.Render("● CRITICAL")
	case pressure.Warning:
		return warningStyle.Render("● WARNING")
	default:
		return normalStyle.Render("● NORMAL")
	}
}
