// Package ui implements the read-only scenario-results browser: a list of
// a carrier's scenario runs, and a detail view of a completed run's
// per-month headcount summary.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mergeops/seniority-engine/internal/dtos"
	"github.com/mergeops/seniority-engine/internal/services"
)

type viewState int

const (
	stateList viewState = iota
	stateDetail
)

// ScenarioRow is one entry in the list view: the summary response plus the
// decoded result summary, if the run is done.
type ScenarioRow struct {
	Response dtos.ScenarioResponse
	Summary  *services.ScenarioSummary
}

// Model is the root bubbletea model for the scenario browser.
type Model struct {
	rows  []ScenarioRow
	state viewState

	cursor   int
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// New builds a Model from the rows fetched at startup.
func New(rows []ScenarioRow) Model {
	return Model{rows: rows, state: stateList}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.state == stateDetail {
				m.state = stateList
				if m.ready {
					m.viewport.SetContent(m.renderList())
				}
			}
		case "enter":
			if m.state == stateList && len(m.rows) > 0 {
				m.state = stateDetail
				if m.ready {
					m.viewport.SetContent(m.renderDetail())
				}
			}
		case "up", "k":
			if m.state == stateList && m.cursor > 0 {
				m.cursor--
				if m.ready {
					m.viewport.SetContent(m.renderList())
				}
			}
		case "down", "j":
			if m.state == stateList && m.cursor < len(m.rows)-1 {
				m.cursor++
				if m.ready {
					m.viewport.SetContent(m.renderList())
				}
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
		if m.state == stateDetail {
			m.viewport.SetContent(m.renderDetail())
		} else {
			m.viewport.SetContent(m.renderList())
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

var (
	bold      = lipgloss.NewStyle().Bold(true)
	muted     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	highlight = lipgloss.NewStyle().Background(lipgloss.Color("#1F2937"))
)

func statusIcon(status string) string {
	switch status {
	case "done":
		return "✓"
	case "failed":
		return "✗"
	case "running":
		return "…"
	default:
		return "·"
	}
}

func (m Model) renderList() string {
	if len(m.rows) == 0 {
		return "\n  No scenario runs for this carrier"
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, row := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		finished := "pending"
		if row.Response.FinishedAt != nil {
			finished = row.Response.FinishedAt.Format(time.RFC3339)
		}
		line := fmt.Sprintf("%s%s %-30s %-10s %s",
			cursor, statusIcon(row.Response.Status), row.Response.Name, row.Response.Status, muted.Render(finished))
		if i == m.cursor {
			line = highlight.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderDetail() string {
	if m.cursor >= len(m.rows) {
		return "\n  No scenario selected"
	}
	row := m.rows[m.cursor]

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(bold.Render(row.Response.Name))
	b.WriteString(fmt.Sprintf("  %s\n\n", muted.Render(row.Response.Status)))

	if row.Response.ErrorMessage != "" {
		b.WriteString(fmt.Sprintf("  error: %s\n", row.Response.ErrorMessage))
		return b.String()
	}

	if row.Summary == nil {
		b.WriteString("  no result summary yet - run the scenario first\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %-6s %-10s %-10s %-10s\n", "month", "active", "assigned", "furloughed"))
	for _, ms := range row.Summary.Months {
		b.WriteString(fmt.Sprintf("  %-6d %-10d %-10d %-10d\n", ms.Mnum, ms.Active, ms.Assigned, ms.Furloughed))
	}

	b.WriteString("\n  final month rank distribution\n")
	for level := 1; level <= len(row.Summary.FinalRank); level++ {
		count, ok := row.Summary.FinalRank[level]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("  level %-4d %d holders\n", level, count))
	}
	return b.String()
}

func (m Model) View() string {
	header := " scenario results  (↑/↓ select, enter view, esc back, q quit)"
	if !m.ready {
		return header
	}
	return bold.Render(header) + "\n" + m.viewport.View()
}
