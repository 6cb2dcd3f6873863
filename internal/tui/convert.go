package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Margin(1, 0)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212"))
)

// ConvertResult summarizes a batch conversion for display
type ConvertResult struct {
	Converted int
	Skipped   int
	Failed    int
	Errors    []error
	Duration  time.Duration
	Success   bool
}

// ConvertMsg is sent when the batch conversion completes
type ConvertMsg struct {
	Result *ConvertResult
	Err    error
}

// StatusMsg updates the in-progress status line
type StatusMsg string

type convertModel struct {
	spinner  spinner.Model
	status   string
	complete bool
	result   *ConvertResult
	err      error
}

// InitConvertModel creates a new batch conversion progress model
func InitConvertModel() convertModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return convertModel{
		spinner: s,
		status:  "Scanning files...",
	}
}

func (m convertModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m convertModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case StatusMsg:
		m.status = string(msg)
		return m, nil

	case ConvertMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m convertModel) View() string {
	var b strings.Builder

	if m.complete {
		if m.err != nil {
			b.WriteString(errorStyle.Render("✗ Conversion failed: " + m.err.Error()))
			b.WriteString("\n")
		} else if m.result != nil {
			if m.result.Success {
				b.WriteString(successStyle.Render(fmt.Sprintf("✓ Converted %d file(s)", m.result.Converted)))
			} else {
				b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Converted %d file(s), %d failed", m.result.Converted, m.result.Failed)))
			}
			if m.result.Skipped > 0 {
				b.WriteString(highlightStyle.Render(fmt.Sprintf(", %d unchanged", m.result.Skipped)))
			}
			b.WriteString("\n")

			for _, err := range m.result.Errors {
				b.WriteString(errorStyle.Render("  ✗ " + err.Error()))
				b.WriteString("\n")
			}

			b.WriteString(helpStyle.Render(fmt.Sprintf("Completed in %v", m.result.Duration.Round(time.Millisecond))))
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s %s", m.spinner.View(), m.status))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("ctrl+c to cancel"))
	b.WriteString("\n")

	return b.String()
}
