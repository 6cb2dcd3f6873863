package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/markdata/internal/styles"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	tableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// ElementRow is one parsed element of the browsed document
type ElementRow struct {
	Index   int    // position in the element sequence, 0-based
	Kind    string
	Lines   string // "start-end" source span
	Preview string // first content line, truncated
}

// BrowseData holds the parsed document summary
type BrowseData struct {
	File     string
	Elements []ElementRow
}

// BrowseMsg is sent when browse data is ready
type BrowseMsg struct {
	Data *BrowseData
	Err  error
}

// PreviewMsg is sent when an element preview is ready
type PreviewMsg struct {
	Index   int
	Content string
	Err     error
}

type focusArea int

const (
	focusTable focusArea = iota
	focusPreview
	focusFilter
)

type browseModel struct {
	table    table.Model
	viewport viewport.Model
	filter   textinput.Model
	data     *BrowseData
	visible  []ElementRow
	err      error
	ready    bool
	focus    focusArea
	width    int
	height   int
	// previewFunc renders one element by sequence position
	previewFunc func(index int) (string, error)
}

// InitBrowseModel creates a new element browser model
func InitBrowseModel(previewFunc func(int) (string, error)) browseModel {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Kind", Width: 12},
		{Title: "Lines", Width: 9},
		{Title: "Preview", Width: 52},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(styles.Background)).
		Background(lipgloss.Color(styles.Yellow)).
		Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 12)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		Padding(0, 1)

	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter by kind or text"
	ti.CharLimit = 64

	return browseModel{
		table:       t,
		viewport:    vp,
		filter:      ti,
		previewFunc: previewFunc,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		half := msg.Height/2 - 5
		if half < 5 {
			half = 5
		}
		m.table.SetHeight(half)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = half

	case tea.KeyMsg:
		switch m.focus {
		case focusFilter:
			switch msg.String() {
			case "esc":
				m.filter.SetValue("")
				m.filter.Blur()
				m.focus = focusTable
				m.applyFilter()
				return m, m.loadPreview()
			case "enter":
				m.filter.Blur()
				m.focus = focusTable
				return m, m.loadPreview()
			default:
				m.filter, cmd = m.filter.Update(msg)
				m.applyFilter()
				return m, cmd
			}

		case focusPreview:
			switch msg.String() {
			case "q", "esc", "ctrl+c":
				return m, tea.Quit
			case "enter":
				m.focus = focusTable
				return m, nil
			case "up", "k", "down", "j", "pgup", "pgdown":
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}

		default: // focusTable
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "esc":
				if m.filter.Value() != "" {
					m.filter.SetValue("")
					m.applyFilter()
					return m, m.loadPreview()
				}
				return m, tea.Quit
			case "/":
				m.focus = focusFilter
				m.filter.Focus()
				return m, textinput.Blink
			case "enter":
				m.focus = focusPreview
				return m, m.loadPreview()
			case "up", "k", "down", "j":
				m.table, cmd = m.table.Update(msg)
				return m, tea.Batch(cmd, m.loadPreview())
			}
		}

	case BrowseMsg:
		m.ready = true
		m.data = msg.Data
		m.err = msg.Err
		if m.data != nil {
			m.applyFilter()
			return m, m.loadPreview()
		}
		return m, nil

	case PreviewMsg:
		if msg.Err != nil {
			m.viewport.SetContent(errorStyle.Render("✗ " + msg.Err.Error()))
		} else {
			m.viewport.SetContent(msg.Content)
		}
		m.viewport.GotoTop()
		return m, nil
	}

	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Markdata Browser"))
	b.WriteString("\n\n")

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.data == nil {
		b.WriteString(labelStyle.Render("Parsing..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render("File: "))
	b.WriteString(valueStyle.Render(m.data.File))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Elements: %d of %d", len(m.visible), len(m.data.Elements))))
	b.WriteString("\n\n")

	if m.focus == focusFilter || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	switch m.focus {
	case focusFilter:
		b.WriteString(helpStyle.Render("enter apply • esc clear"))
	case focusPreview:
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter focus table • esc/q quit"))
	default:
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter focus preview • / filter • esc/q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

// applyFilter rebuilds the visible rows from the filter text
func (m *browseModel) applyFilter() {
	if m.data == nil {
		return
	}

	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for _, row := range m.data.Elements {
		if query == "" ||
			strings.Contains(strings.ToLower(row.Kind), query) ||
			strings.Contains(strings.ToLower(row.Preview), query) {
			m.visible = append(m.visible, row)
		}
	}

	rows := []table.Row{}
	for _, row := range m.visible {
		// The raw index, so the value feeds straight into md --include
		rows = append(rows, table.Row{
			strconv.Itoa(row.Index),
			row.Kind,
			row.Lines,
			row.Preview,
		})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

// loadPreview creates a command that renders the selected element
func (m browseModel) loadPreview() tea.Cmd {
	if len(m.visible) == 0 {
		return nil
	}
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.visible) {
		cursor = 0
	}
	index := m.visible[cursor].Index

	return func() tea.Msg {
		if m.previewFunc == nil {
			return PreviewMsg{Index: index, Err: fmt.Errorf("no preview source")}
		}
		content, err := m.previewFunc(index)
		return PreviewMsg{Index: index, Content: content, Err: err}
	}
}
