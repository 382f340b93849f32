package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/esmconv/convert"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectFile modelState = iota
	stateShowResult
)

// resultView is the pane shown for a converted file.
type resultView int

const (
	viewOutput resultView = iota
	viewDiff
	viewReport
	viewCount
)

func (v resultView) String() string {
	switch v {
	case viewOutput:
		return "output"
	case viewDiff:
		return "diff"
	case viewReport:
		return "report"
	}
	return "unknown"
}

type fileEntry struct {
	err    error
	result *fileResult
	name   string
}

type interactiveModel struct {
	filter   textinput.Model
	pane     viewport.Model
	config   convert.Config
	names    []string
	files    []fileEntry
	visible  []int
	selected int
	width    int
	height   int
	view     resultView
	state    modelState
	loaded   bool
}

type loadedMsg struct {
	files []fileEntry
}

func newInteractiveModel(names []string, cfg convert.Config) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "filter files"
	ti.CharLimit = 256
	ti.Width = 40
	ti.Focus()

	return &interactiveModel{
		filter: ti,
		pane:   viewport.New(80, 20),
		config: cfg,
		names:  names,
		state:  stateSelectFile,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return tea.Batch(m.convertAll, textinput.Blink)
}

func (m *interactiveModel) convertAll() tea.Msg {
	ctx := context.Background()
	opts := options{config: m.config, verify: true}
	files := make([]fileEntry, len(m.names))
	for i, name := range m.names {
		r, err := convertFile(ctx, name, opts)
		files[i] = fileEntry{name: name, result: r, err: err}
	}
	return loadedMsg{files: files}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.pane.Width = msg.Width
		m.pane.Height = max(msg.Height-4, 1)
		return m, nil

	case loadedMsg:
		m.files = msg.files
		m.loaded = true
		m.applyFilter()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateShowResult {
				return m, tea.Quit
			}

		case "esc":
			if m.state == stateShowResult {
				m.state = stateSelectFile
				m.filter.Focus()
				return m, nil
			}
			return m, tea.Quit

		case "up":
			if m.state == stateSelectFile && m.selected > 0 {
				m.selected--
				return m, nil
			}

		case "down":
			if m.state == stateSelectFile && m.selected < len(m.visible)-1 {
				m.selected++
				return m, nil
			}

		case "enter":
			if m.state == stateSelectFile && len(m.visible) > 0 {
				m.state = stateShowResult
				m.view = viewOutput
				m.filter.Blur()
				m.refreshPane()
				return m, nil
			}

		case "tab":
			if m.state == stateShowResult {
				m.view = (m.view + 1) % viewCount
				m.refreshPane()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case stateSelectFile:
		prev := m.filter.Value()
		m.filter, cmd = m.filter.Update(msg)
		if m.filter.Value() != prev {
			m.applyFilter()
		}
	case stateShowResult:
		m.pane, cmd = m.pane.Update(msg)
	}
	return m, cmd
}

func (m *interactiveModel) applyFilter() {
	q := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for i, f := range m.files {
		if q == "" || strings.Contains(strings.ToLower(f.name), q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(len(m.visible)-1, 0)
	}
}

func (m *interactiveModel) current() fileEntry {
	return m.files[m.visible[m.selected]]
}

func (m *interactiveModel) refreshPane() {
	f := m.current()
	if f.err != nil {
		m.pane.SetContent(errorStyle.Render(f.err.Error()))
		m.pane.GotoTop()
		return
	}

	var content string
	switch m.view {
	case viewOutput:
		content = f.result.result.Output
	case viewDiff:
		d, err := unifiedDiff(f.name, f.result.source, f.result.result.Output)
		if err != nil {
			content = errorStyle.Render(err.Error())
		} else if d == "" {
			content = helpStyle.Render("no changes")
		} else {
			content = d
		}
	case viewReport:
		content = resultStyle.Render(f.result.result.Report.String())
	}
	m.pane.SetContent(content)
	m.pane.GotoTop()
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("esmconv"))
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString("Converting files...")
		return b.String()
	}

	switch m.state {
	case stateSelectFile:
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
		if len(m.visible) == 0 {
			b.WriteString(helpStyle.Render("No matching files"))
			b.WriteString("\n")
		}
		for i, idx := range m.visible {
			f := m.files[idx]
			name := "  " + fileStyle.Render(f.name)
			if i == m.selected {
				name = selectedStyle.Render("> " + f.name)
			}
			b.WriteString(name + " " + entrySummary(f))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓: select • type: filter • enter: open • esc: quit"))

	case stateShowResult:
		f := m.current()
		b.WriteString(fileStyle.Render(f.name))
		b.WriteString(" ")
		b.WriteString(countStyle.Render("[" + m.view.String() + "]"))
		b.WriteString("\n")
		b.WriteString(m.pane.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab: switch view • ↑/↓: scroll • esc: back • q: quit"))
	}

	return b.String()
}

func entrySummary(f fileEntry) string {
	if f.err != nil {
		return errorStyle.Render("error")
	}
	rep := f.result.result.Report
	return countStyle.Render(fmt.Sprintf("(%d converted, %d skipped)", len(rep.Converted), len(rep.Skipped)))
}

func runInteractive(names []string, cfg convert.Config) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal")
	}
	for _, n := range names {
		if n == stdinName {
			return fmt.Errorf("interactive mode cannot read standard input")
		}
	}
	p := tea.NewProgram(newInteractiveModel(names, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
