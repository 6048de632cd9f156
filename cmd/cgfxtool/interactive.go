package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/cgfx"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	entryStyle = lipgloss.NewStyle().
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

type interactiveModel struct {
	err      error
	parsed   *cgfx.Parsed
	filename string
	result   string
	opts     []cgfx.Option
	sections []cgfx.Section
	entries  []string
	input    textinput.Model
	selected int
	section  int
	state    modelState
}

type modelState int

const (
	stateSelectSection modelState = iota
	stateSelectEntry
	stateLookup
	stateShowResult
)

func newInteractiveModel(filename string, opts []cgfx.Option) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "models/name"
	ti.Prompt = "lookup: "
	ti.Width = 40
	return &interactiveModel{
		filename: filename,
		opts:     opts,
		input:    ti,
		state:    stateSelectSection,
	}
}

type loadedMsg struct {
	err    error
	parsed *cgfx.Parsed
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadFile
}

func (m *interactiveModel) loadFile() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	parsed, err := cgfx.Parse(data, m.opts...)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{parsed: parsed}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateLookup {
			return m.updateLookup(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < m.listLen()-1 {
				m.selected++
			}

		case "/":
			m.state = stateLookup
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink

		case "enter":
			switch m.state {
			case stateSelectSection:
				if len(m.sections) == 0 {
					break
				}
				m.section = m.selected
				m.entries = m.parsed.Dict(m.sections[m.section]).Names()
				m.selected = 0
				m.state = stateSelectEntry
			case stateSelectEntry:
				if len(m.entries) == 0 {
					break
				}
				s := m.sections[m.section]
				m.showLookup(s, m.entries[m.selected])
			case stateShowResult:
				m.reset()
			}

		case "esc":
			switch m.state {
			case stateSelectEntry:
				m.state = stateSelectSection
				m.selected = m.section
			case stateShowResult:
				m.reset()
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.parsed = msg.parsed
		for i := range cgfx.NumSections {
			if msg.parsed.Dict(cgfx.Section(i)) != nil {
				m.sections = append(m.sections, cgfx.Section(i))
			}
		}
	}

	return m, nil
}

func (m *interactiveModel) updateLookup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.input.Blur()
		m.reset()
		return m, nil
	case "enter":
		m.input.Blur()
		section, name, ok := strings.Cut(m.input.Value(), "/")
		s, known := cgfx.ParseSection(section)
		switch {
		case !ok:
			m.showError(fmt.Errorf("expected section/name, got %q", m.input.Value()))
		case !known:
			m.showError(fmt.Errorf("unknown section %q", section))
		default:
			m.showLookup(s, name)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) showLookup(s cgfx.Section, name string) {
	e, err := m.parsed.Lookup(s, name)
	if err != nil {
		m.showError(err)
		return
	}
	m.err = nil
	m.result = fmt.Sprintf("%s/%s\n\n%s", s, e.Name, formatEntry(e))
	m.state = stateShowResult
}

func (m *interactiveModel) showError(err error) {
	m.err = err
	m.result = ""
	m.state = stateShowResult
}

func (m *interactiveModel) reset() {
	m.state = stateSelectSection
	m.selected = 0
	m.result = ""
	m.err = nil
}

func (m *interactiveModel) listLen() int {
	if m.state == stateSelectEntry {
		return len(m.entries)
	}
	return len(m.sections)
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.parsed == nil {
		return "Loading file..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("CGFX Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(fmt.Sprintf(" (%d bytes)", m.parsed.Header.FileSize))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectSection:
		b.WriteString("Select a section:\n\n")
		for i, s := range m.sections {
			line := fmt.Sprintf("%s (%d)", s, m.parsed.Dict(s).Count)
			m.writeItem(&b, i, sectionStyle.Render(line))
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • / lookup • q quit"))

	case stateSelectEntry:
		s := m.sections[m.section]
		b.WriteString(fmt.Sprintf("Entries of %s:\n\n", sectionStyle.Render(s.String())))
		for i, name := range m.entries {
			m.writeItem(&b, i, entryStyle.Render(name))
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter inspect • esc back • q quit"))

	case stateLookup:
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter look up • esc back"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func (m *interactiveModel) writeItem(b *strings.Builder, i int, text string) {
	if i == m.selected {
		b.WriteString(selectedStyle.Render("> " + text))
	} else {
		b.WriteString("  " + text)
	}
	b.WriteString("\n")
}

func runInteractive(filename string, opts []cgfx.Option) error {
	p := tea.NewProgram(newInteractiveModel(filename, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
