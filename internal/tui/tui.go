// Package tui provides a terminal browser for a parsed Standard MIDI File.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kaimusic/miditime/pkg/midi"
)

// Acid-inspired color scheme (303/acid aesthetic).
var (
	acidGreen  = lipgloss.Color("#39FF14")
	acidYellow = lipgloss.Color("#FFFF00")
	silverGray = lipgloss.Color("#C0C0C0")
	darkGray   = lipgloss.Color("#333333")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(acidGreen).
			Background(darkGray).
			Padding(0, 2).
			MarginBottom(1)

	rowStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(acidGreen).
				Bold(true).
				PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(acidYellow).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(acidGreen).
			Padding(1, 2)
)

// State is the TUI's current screen.
type State int

const (
	StateFilePicker State = iota
	StateParsing
	StateBrowse
	StateError
)

const pageSize = 20

// Model is the Bubble Tea model for the sequence browser.
type Model struct {
	state      State
	filePicker filepicker.Model
	spinner    spinner.Model
	path       string
	seq        *midi.Sequence
	rows       []string
	cursor     int
	page       int
	err        error
	width      int
	height     int
}

type parsedMsg struct {
	seq *midi.Sequence
	err error
}

// New builds a Model rooted at the current working directory.
func New() Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".mid", ".midi"}
	fp.CurrentDirectory, _ = os.Getwd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(acidGreen)

	return Model{state: StateFilePicker, filePicker: fp, spinner: s}
}

// Init starts the file picker, or begins parsing immediately if a path was
// pre-selected via Run.
func (m Model) Init() tea.Cmd {
	if m.state == StateParsing {
		return tea.Batch(m.spinner.Tick, m.parseFile())
	}
	return tea.Batch(m.spinner.Tick, m.filePicker.Init())
}

// Update handles TUI messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.path = path
			m.state = StateParsing
			return m, tea.Batch(m.spinner.Tick, m.parseFile())
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.filePicker.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateBrowse:
			return m.updateBrowse(msg)
		case StateError:
			return m.updateError(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case parsedMsg:
		if msg.err != nil {
			m.state = StateError
			m.err = msg.err
			return m, nil
		}
		m.seq = msg.seq
		m.rows = buildRows(msg.seq)
		m.state = StateBrowse
		return m, nil
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "pgdown", "right", "l":
		if (m.page+1)*pageSize < len(m.rows) {
			m.page++
		}
	case "pgup", "left", "h":
		if m.page > 0 {
			m.page--
		}
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateError(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc", "enter":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) parseFile() tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(m.path)
		if err != nil {
			return parsedMsg{err: err}
		}
		seq, err := midi.ParseBytes(data)
		if err != nil {
			return parsedMsg{err: err}
		}
		return parsedMsg{seq: seq}
	}
}

func buildRows(seq *midi.Sequence) []string {
	events := seq.Events()
	rows := make([]string, len(events))
	for i, ev := range events {
		t := ev.Time.String()
		channel := "-"
		if ev.Channel != nil {
			channel = fmt.Sprintf("%d", *ev.Channel)
		}
		rows[i] = fmt.Sprintf("%-12s track=%-3d ch=%-3s tempo=%-8s sig=%s",
			t, ev.Track, channel, ev.Tempo.String(), ev.Signature.String())
	}
	return rows
}

// View renders the current screen.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateParsing:
		s.WriteString(m.viewParsing())
	case StateBrowse:
		s.WriteString(m.viewBrowse())
	case StateError:
		s.WriteString(m.viewError())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: move • ←/→: page • q: quit"))
	return s.String()
}

func (m Model) viewFilePicker() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(" SELECT MIDI FILE "))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	return s.String()
}

func (m Model) viewParsing() string {
	return boxStyle.Render(fmt.Sprintf("%s Parsing %s...", m.spinner.View(), m.path))
}

func (m Model) viewBrowse() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(fmt.Sprintf(" %s ", m.path)))
	s.WriteString("\n\n")

	start := m.page * pageSize
	end := start + pageSize
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := start; i < end; i++ {
		if i == m.cursor {
			s.WriteString(selectedRowStyle.Render("▸ " + m.rows[i]))
		} else {
			s.WriteString(rowStyle.Render("  " + m.rows[i]))
		}
		s.WriteString("\n")
	}

	s.WriteString(statusStyle.Render(fmt.Sprintf("event %d/%d", m.cursor+1, len(m.rows))))
	return boxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render(" ERROR "))
	s.WriteString("\n\n")
	s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s", m.err.Error())))
	return boxStyle.Render(s.String())
}

func asciiLogo() string {
	logo := `
  __  __ ___ ____ ___ _____ ___ __  __ _____
 |  \/  |_ _|  _ \_ _|_   _|_ _|  \/  | ____|
 | |\/| || || | | | |  | |  | || |\/| |  _|
 | |  | || || |_| | |  | |  | || |  | | |___
 |_|  |_|___|____/___| |_| |___|_|  |_|_____|
`
	return lipgloss.NewStyle().Foreground(acidGreen).Render(logo)
}

// Run starts the TUI, optionally pre-loading path.
func Run(path string) error {
	m := New()
	if path != "" {
		m.path = path
		m.state = StateParsing
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
