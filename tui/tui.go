// Package tui provides the Bubble Tea front-end for HanziQuest: a
// scrollback viewport, a command input line, and a status bar.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/hanziquest/cli"
	"github.com/nathoo/hanziquest/engine"
)

// rawLine stores an unstyled output line with its classification, so we
// can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text    string
	kind    lineKind
	isInput bool // true for echoed player input
}

// Model is the Bubble Tea model for the HanziQuest TUI.
type Model struct {
	session *cli.Session

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine

	width    int
	height   int
	ready    bool
	quitting bool
}

// commandOutputMsg carries output from the engine into the Update loop.
type commandOutputMsg struct {
	input string // echoed player input (empty for the greeting)
	lines []string
	quit  bool
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, saveDir string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 128
	ti.PromptStyle = styleInputPrompt

	return Model{
		session: cli.NewSession(eng, saveDir),
		input:   ti,
		history: NewHistory(100),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, saveDir string) error {
	m := New(eng, saveDir)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces the greeting.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.greeting())
}

func (m Model) greeting() tea.Cmd {
	return func() tea.Msg {
		pack := m.session.Engine.Defs.Pack
		lines := []string{
			pack.Name + " v" + pack.Version,
			"Type 'help' for commands.",
			"",
		}
		return commandOutputMsg{lines: lines}
	}
}

// Update handles messages (key presses, window resize, command output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd

		default:
			var inCmd tea.Cmd
			m.input, inCmd = m.input.Update(msg)
			cmds = append(cmds, inCmd)
		}

	case commandOutputMsg:
		if msg.input != "" {
			m.rawLines = append(m.rawLines, rawLine{text: "> " + msg.input, isInput: true})
		}
		for _, line := range msg.lines {
			m.rawLines = append(m.rawLines, rawLine{text: line, kind: classifyLine(line)})
		}
		m.refreshViewport()
		m.viewport.GotoBottom()
		if msg.quit {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, tea.Batch(cmds...)
}

// handleEnter dispatches the current input line to the session.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}
	m.history.Add(input)
	m.input.SetValue("")

	return m, func() tea.Msg {
		lines, quit := m.session.Exec(input)
		return commandOutputMsg{input: input, lines: lines, quit: quit}
	}
}

// refreshViewport re-renders all raw lines at the current width.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	var rendered []string
	for _, rl := range m.rawLines {
		style := styleFor(rl.kind)
		if rl.isInput {
			style = stylePlayerInput
		}
		rendered = append(rendered, style.Width(m.width).Render(rl.text))
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))
}

// View renders the full TUI: viewport, status bar, input line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View() + "\n" + m.statusBar() + "\n" + m.input.View()
}
