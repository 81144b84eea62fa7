package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Back      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Calculate key.Binding
	Reset     key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Calculate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calculate")),
	Reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "clear form")),
}

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Standard tea.Msg types
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	// Custom messages
	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case InputLoadedMsg:
		m.fill(msg.Input)
		if msg.AssessmentYear != "" {
			m.opts.AssessmentYear = msg.AssessmentYear
		}
		return m, nil

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.result = msg.Result
		m.breakEven = msg.BreakEven
		m.previousScene = m.currentScene
		m.currentScene = SceneResults
		return m, nil
	}

	// Delegate to the focused input
	return m.updateInputs(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	// Global keyboard shortcuts
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		if m.currentScene != SceneHelp {
			m.previousScene = m.currentScene
			m.currentScene = SceneHelp
		}
		return m, nil

	case key.Matches(msg, keys.Back):
		if m.currentScene == SceneForm {
			return m, nil
		}
		m.currentScene = SceneForm
		return m, nil
	}

	if m.currentScene != SceneForm {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Next):
		return m.setFocus(m.focus + 1)

	case key.Matches(msg, keys.Prev):
		return m.setFocus(m.focus - 1)

	case key.Matches(msg, keys.Reset):
		for i := range m.inputs {
			m.inputs[i].SetValue("")
		}
		m.result = nil
		m.breakEven = nil
		return m.setFocus(0)

	case key.Matches(msg, keys.Calculate):
		m.loading = true
		m.loadingMessage = "Comparing regimes..."
		return m, calculateCmd(m.comparator, m.solver, m.formValues(), m.opts)
	}

	return m.updateInputs(msg)
}

// setFocus moves the cursor to field i, wrapping at both ends
func (m Model) setFocus(i int) (tea.Model, tea.Cmd) {
	n := len(m.inputs)
	m.focus = (i%n + n) % n
	cmds := make([]tea.Cmd, len(m.inputs))
	for j := range m.inputs {
		if j == m.focus {
			cmds[j] = m.inputs[j].Focus()
			continue
		}
		m.inputs[j].Blur()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.currentScene != SceneForm {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}
