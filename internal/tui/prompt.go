package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user aborts a prompt
var ErrCancelled = errors.New("prompt cancelled")

// Field is one value asked from the user
type Field struct {
	Key         string
	Label       string
	Placeholder string
	Secret      bool
	Validate    func(string) error
}

// PromptModel asks for a list of fields one after the other
type PromptModel struct {
	title     string
	fields    []Field
	inputs    []textinput.Model
	focus     int
	err       error
	done      bool
	cancelled bool
}

// NewPrompt creates a prompt for fields, focusing the first one
func NewPrompt(title string, fields []Field) PromptModel {
	inputs := make([]textinput.Model, len(fields))
	for i, field := range fields {
		ti := textinput.New()
		ti.Placeholder = field.Placeholder
		ti.Prompt = "> "
		if field.Secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		if i == 0 {
			ti.Focus()
		}
		inputs[i] = ti
	}

	return PromptModel{
		title:  title,
		fields: fields,
		inputs: inputs,
	}
}

func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			return m.submit()
		}
	}

	if m.focus >= len(m.inputs) {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m PromptModel) submit() (tea.Model, tea.Cmd) {
	if m.focus >= len(m.inputs) {
		m.done = true
		return m, tea.Quit
	}

	field := m.fields[m.focus]
	value := strings.TrimSpace(m.inputs[m.focus].Value())
	if field.Validate != nil {
		if err := field.Validate(value); err != nil {
			m.err = err
			return m, nil
		}
	}
	m.err = nil

	m.inputs[m.focus].Blur()
	m.focus++

	if m.focus == len(m.inputs) {
		m.done = true
		return m, tea.Quit
	}

	return m, m.inputs[m.focus].Focus()
}

// Done reports whether every field was answered
func (m PromptModel) Done() bool {
	return m.done
}

// Cancelled reports whether the user aborted
func (m PromptModel) Cancelled() bool {
	return m.cancelled
}

// Values returns the answers keyed by Field.Key
func (m PromptModel) Values() map[string]string {
	values := make(map[string]string, len(m.fields))
	for i, field := range m.fields {
		values[field.Key] = strings.TrimSpace(m.inputs[i].Value())
	}
	return values
}

func (m PromptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var s strings.Builder

	s.WriteString(headerStyle.Render(m.title))
	s.WriteString("\n\n")

	for i, field := range m.fields {
		if i > m.focus {
			break
		}
		s.WriteString(labelStyle.Render(field.Label))
		s.WriteString("\n")
		s.WriteString(m.inputs[i].View())
		s.WriteString("\n\n")
	}

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n\n")
	}

	s.WriteString(footerStyle.Render("enter to confirm | esc to cancel"))
	return s.String()
}

// Ask runs the prompt on the terminal and returns the answers
func Ask(title string, fields []Field) (map[string]string, error) {
	if len(fields) == 0 {
		return map[string]string{}, nil
	}

	final, err := tea.NewProgram(NewPrompt(title, fields)).Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run prompt: %w", err)
	}

	model, ok := final.(PromptModel)
	if !ok || model.Cancelled() || !model.Done() {
		return nil, ErrCancelled
	}

	return model.Values(), nil
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)
