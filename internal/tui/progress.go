package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type workDone struct {
	output string
	err    error
}

// ProgressModel shows a spinner while a single request sequence runs.
// ctrl+c calls cancel and keeps waiting for work to return.
type ProgressModel struct {
	message    string
	work       func() (string, error)
	cancel     context.CancelFunc
	cancelling bool
	spinner    spinner.Model
	result     *workDone
}

// NewProgress creates a spinner model that runs work once started
func NewProgress(message string, cancel context.CancelFunc, work func() (string, error)) ProgressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ProgressModel{
		message: message,
		work:    work,
		cancel:  cancel,
		spinner: sp,
	}
}

func (m ProgressModel) Init() tea.Cmd {
	work := m.work
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			output, err := work()
			return workDone{output: output, err: err}
		},
	)
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workDone:
		m.result = &msg
		return m, tea.Quit

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && !m.cancelling {
			m.cancelling = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ProgressModel) View() string {
	if m.result != nil {
		return ""
	}
	if m.cancelling {
		return fmt.Sprintf("%s Cancelling...\n", m.spinner.View())
	}
	return fmt.Sprintf("%s %s\n", m.spinner.View(), m.message)
}

// Result returns the work's output once it finished
func (m ProgressModel) Result() (output string, finished bool, err error) {
	if m.result == nil {
		return "", false, nil
	}
	return m.result.output, true, m.result.err
}

// RunWithSpinner runs work while a spinner is shown. cancel should cancel the
// context work uses; it is called when the user presses ctrl+c.
func RunWithSpinner(message string, cancel context.CancelFunc, work func() (string, error)) (string, error) {
	final, err := tea.NewProgram(NewProgress(message, cancel, work)).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run progress display: %w", err)
	}

	model, ok := final.(ProgressModel)
	if !ok {
		return "", fmt.Errorf("unexpected progress model %T", final)
	}

	output, finished, workErr := model.Result()
	if !finished {
		return "", fmt.Errorf("progress display exited before the request finished")
	}
	return output, workErr
}
