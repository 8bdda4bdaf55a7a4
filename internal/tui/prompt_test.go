package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m PromptModel, text string) PromptModel {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	model, ok := next.(PromptModel)
	require.True(t, ok)
	return model
}

func press(t *testing.T, m PromptModel, key tea.KeyType) (PromptModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: key})
	model, ok := next.(PromptModel)
	require.True(t, ok)
	return model, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestPrompt_AdvancesThroughFields(t *testing.T) {
	m := NewPrompt("Exchange rate", []Field{
		{Key: "from", Label: "From currency"},
		{Key: "to", Label: "To currency"},
	})

	m = typeText(t, m, "BTC")
	m, cmd := press(t, m, tea.KeyEnter)
	assert.False(t, m.Done())
	assert.False(t, isQuit(cmd))

	m = typeText(t, m, " ETH ")
	m, cmd = press(t, m, tea.KeyEnter)
	assert.True(t, m.Done())
	assert.True(t, isQuit(cmd))

	assert.Equal(t, map[string]string{"from": "BTC", "to": "ETH"}, m.Values())
	assert.Empty(t, m.View())
}

func TestPrompt_ValidationKeepsFocus(t *testing.T) {
	m := NewPrompt("Market order", []Field{
		{Key: "volume", Label: "Volume", Validate: func(v string) error {
			if v == "" {
				return errors.New("volume is required")
			}
			return nil
		}},
	})

	m, cmd := press(t, m, tea.KeyEnter)
	assert.False(t, m.Done())
	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.View(), "volume is required")

	m = typeText(t, m, "0.5")
	m, cmd = press(t, m, tea.KeyEnter)
	assert.True(t, m.Done())
	assert.True(t, isQuit(cmd))
	assert.Equal(t, "0.5", m.Values()["volume"])
}

func TestPrompt_Cancel(t *testing.T) {
	m := NewPrompt("Balance", []Field{{Key: "asset", Label: "Asset"}})

	m, cmd := press(t, m, tea.KeyEsc)
	assert.True(t, m.Cancelled())
	assert.False(t, m.Done())
	assert.True(t, isQuit(cmd))
}

func TestPrompt_SecretFieldIsMasked(t *testing.T) {
	m := NewPrompt("Credentials", []Field{{Key: "api_key", Label: "API key", Secret: true}})

	m = typeText(t, m, "hunter2")
	view := m.View()
	assert.NotContains(t, view, "hunter2")
	assert.Contains(t, view, "*******")
	assert.Equal(t, "hunter2", m.Values()["api_key"])
}

func TestPrompt_ViewShowsAnsweredAndCurrentFields(t *testing.T) {
	m := NewPrompt("Trading history", []Field{
		{Key: "from", Label: "From currency"},
		{Key: "to", Label: "To currency"},
		{Key: "count", Label: "Count"},
	})

	view := m.View()
	assert.Contains(t, view, "Trading history")
	assert.Contains(t, view, "From currency")
	assert.NotContains(t, view, "To currency")

	m = typeText(t, m, "BTC")
	m, _ = press(t, m, tea.KeyEnter)
	view = m.View()
	assert.Contains(t, view, "To currency")
	assert.NotContains(t, view, "Count")
}

func TestAsk_NoFields(t *testing.T) {
	values, err := Ask("Nothing", nil)
	require.NoError(t, err)
	assert.Empty(t, values)
}
