package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestKeyAssignments(t *testing.T) {
	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"Next uses tab and ctrl+n", Form.Next, []string{"tab", "ctrl+n", "down"}},
		{"Prev uses shift+tab and ctrl+p", Form.Prev, []string{"shift+tab", "ctrl+p", "up"}},
		{"Submit uses ctrl+s", Form.Submit, []string{"ctrl+s"}},
		{"Quit uses esc and ctrl+c", App.Quit, []string{"esc", "ctrl+c"}},
		{"ToggleLog uses ctrl+x", App.ToggleLog, []string{"ctrl+x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
			require.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestMatches(t *testing.T) {
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyTab}, Form.Next))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyShiftTab}, Form.Prev))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyCtrlS}, Form.Submit))
	require.True(t, key.Matches(tea.KeyMsg{Type: tea.KeyEsc}, App.Quit))
	require.False(t, key.Matches(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, App.Quit),
		"q must stay typeable in a text field")
}

func TestHelpGroups(t *testing.T) {
	require.Len(t, Form.ShortHelp(), 4)
	require.Len(t, Form.FullHelp(), 2)
}
