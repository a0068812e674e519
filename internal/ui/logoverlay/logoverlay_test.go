package logoverlay

import (
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/signup/internal/log"
)

// TestMain initializes the logger for all tests in this package.
func TestMain(m *testing.M) {
	cleanup := log.InitWriter(io.Discard)
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func shown(t *testing.T) Model {
	t.Helper()
	m := New()
	m.SetSize(100, 30)
	m.Toggle()
	require.True(t, m.Visible())
	return m
}

func TestNew_Hidden(t *testing.T) {
	m := New()
	require.False(t, m.Visible())
	require.Empty(t, m.View())
	require.Equal(t, "bg", m.Overlay("bg"))
}

func TestToggle(t *testing.T) {
	m := shown(t)
	m.Toggle()
	require.False(t, m.Visible())
}

func TestView_EmptyBuffer(t *testing.T) {
	log.ClearBuffer()
	m := shown(t)
	require.Contains(t, ansi.Strip(m.View()), "No logs to display")
}

func TestView_FilteredContent(t *testing.T) {
	log.ClearBuffer()
	log.Debug(log.CatUI, "DebugMsg")
	log.Info(log.CatForm, "InfoMsg")
	log.Warn(log.CatConfig, "WarnMsg")
	log.Error(log.CatSubmit, "ErrorMsg")

	m := shown(t)
	view := ansi.Strip(m.View())
	for _, want := range []string{"DebugMsg", "InfoMsg", "WarnMsg", "ErrorMsg"} {
		require.Contains(t, view, want)
	}

	m, _ = m.Update(keyMsg("w"))
	require.Equal(t, log.LevelWarn, m.MinLevel())
	view = ansi.Strip(m.View())
	require.NotContains(t, view, "DebugMsg")
	require.NotContains(t, view, "InfoMsg")
	require.Contains(t, view, "WarnMsg")
	require.Contains(t, view, "ErrorMsg")

	m, _ = m.Update(keyMsg("e"))
	view = ansi.Strip(m.View())
	require.NotContains(t, view, "WarnMsg")
	require.Contains(t, view, "ErrorMsg")
}

func TestClear(t *testing.T) {
	log.Info(log.CatUI, "before clear")
	m := shown(t)

	m, _ = m.Update(keyMsg("c"))
	require.Empty(t, log.Entries(log.LevelDebug))
	require.Contains(t, ansi.Strip(m.View()), "No logs to display")
}

func TestRefresh_PicksUpNewEntries(t *testing.T) {
	log.ClearBuffer()
	m := shown(t)

	log.Info(log.CatSubmit, "registration received")
	require.NotContains(t, ansi.Strip(m.View()), "registration received")

	m.Refresh()
	require.Contains(t, ansi.Strip(m.View()), "registration received")
}

func TestView_TruncatesLongLines(t *testing.T) {
	log.ClearBuffer()
	log.Info(log.CatUI, strings.Repeat("x", 300))

	m := shown(t)
	for _, line := range strings.Split(ansi.Strip(m.View()), "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), 100)
	}
}

func TestOverlay_Centered(t *testing.T) {
	m := shown(t)
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 100)+"\n", 30), "\n")

	lines := strings.Split(ansi.Strip(m.Overlay(bg)), "\n")
	require.Len(t, lines, 30)
	require.Equal(t, strings.Repeat(".", 100), lines[0])
	require.Contains(t, strings.Join(lines, "\n"), "Logs")
}

func TestUpdate_IgnoredWhenHidden(t *testing.T) {
	m := New()
	m, cmd := m.Update(keyMsg("w"))
	require.Nil(t, cmd)
	require.Equal(t, log.LevelDebug, m.MinLevel())
}
