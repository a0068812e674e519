package regform

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/signup/internal/registration"
)

// TestMain initializes the global zone manager for all tests in this package.
func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

func newTestForm(t *testing.T, opts registration.Options) (Model, *registration.Controller) {
	t.Helper()
	if opts.Handler == nil {
		opts.Handler = func(context.Context, registration.Submission) error { return nil }
	}
	opts.SuccessDelay = time.Hour
	ctrl := registration.New(opts)
	t.Cleanup(ctrl.Close)
	return New(ctrl, 60), ctrl
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, k tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: k})
}

// fillValid types a valid record, leaving focus on the submit button.
func fillValid(m Model) Model {
	for _, v := range []string{"Ana Souza", "user@example.com", "(11) 91234-5678", "Abc123", "Abc123"} {
		m = typeText(m, v)
		m, _ = press(m, tea.KeyTab)
	}
	return m
}

func plainView(m Model) string {
	return ansi.Strip(zone.Scan(m.View()))
}

func TestNew_FocusesFirstField(t *testing.T) {
	m, _ := newTestForm(t, registration.DefaultOptions())
	f, ok := m.Focused()
	require.True(t, ok)
	require.Equal(t, registration.FieldName, f)
}

func TestTyping_UpdatesController(t *testing.T) {
	m, ctrl := newTestForm(t, registration.DefaultOptions())

	m = typeText(m, "Ana")
	require.Equal(t, "Ana", m.Value(registration.FieldName))
	require.Equal(t, "Ana", ctrl.Values().Name)

	m, _ = press(m, tea.KeyBackspace)
	require.Equal(t, "An", ctrl.Values().Name)
}

func TestFocusCycle(t *testing.T) {
	m, _ := newTestForm(t, registration.DefaultOptions())

	for _, want := range registration.Fields[1:] {
		m, _ = press(m, tea.KeyTab)
		f, ok := m.Focused()
		require.True(t, ok)
		require.Equal(t, want, f)
	}

	m, _ = press(m, tea.KeyTab)
	_, ok := m.Focused()
	require.False(t, ok, "tab after the last field lands on the button")

	m, _ = press(m, tea.KeyTab)
	f, _ := m.Focused()
	require.Equal(t, registration.FieldName, f, "focus wraps")

	m, _ = press(m, tea.KeyShiftTab)
	_, ok = m.Focused()
	require.False(t, ok)
	m, _ = press(m, tea.KeyShiftTab)
	f, _ = m.Focused()
	require.Equal(t, registration.FieldConfirmPassword, f)

	m, _ = press(m, tea.KeyCtrlP)
	f, _ = m.Focused()
	require.Equal(t, registration.FieldPassword, f)
	m, _ = press(m, tea.KeyCtrlN)
	f, _ = m.Focused()
	require.Equal(t, registration.FieldConfirmPassword, f)
}

func TestEnter_AdvancesThenSubmits(t *testing.T) {
	m, ctrl := newTestForm(t, registration.DefaultOptions())

	m, _ = press(m, tea.KeyEnter)
	f, _ := m.Focused()
	require.Equal(t, registration.FieldEmail, f)
	require.Empty(t, ctrl.Errors(), "enter on a field does not submit")
}

func TestSubmit_EmptyShowsInlineErrors(t *testing.T) {
	m, ctrl := newTestForm(t, registration.DefaultOptions())
	m, _ = press(m, tea.KeyTab)
	m, _ = press(m, tea.KeyTab)

	m, _ = press(m, tea.KeyCtrlS)
	require.Equal(t, registration.ModeEditing, ctrl.Mode())

	view := plainView(m)
	for _, msg := range []string{"Name is required", "Email is required", "Phone is required",
		"Password is required", "Password confirmation is required"} {
		require.Contains(t, view, msg)
	}

	f, _ := m.Focused()
	require.Equal(t, registration.FieldName, f, "focus jumps to the first invalid field")
}

func TestSubmit_ErrorsClearAsUserTypes(t *testing.T) {
	m, _ := newTestForm(t, registration.DefaultOptions())
	m, _ = press(m, tea.KeyCtrlS)
	require.Contains(t, plainView(m), "Name is required")

	m = typeText(m, "A")
	view := plainView(m)
	require.NotContains(t, view, "Name is required")
	require.Contains(t, view, "Name must be at least 2 characters")

	m = typeText(m, "l")
	require.NotContains(t, plainView(m), "Name must be at least")
}

func TestSubmit_ValidClearsAndEmits(t *testing.T) {
	m, ctrl := newTestForm(t, registration.DefaultOptions())
	m = fillValid(m)

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	msg, ok := cmd().(SubmittedMsg)
	require.True(t, ok, "expected SubmittedMsg")
	require.Equal(t, "user@example.com", msg.Submission.Values.Email)

	require.Equal(t, registration.ModeSuccessDisplayed, ctrl.Mode())
	for _, f := range registration.Fields {
		require.Empty(t, m.Value(f))
	}
	f, _ := m.Focused()
	require.Equal(t, registration.FieldName, f)
}

func TestSubmit_HandlerErrorShowsFormError(t *testing.T) {
	opts := registration.DefaultOptions()
	opts.Handler = func(context.Context, registration.Submission) error { return errors.New("boom") }
	m, ctrl := newTestForm(t, opts)
	m = fillValid(m)

	m, cmd := press(m, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	failed, ok := cmd().(SubmitFailedMsg)
	require.True(t, ok)
	require.ErrorContains(t, failed.Err, "boom")

	require.Equal(t, "Registration could not be completed", m.FormError())
	require.Contains(t, plainView(m), "Registration could not be completed")
	require.Equal(t, "Abc123", ctrl.Values().Password, "values kept for retry")
}

func TestView_MasksPasswords(t *testing.T) {
	m, _ := newTestForm(t, registration.DefaultOptions())
	for i := 0; i < 3; i++ {
		m, _ = press(m, tea.KeyTab)
	}
	m = typeText(m, "Secret9")

	view := plainView(m)
	require.NotContains(t, view, "Secret9")
	require.Contains(t, view, "•••••••")
}

func TestView_LabelsAndPlaceholders(t *testing.T) {
	m, _ := newTestForm(t, registration.DefaultOptions())
	view := plainView(m)

	require.Contains(t, view, "Sign Up")
	require.Contains(t, view, "Confirm Password")
	require.Contains(t, view, "(99) 99999-9999")
	require.Contains(t, view, "Sign up")
}

func TestView_WrapsLongErrorsWithinWidth(t *testing.T) {
	m, ctrl := newTestForm(t, registration.DefaultOptions())
	for i := 0; i < 3; i++ {
		m, _ = press(m, tea.KeyTab)
	}
	m = typeText(m, "abcdef")
	m, _ = press(m, tea.KeyCtrlS)
	require.True(t, ctrl.Errors().Has(registration.FieldPassword))

	view := plainView(m)
	require.Contains(t, view, "Password must contain")
	for _, line := range strings.Split(view, "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), 60, "line overflows: %q", line)
	}
}

func TestSetCatalog_SwitchesLocale(t *testing.T) {
	m, ctrl := newTestForm(t, registration.DefaultOptions())
	pt, err := registration.CatalogFor("pt-BR")
	require.NoError(t, err)

	ctrl.SetCatalog(pt)
	m = m.SetCatalog(pt)

	view := plainView(m)
	require.Contains(t, view, "Cadastro de Usuário")
	require.Contains(t, view, "Digite seu nome completo")
	require.Contains(t, view, "Cadastrar")
}

func TestSetCatalog_RelabelsFormError(t *testing.T) {
	opts := registration.DefaultOptions()
	opts.Handler = func(context.Context, registration.Submission) error { return errors.New("boom") }
	m, _ := newTestForm(t, opts)
	m = fillValid(m)
	m, _ = press(m, tea.KeyCtrlS)
	require.Equal(t, "Registration could not be completed", m.FormError())

	pt, err := registration.CatalogFor("pt-BR")
	require.NoError(t, err)
	m = m.SetCatalog(pt)

	require.Equal(t, "Não foi possível concluir o cadastro", m.FormError())
	require.NotContains(t, plainView(m), "Registration could not be completed")
}

func TestSetCatalog_NoFormErrorStaysEmpty(t *testing.T) {
	m, _ := newTestForm(t, registration.DefaultOptions())
	pt, err := registration.CatalogFor("pt-BR")
	require.NoError(t, err)

	require.Empty(t, m.SetCatalog(pt).FormError())
}

func TestPaste_LongValueReachesController(t *testing.T) {
	m, ctrl := newTestForm(t, registration.DefaultOptions())
	long := strings.Repeat("a", 300)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(long), Paste: true})

	require.Equal(t, long, m.Value(registration.FieldName))
	require.Equal(t, long, ctrl.Values().Name)
}

func TestMouse_ClickFocusesField(t *testing.T) {
	m, _ := newTestForm(t, registration.DefaultOptions())

	var z *zone.ZoneInfo
	for retries := 0; retries < 10; retries++ {
		_ = zone.Scan(m.View())
		z = zone.Get(fieldZoneID(2))
		if z != nil && !z.IsZero() {
			break
		}
		// Zone registration is processed by a worker goroutine.
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, z)
	require.False(t, z.IsZero())

	m, _ = m.Update(tea.MouseMsg{
		X:      z.StartX + 2,
		Y:      z.StartY + 1,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
	f, ok := m.Focused()
	require.True(t, ok)
	require.Equal(t, registration.FieldPhone, f)
}

func TestMouse_ClickSubmitButton(t *testing.T) {
	m, ctrl := newTestForm(t, registration.DefaultOptions())

	var z *zone.ZoneInfo
	for retries := 0; retries < 10; retries++ {
		_ = zone.Scan(m.View())
		z = zone.Get(zoneSubmitButton)
		if z != nil && !z.IsZero() {
			break
		}
		time.Sleep(time.Millisecond)
	}
	require.NotNil(t, z)

	m, _ = m.Update(tea.MouseMsg{
		X:      z.StartX,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
	require.Len(t, ctrl.Errors(), len(registration.Fields), "click submits the empty form")
	_, ok := m.Focused()
	require.True(t, ok, "focus moves to the first invalid field")
}

func TestInput_IgnoredWhileSuccessDisplayed(t *testing.T) {
	m, ctrl := newTestForm(t, registration.DefaultOptions())
	m = fillValid(m)
	m, _ = press(m, tea.KeyCtrlS)
	require.Equal(t, registration.ModeSuccessDisplayed, ctrl.Mode())

	m = typeText(m, "x")
	require.True(t, ctrl.Values().IsZero())

	_, cmd := press(m, tea.KeyCtrlS)
	require.Nil(t, cmd, "second submit is a no-op")
}
