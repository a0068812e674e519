// Package regform renders the registration form and routes its input to a
// registration.Controller.
package regform

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/signup/internal/keys"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/registration"
)

// DefaultWidth is the form width when none is configured.
const DefaultWidth = 56

const (
	zoneSubmitButton = "regform-submit"
	zoneFieldPrefix  = "regform-field-"
)

// buttonIndex is the focus index of the submit button.
const buttonIndex = -1

// SubmittedMsg is sent after the controller accepted a submission.
type SubmittedMsg struct {
	Submission registration.Submission
}

// SubmitFailedMsg is sent when the submission handler returned an error.
type SubmitFailedMsg struct {
	Err error
}

// Model is the registration form view state. Field values live in the
// controller; the text inputs mirror them for editing.
type Model struct {
	ctrl   *registration.Controller
	inputs []textinput.Model

	focusedIndex int // index into inputs, or buttonIndex
	width        int
	formError    string
	help         help.Model
}

// New creates a form bound to ctrl with focus on the first field.
func New(ctrl *registration.Controller, width int) Model {
	if width <= 0 {
		width = DefaultWidth
	}
	m := Model{
		ctrl:   ctrl,
		inputs: make([]textinput.Model, len(registration.Fields)),
		width:  width,
		help:   help.New(),
	}
	m.help.Width = m.sectionWidth()
	cat := ctrl.Catalog()
	for i, f := range registration.Fields {
		m.inputs[i] = newInput(f, cat, m.inputWidth())
	}
	m.inputs[0].Focus()
	return m
}

func newInput(f registration.Field, cat registration.Catalog, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = cat.Placeholder(f)
	ti.CharLimit = 0 // no limit
	ti.Width = width
	if f.Secret() {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key and mouse input for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			if z := zone.Get(zoneSubmitButton); z != nil && z.InBounds(msg) {
				m.focus(buttonIndex)
				return m.submit()
			}
			for i := range m.inputs {
				if z := zone.Get(fieldZoneID(i)); z != nil && z.InBounds(msg) {
					m.focus(i)
					return m, textinput.Blink
				}
			}
		}
		return m, nil
	}

	// Cursor blink and other input-internal messages.
	if m.focusedIndex != buttonIndex {
		var cmd tea.Cmd
		m.inputs[m.focusedIndex], cmd = m.inputs[m.focusedIndex].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Form.Submit):
		return m.submit()

	case key.Matches(msg, keys.Form.Next):
		m.focus(m.nextIndex())
		return m, textinput.Blink

	case key.Matches(msg, keys.Form.Prev):
		m.focus(m.prevIndex())
		return m, textinput.Blink

	case key.Matches(msg, keys.Form.Enter):
		if m.focusedIndex == buttonIndex {
			return m.submit()
		}
		m.focus(m.nextIndex())
		return m, textinput.Blink
	}

	if m.focusedIndex == buttonIndex {
		return m, nil
	}

	i := m.focusedIndex
	before := m.inputs[i].Value()
	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)
	if after := m.inputs[i].Value(); after != before {
		if err := m.ctrl.UpdateField(registration.Fields[i], after); err != nil {
			log.Debug(log.CatUI, "Input dropped", "field", registration.Fields[i], "error", err)
		}
	}
	return m, cmd
}

// submit hands the current record to the controller.
func (m Model) submit() (Model, tea.Cmd) {
	m.formError = ""
	out, err := m.ctrl.Submit(context.Background())
	switch {
	case errors.Is(err, registration.ErrNotEditing), errors.Is(err, registration.ErrClosed):
		return m, nil
	case err != nil:
		m.formError = m.ctrl.Catalog().Text(registration.MsgSubmissionFailed)
		return m, func() tea.Msg { return SubmitFailedMsg{Err: err} }
	case !out.Accepted:
		if fields := out.Errors.Fields(); len(fields) > 0 {
			m.focus(indexOf(fields[0]))
		}
		log.Debug(log.CatUI, "Submit rejected", "errors", len(out.Errors))
		return m, textinput.Blink
	}

	m = m.Reset()
	sub := out.Submission
	return m, func() tea.Msg { return SubmittedMsg{Submission: sub} }
}

// Reset clears the inputs and returns focus to the first field. The
// controller's values are not touched.
func (m Model) Reset() Model {
	for i := range m.inputs {
		m.inputs[i].Reset()
	}
	m.formError = ""
	m.focus(0)
	return m
}

// SetCatalog refreshes placeholders and any form-level error after a locale
// change.
func (m Model) SetCatalog(cat registration.Catalog) Model {
	for i, f := range registration.Fields {
		m.inputs[i].Placeholder = cat.Placeholder(f)
	}
	if m.formError != "" {
		m.formError = cat.Text(registration.MsgSubmissionFailed)
	}
	return m
}

// SetWidth changes the form width.
func (m Model) SetWidth(width int) Model {
	if width <= 0 {
		width = DefaultWidth
	}
	m.width = width
	m.help.Width = m.sectionWidth()
	for i := range m.inputs {
		m.inputs[i].Width = m.inputWidth()
	}
	return m
}

// Focused returns the focused field and false when the button has focus.
func (m Model) Focused() (registration.Field, bool) {
	if m.focusedIndex == buttonIndex {
		return 0, false
	}
	return registration.Fields[m.focusedIndex], true
}

// Value returns the text currently shown in f's input.
func (m Model) Value(f registration.Field) string {
	return m.inputs[indexOf(f)].Value()
}

// FormError returns the form-level error, if any.
func (m Model) FormError() string {
	return m.formError
}

func (m *Model) focus(index int) {
	if m.focusedIndex != buttonIndex {
		m.inputs[m.focusedIndex].Blur()
	}
	m.focusedIndex = index
	if index != buttonIndex {
		m.inputs[index].Focus()
	}
}

// nextIndex walks fields then the button, wrapping to the first field.
func (m Model) nextIndex() int {
	switch {
	case m.focusedIndex == buttonIndex:
		return 0
	case m.focusedIndex == len(m.inputs)-1:
		return buttonIndex
	default:
		return m.focusedIndex + 1
	}
}

func (m Model) prevIndex() int {
	switch m.focusedIndex {
	case buttonIndex:
		return len(m.inputs) - 1
	case 0:
		return buttonIndex
	default:
		return m.focusedIndex - 1
	}
}

// inputWidth is the text input width inside a field section.
func (m Model) inputWidth() int {
	return max(m.sectionWidth()-4, 1)
}

// sectionWidth is the width of one field section inside the form box.
func (m Model) sectionWidth() int {
	return max(m.width-4, 10)
}

func indexOf(f registration.Field) int {
	for i, candidate := range registration.Fields {
		if candidate == f {
			return i
		}
	}
	return 0
}

func fieldZoneID(i int) string {
	return zoneFieldPrefix + registration.Fields[i].Key()
}
