package regform

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/signup/internal/keys"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/ui/styles"
)

// View renders the form box. Zone markers are left in place for the root
// model's zone.Scan.
func (m Model) View() string {
	cat := m.ctrl.Catalog()
	errs := m.ctrl.Errors()
	contentPadding := lipgloss.NewStyle().PaddingLeft(1)

	var content strings.Builder
	content.WriteString(contentPadding.Render(styles.TitleStyle.Render(cat.Text(registration.MsgFormTitle))))
	content.WriteString("\n")
	content.WriteString(contentPadding.Render(styles.DescriptionStyle.Render(
		wordwrap.String(cat.Text(registration.MsgFormDescription), m.sectionWidth()))))
	content.WriteString("\n\n")

	for i, f := range registration.Fields {
		content.WriteString(contentPadding.Render(m.renderField(i, f, cat, errs)))
		content.WriteString("\n")
	}

	if m.formError != "" {
		content.WriteString("\n")
		content.WriteString(contentPadding.Render(styles.ErrorStyle.Render(
			wordwrap.String(m.formError, m.sectionWidth()))))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	button := styles.RenderButton(cat.Text(registration.MsgSubmitLabel), m.focusedIndex == buttonIndex)
	content.WriteString(contentPadding.Render(zone.Mark(zoneSubmitButton, button)))
	content.WriteString("\n\n")
	content.WriteString(contentPadding.Render(m.help.ShortHelpView(keys.Form.ShortHelp())))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.OverlayBorderColor).
		Width(m.width - 2)

	return box.Render(content.String())
}

// renderField renders one input section plus its inline error.
func (m Model) renderField(i int, f registration.Field, cat registration.Catalog, errs registration.Errors) string {
	state := styles.SectionBlurred
	switch {
	case errs.Has(f):
		state = styles.SectionInvalid
	case m.focusedIndex == i:
		state = styles.SectionFocused
	}

	section := styles.RenderFormSection(
		[]string{" " + m.inputs[i].View()},
		cat.Label(f),
		cat.Text(registration.MsgRequiredHint),
		m.sectionWidth(),
		state,
	)
	section = zone.Mark(fieldZoneID(i), section)

	if !errs.Has(f) {
		return section
	}
	msg := wordwrap.String(errs.Message(f), m.sectionWidth()-2)
	return section + "\n" + styles.FieldErrorStyle.Render(indentLines(msg, " "))
}

func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
