package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded) - used by RenderFormSection.
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// SectionState selects the border color of a form section.
type SectionState int

const (
	SectionBlurred SectionState = iota
	SectionFocused
	SectionInvalid
)

func (s SectionState) borderColor() lipgloss.TerminalColor {
	switch s {
	case SectionFocused:
		return FormTextInputFocusedBorderColor
	case SectionInvalid:
		return StatusErrorColor
	default:
		return BorderDefaultColor
	}
}

// RenderFormSection renders a bordered section with an optional title and hint:
//
//	╭─ Title (hint) ──────╮
//	│content              │
//	╰─────────────────────╯
func RenderFormSection(content []string, title, hint string, width int, state SectionState) string {
	borderColor := state.borderColor()
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(borderColor)

	innerWidth := max(width-2, 1) // left/right borders

	var topBorder string
	if title == "" {
		topBorder = borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	} else {
		titleLen := lipgloss.Width(title)
		if hint != "" {
			titleLen = lipgloss.Width(title + " (" + hint + ")")
		}
		dashesAfter := max(innerWidth-titleLen-3, 0) // "─ " before and " " after title

		topBorder = borderStyle.Render(borderTopLeft+borderHorizontal+" ") + titleStyle.Render(title)
		if hint != "" {
			topBorder += " " + HintStyle.Render("("+hint+")")
		}
		topBorder += borderStyle.Render(" " + strings.Repeat(borderHorizontal, dashesAfter) + borderTopRight)
	}

	contentLines := make([]string, 0, len(content))
	for _, row := range content {
		lineWidth := lipgloss.Width(row)
		padding := ""
		if lineWidth < innerWidth {
			padding = strings.Repeat(" ", innerWidth-lineWidth)
		}
		contentLines = append(contentLines, borderStyle.Render(borderVertical)+row+padding+borderStyle.Render(borderVertical))
	}

	bottomBorder := borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight)

	return topBorder + "\n" + strings.Join(contentLines, "\n") + "\n" + bottomBorder
}

// RenderButton renders a primary button, highlighted when focused.
func RenderButton(label string, focused bool) string {
	if focused {
		return PrimaryButtonFocusedStyle.Render(label)
	}
	return PrimaryButtonStyle.Render(label)
}
