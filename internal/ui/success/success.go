// Package success renders the card shown after a registration is accepted.
package success

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/ui/styles"
)

const cardWidth = 44

var (
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.StatusSuccessColor).
			Padding(1, 2)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.StatusSuccessColor)
)

// Model is the success card.
type Model struct {
	catalog registration.Catalog
	width   int
	height  int
}

// New creates a card using cat for its text.
func New(cat registration.Catalog) Model {
	return Model{catalog: cat}
}

// SetCatalog swaps the text catalog.
func (m Model) SetCatalog(cat registration.Catalog) Model {
	m.catalog = cat
	return m
}

// SetSize sets the area the card is centered in.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the card, centered when a size is known.
func (m Model) View() string {
	inner := cardWidth - 6 // border and padding
	if m.width > 0 {
		inner = min(inner, max(m.width-6, 10))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("✓ " + m.catalog.Text(registration.MsgSuccessTitle)))
	b.WriteString("\n\n")
	b.WriteString(styles.DescriptionStyle.Render(
		wordwrap.String(m.catalog.Text(registration.MsgSuccessBody), inner)))

	card := borderStyle.Width(inner + 4).Render(b.String())
	if m.width == 0 || m.height == 0 {
		return card
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card)
}
