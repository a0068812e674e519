package styles

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "..."

// TruncateString cuts s to maxWidth cells, ending in "..." when anything was
// dropped. Styled input keeps its escape sequences.
func TruncateString(s string, maxWidth int) string {
	switch {
	case maxWidth < 1:
		return ""
	case ansi.StringWidth(s) <= maxWidth:
		return s
	case maxWidth <= len(ellipsis):
		return strings.Repeat(".", maxWidth)
	}
	return ansi.Truncate(s, maxWidth, ellipsis)
}
