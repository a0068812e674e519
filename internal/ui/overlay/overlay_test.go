package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlace_Center(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	result := Place(Config{Width: 5, Height: 3, Position: Center}, "XX", bg)

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "AAAAA", lines[0])
	assert.Equal(t, "AXXAA", lines[1])
	assert.Equal(t, "AAAAA", lines[2])
}

func TestPlace_Top_WithPadding(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	result := Place(Config{Width: 5, Height: 3, Position: Top, PadY: 1}, "XX", bg)

	lines := strings.Split(result, "\n")
	assert.Equal(t, "AAAAA", lines[0])
	assert.Contains(t, lines[1], "XX")
}

func TestPlace_Bottom(t *testing.T) {
	bg := "AAAAA\nAAAAA\nAAAAA"
	result := Place(Config{Width: 5, Height: 3, Position: Bottom}, "XX", bg)

	lines := strings.Split(result, "\n")
	assert.Contains(t, lines[2], "XX")
	assert.Equal(t, "AAAAA", lines[0])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	result := Place(Config{Width: 4, Height: 3, Position: Bottom}, "XX", "AAAA")

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, " XX ", lines[2])
}

func TestPlace_LargeForegroundClampsOrigin(t *testing.T) {
	result := Place(Config{Width: 3, Height: 2, Position: Center}, "XXXXX\nXXXXX\nXXXXX", "AAA\nAAA")

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 2, "rows past the background are dropped")
	assert.Equal(t, "XXXXX", lines[0])
}
