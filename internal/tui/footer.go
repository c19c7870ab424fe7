package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// alignFooter places right flush against the right edge of width columns,
// keeping at least one space after left.
func alignFooter(left, right string, width int) string {
	spaces := width - lipgloss.Width(left) - lipgloss.Width(right)
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}
