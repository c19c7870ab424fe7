// Copyright (c) 2026 FlowerPassword Team
// FlowerPassword - deterministic password derivation
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for FlowerPassword.
// This file defines the shared lipgloss styles.
package tui // import "github.com/toeirei/flowerpassword/internal/tui"

import "github.com/charmbracelet/lipgloss"

// colorPalette defines the core colors used in the TUI.
const (
	colorSubtle    = lipgloss.Color("240") // Muted gray
	colorHighlight = lipgloss.Color("81")  // Teal
	colorSpecial   = lipgloss.Color("208") // Orange
	colorError     = lipgloss.Color("196")
	colorSuccess   = lipgloss.Color("40")
	colorWhite     = lipgloss.Color("231")
	colorFocus     = lipgloss.Color("170")
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(0, 0, 1, 0)

	focusedStyle = lipgloss.NewStyle().Foreground(colorFocus)
	labelStyle   = lipgloss.NewStyle().Foreground(colorSubtle)

	passwordStyle      = lipgloss.NewStyle().Foreground(colorSpecial).Bold(true)
	placeholderStyle   = lipgloss.NewStyle().Foreground(colorSubtle).Italic(true)
	sectionTitleStyle  = lipgloss.NewStyle().Foreground(colorHighlight).MarginTop(1)
	itemStyle          = lipgloss.NewStyle().PaddingLeft(2)
	selectedItemStyle  = lipgloss.NewStyle().Foreground(colorHighlight)
	dimItemStyle       = lipgloss.NewStyle().Foreground(colorSubtle)
	helpStyle          = lipgloss.NewStyle().Foreground(colorSubtle)
	errorStyle         = lipgloss.NewStyle().Foreground(colorError)
	successStyle       = lipgloss.NewStyle().Foreground(colorSuccess)
	statusMessageStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(colorWhite).
				Background(colorHighlight)
)
