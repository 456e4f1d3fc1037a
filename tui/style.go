package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNormal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleLevelUp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)

	styleBattle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNormal lineKind = iota
	kindLevelUp
	kindBattle
	kindError
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "Error:"):
		return kindError
	case strings.Contains(line, "reached level") ||
		strings.Contains(line, "Achievement unlocked"):
		return kindLevelUp
	case strings.HasPrefix(line, "A wild ") ||
		strings.Contains(line, " hits ") ||
		strings.Contains(line, " counters "):
		return kindBattle
	default:
		return kindNormal
	}
}

// styleFor returns the style for a line kind.
func styleFor(kind lineKind) lipgloss.Style {
	switch kind {
	case kindLevelUp:
		return styleLevelUp
	case kindBattle:
		return styleBattle
	case kindError:
		return styleError
	default:
		return styleNormal
	}
}
