package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// statusBar renders the single-row status line: pack name, player level,
// roster size, and battle HP when a battle is running.
func (m Model) statusBar() string {
	if m.width == 0 {
		return ""
	}

	eng := m.session.Engine
	p := eng.State.Player
	left := fmt.Sprintf(" %s · Player Lv.%d · %d chars · %d phrases",
		eng.Defs.Pack.Name, p.Level, p.CharactersOwned, p.PhrasesUnlocked)

	right := ""
	if b := eng.Battle; b != nil && !b.Over {
		a := b.ActiveCombatant()
		right = fmt.Sprintf("%s %d/%d vs %s %d/%d ",
			a.Glyph, a.CurrentHP, a.MaxHP,
			b.Opponent.Name, b.Opponent.CurrentHP, b.Opponent.MaxHP)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left
	for i := 0; i < gap; i++ {
		bar += " "
	}
	bar += right
	return styleStatusBar.Width(m.width).Render(bar)
}
