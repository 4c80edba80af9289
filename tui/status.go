package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// xpLabel is "XP 120/300" while a next level exists, else "XP 120 (max)".
func (m Model) xpLabel() string {
	xp := m.engine.Player.XP
	if next, ok := m.engine.XPForNextLevel(); ok {
		return fmt.Sprintf("XP %d/%d", xp, xp+next)
	}
	return fmt.Sprintf("XP %d (max)", xp)
}

// renderStatusBar produces a full-width inverted status line showing the
// title, XP progress, coins, corruption, streak and the current arc. The
// arc is dropped first when the terminal is narrow.
func (m Model) renderStatusBar() string {
	p := m.engine.Player

	left := fmt.Sprintf(" %s | %s | %dc", m.engine.FullTitle(), m.xpLabel(), p.Coins)
	right := fmt.Sprintf("Corr %d | Streak %d ", p.Corruption, p.DailyStreak)
	withArc := fmt.Sprintf("Corr %d | Streak %d | %s ", p.Corruption, p.DailyStreak, m.engine.CurrentArc().Name)
	if lipgloss.Width(left)+lipgloss.Width(withArc)+2 < m.width {
		right = withArc
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	bar := left + strings.Repeat(" ", gap) + right

	style := styleStatusBar
	if m.engine.EffectiveCorruption() >= 10 {
		style = styleStatusCorrupt
	}
	return style.Width(m.width).Render(bar)
}
