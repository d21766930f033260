package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(m *Model, width int) string {
	parts := make([]string, 0, len(hintKeys()))
	seen := make(map[string]bool)
	for _, b := range hintKeys() {
		h := b.Help()
		if seen[h.Key] {
			continue
		}
		seen[h.Key] = true
		parts = append(parts, keyStyle.Render(h.Key)+" "+hintStyle.Render(h.Desc))
	}
	left := " " + strings.Join(parts, "  ")

	right := ""
	if m.lastClick != "" {
		right = clickedStyle.Render("→ "+m.lastClick) + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
