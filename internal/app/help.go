package app

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/jackgrauer/chonk-note/internal/config"
	"github.com/jackgrauer/chonk-note/internal/theme"
)

// renderHelp draws the full-screen help overlay from the live keybind
// registry, so remapped keys show the user's bindings rather than the
// defaults.
func (m *Model) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.HelpTitle()).
		Bold(true)
	sectionStyle := lipgloss.NewStyle().
		Foreground(theme.StatusBarAccent()).
		Bold(true).
		MarginTop(1)
	keyStyle := lipgloss.NewStyle().
		Foreground(theme.HelpKeyBadge()).
		Width(m.helpKeyWidth())
	descStyle := lipgloss.NewStyle().
		Foreground(theme.HelpText())

	var b strings.Builder
	b.WriteString(titleStyle.Render("chonk-note"))
	b.WriteByte('\n')
	b.WriteString(descStyle.Render("press any key to close"))
	b.WriteByte('\n')

	for _, section := range config.GetKeybindings(m.registry) {
		b.WriteString(sectionStyle.Render(section.Title))
		b.WriteByte('\n')
		for _, binding := range section.Bindings {
			b.WriteString(keyStyle.Render(binding.Key))
			b.WriteString("  ")
			b.WriteString(descStyle.Render(binding.Description))
			b.WriteByte('\n')
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(0, 2).
		Render(strings.TrimRight(b.String(), "\n"))

	return lipgloss.Place(max(m.width, 1), max(m.height, 1),
		lipgloss.Center, lipgloss.Center, box)
}

// helpKeyWidth sizes the key column to the longest binding so the
// descriptions line up across sections.
func (m *Model) helpKeyWidth() int {
	width := 0
	for _, section := range config.GetKeybindings(m.registry) {
		for _, binding := range section.Bindings {
			width = max(width, lipgloss.Width(binding.Key))
		}
	}
	return width
}
