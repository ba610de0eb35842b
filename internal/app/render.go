package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jackgrauer/chonk-note/internal/config"
	"github.com/jackgrauer/chonk-note/internal/grid"
	"github.com/jackgrauer/chonk-note/internal/pool"
	"github.com/jackgrauer/chonk-note/internal/theme"
)

// View renders the editing pane, the status bar, and the help overlay.
func (m *Model) View() tea.View {
	var view tea.View

	var content string
	if m.showHelp {
		content = m.renderHelp()
	} else {
		content = m.renderPane()
		if config.ShowStatusBar {
			content += "\n" + m.renderStatusBar()
		}
	}

	view.SetContent(lipgloss.Sprint(content))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}

// renderPane draws the visible window of the grid. Styling is resolved per
// cell and emitted in runs so a line of uniform text costs one escape
// sequence, not one per cell.
func (m *Model) renderPane() string {
	width := max(m.width, 1)
	height := m.paneHeight()
	g := m.ed.Grid()
	view := m.ed.Viewport()

	rows := pool.GetRowSlice()
	defer pool.PutRowSlice(rows)
	for row := 0; row < height; row++ {
		b := pool.GetStringBuilder()
		m.renderRow(b, g, view.ScrollY+row, view.ScrollX, width)
		*rows = append(*rows, b.String())
		pool.PutStringBuilder(b)
	}
	return strings.Join(*rows, "\n")
}

func (m *Model) renderRow(b *strings.Builder, g *grid.Grid, row, startCol, width int) {
	var run strings.Builder
	var runStyle lipgloss.Style
	runActive := false

	flush := func() {
		if run.Len() > 0 {
			b.WriteString(runStyle.Render(run.String()))
			run.Reset()
		}
		runActive = false
	}

	for i := 0; i < width; i++ {
		pos := grid.Pos{Row: row, Col: startCol + i}
		cell := g.Get(pos)
		style := m.cellStyle(pos, cell)
		if !runActive || !styleEq(style, runStyle) {
			flush()
			runStyle = style
			runActive = true
		}
		run.WriteRune(cell.Display())
	}
	flush()
}

// cellStyle resolves the display style for one position. Precedence is
// cursor, then selection, then the cell's own extraction styling.
func (m *Model) cellStyle(pos grid.Pos, cell grid.Cell) lipgloss.Style {
	style := lipgloss.NewStyle()

	if pos == m.ed.CursorPosition() {
		fg, bg := theme.CursorColors()
		return style.Foreground(fg).Background(bg)
	}
	if m.ed.Selected(pos) {
		fg, bg := theme.SelectionColors()
		return style.Foreground(fg).Background(bg)
	}

	switch {
	case cell.Style.Fg != nil:
		style = style.Foreground(cell.Style.Fg)
	case cell.Style.Class == grid.FontTitle:
		style = style.Foreground(theme.TitleFg()).Bold(true)
	case cell.Style.Class == grid.FontLarge:
		style = style.Foreground(theme.HeadingFg()).Bold(true)
	case cell.Style.Class == grid.FontSmall:
		style = style.Foreground(theme.SmallFg())
	default:
		style = style.Foreground(theme.EditorFg())
	}
	if cell.Style.Bold {
		style = style.Bold(true)
	}
	if cell.Style.Italic {
		style = style.Italic(true)
	}
	return style
}

// styleEq compares two styles by their rendered form on a probe rune.
// lipgloss styles are not directly comparable.
func styleEq(a, b lipgloss.Style) bool {
	return a.Render("x") == b.Render("x")
}

// renderStatusBar draws the single status line: note title and dirty marker
// on the left, transient status in the middle, mode and position on the
// right.
func (m *Model) renderStatusBar() string {
	base := lipgloss.NewStyle().
		Background(theme.StatusBarBg()).
		Foreground(theme.StatusBarFg())

	title := m.note.Title
	if title == "" {
		title = "untitled"
	}
	if m.ed.Dirty() {
		title += " *"
	}
	left := base.Foreground(theme.StatusBarAccent()).Render(" " + title + " ")

	var rightParts []string
	if m.hasReport && m.report.LowFidelity() {
		rightParts = append(rightParts,
			base.Foreground(theme.StatusBarWarning()).Render(m.fidelitySummary()))
	}
	if m.populating {
		rightParts = append(rightParts, base.Render("extracting..."))
	}
	mode := "INS"
	if m.ed.Overwrite() {
		mode = "OVR"
	}
	rightParts = append(rightParts,
		base.Foreground(theme.OverwriteIndicator()).Render(mode))
	pos := m.ed.CursorPosition()
	rightParts = append(rightParts, base.Render(fmt.Sprintf("%d:%d ", pos.Row+1, pos.Col+1)))
	right := strings.Join(rightParts, base.Render(" | "))

	middle := ""
	if m.status != "" {
		middle = base.Render(m.status)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	pad := base.Render(strings.Repeat(" ", gap/2))
	padRight := base.Render(strings.Repeat(" ", gap-gap/2))

	return left + pad + middle + padRight + right
}

// fidelitySummary compresses the extraction report into a short warning.
func (m *Model) fidelitySummary() string {
	var parts []string
	if m.report.SkippedMalformed > 0 {
		parts = append(parts, fmt.Sprintf("%d malformed", m.report.SkippedMalformed))
	}
	if m.report.SkippedZeroWidth > 0 {
		parts = append(parts, fmt.Sprintf("%d degenerate", m.report.SkippedZeroWidth))
	}
	if m.report.RotatedLowFidelity > 0 {
		parts = append(parts, fmt.Sprintf("%d rotated", m.report.RotatedLowFidelity))
	}
	if m.report.LinesCompressed > 0 {
		parts = append(parts, fmt.Sprintf("%d lines compressed", m.report.LinesCompressed))
	}
	return "! " + strings.Join(parts, ", ")
}
