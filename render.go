package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"blockfall/engine"
)

type Theme struct {
	Name        string
	BorderColor lipgloss.Color
	TextColor   lipgloss.Color
	AccentColor lipgloss.Color
	PieceColors [engine.KindCount]lipgloss.Color
}

var themes = []Theme{
	{
		Name:        "Classic",
		BorderColor: lipgloss.Color("15"),
		TextColor:   lipgloss.Color("250"),
		AccentColor: lipgloss.Color("226"),
		PieceColors: [engine.KindCount]lipgloss.Color{"51", "226", "93", "46", "196", "21", "208"},
	},
	{
		Name:        "Amber Terminal",
		BorderColor: lipgloss.Color("214"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("208"),
		PieceColors: [engine.KindCount]lipgloss.Color{"220", "214", "222", "208", "215", "216", "223"},
	},
	{
		Name:        "Ocean Neon",
		BorderColor: lipgloss.Color("33"),
		TextColor:   lipgloss.Color("159"),
		AccentColor: lipgloss.Color("39"),
		PieceColors: [engine.KindCount]lipgloss.Color{"45", "39", "51", "44", "50", "75", "81"},
	},
	{
		Name:        "Forest CRT",
		BorderColor: lipgloss.Color("22"),
		TextColor:   lipgloss.Color("120"),
		AccentColor: lipgloss.Color("34"),
		PieceColors: [engine.KindCount]lipgloss.Color{"47", "64", "77", "48", "71", "35", "106"},
	},
	{
		Name:        "Mono Matrix",
		BorderColor: lipgloss.Color("250"),
		TextColor:   lipgloss.Color("245"),
		AccentColor: lipgloss.Color("82"),
		PieceColors: [engine.KindCount]lipgloss.Color{"236", "239", "242", "245", "248", "251", "254"},
	},
	{
		Name:        "Volcanic",
		BorderColor: lipgloss.Color("203"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("214"),
		PieceColors: [engine.KindCount]lipgloss.Color{"52", "88", "124", "160", "196", "202", "208"},
	},
}

func themeIndexByName(name string) int {
	for i, theme := range themes {
		if theme.Name == name {
			return i
		}
	}
	return -1
}

func viewMenu(m Model) string {
	theme := themes[m.themeIndex]
	content := renderMenu("BLOCKFALL", menuItems, m.menuIndex, "Enter to select, Q to quit", theme)
	return center(m.width, m.height, content)
}

func viewThemes(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(themes))
	for _, t := range themes {
		items = append(items, t.Name)
	}
	preview := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle(theme).Render("Theme Preview"),
		renderPreviewRow(theme, []engine.Kind{engine.KindI, engine.KindO, engine.KindT, engine.KindS}),
		renderPreviewRow(theme, []engine.Kind{engine.KindZ, engine.KindJ, engine.KindL}),
	)
	menu := renderMenu("Themes", items, m.themeIndex, "Enter to apply, Esc to back", theme)
	return center(m.width, m.height, lipgloss.JoinVertical(lipgloss.Left, preview, "", menu))
}

func renderPreviewRow(theme Theme, kinds []engine.Kind) string {
	items := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		items = append(items, lipgloss.NewStyle().MarginRight(1).Render(renderMiniPiece(kind, theme, 1)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

func viewConfig(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(configItems))
	for i, item := range configItems {
		switch i {
		case 0:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Sound)))
		case 1:
			items = append(items, fmt.Sprintf("%s: %s", item, onOff(m.config.Music)))
		case 2:
			items = append(items, fmt.Sprintf("%s: %d%%", item, clampVolumePercent(m.config.Volume)))
		case 3:
			items = append(items, fmt.Sprintf("%s: %dx", item, clampScale(m.config.Scale)))
		}
	}
	content := renderMenu("Config", items, m.configIndex, "Enter to toggle, Left/Right to adjust, Esc to back", theme)
	return center(m.width, m.height, content)
}

func onOff(value bool) string {
	if value {
		return "ON"
	}
	return "OFF"
}

func viewGame(m Model) string {
	theme := themes[m.themeIndex]
	scale := clampScale(m.config.Scale)
	minWidth, minHeight := minGameSize(m.game, scale)
	if m.width > 0 && m.height > 0 && (m.width < minWidth || m.height < minHeight) {
		message := fmt.Sprintf("Terminal too small. Need at least %dx%d. Current %dx%d.", minWidth, minHeight, m.width, m.height)
		return center(m.width, m.height, message)
	}
	board := renderBoard(m.game, theme, scale, m.isFlashing())
	info := renderInfo(m, theme, scale)
	content := lipgloss.JoinHorizontal(lipgloss.Top, board, info)
	if m.width > 0 && m.width < minWidth+24 {
		content = lipgloss.JoinVertical(lipgloss.Left, board, info)
	}
	if m.isFlashing() {
		shake := (time.Now().UnixNano() / int64(18*time.Millisecond)) % 2
		if shake == 0 {
			content = lipgloss.NewStyle().PaddingLeft(1).Render(content)
		}
	}
	return center(m.width, m.height, content)
}

func renderBoard(g *engine.Game, theme Theme, scale int, flash bool) string {
	border := lipgloss.NewStyle().Foreground(theme.BorderColor)
	cellEmpty := lipgloss.NewStyle()
	cellText := strings.Repeat(" ", cellWidth(scale))
	flashStyle := lipgloss.NewStyle().Background(lipgloss.Color("15"))

	board := g.Grid()
	if !g.Over() {
		current := g.Current()
		for _, c := range current.Cells() {
			if c.Y >= 0 && c.Y < g.Height() && c.X >= 0 && c.X < g.Width() {
				board[c.Y][c.X] = current.Kind.Cell()
			}
		}
	}

	var b strings.Builder
	b.WriteString(border.Render("+" + strings.Repeat("-", g.Width()*cellWidth(scale)) + "+"))
	b.WriteString("\n")
	for y := 0; y < g.Height(); y++ {
		for repeat := 0; repeat < scale; repeat++ {
			b.WriteString(border.Render("|"))
			for x := 0; x < g.Width(); x++ {
				val := board[y][x]
				if flash {
					b.WriteString(flashStyle.Render(cellText))
					continue
				}
				if val == engine.CellEmpty {
					b.WriteString(cellEmpty.Render(cellText))
					continue
				}
				color := theme.PieceColors[int(val)%engine.KindCount]
				b.WriteString(lipgloss.NewStyle().Background(color).Render(cellText))
			}
			b.WriteString(border.Render("|"))
			b.WriteString("\n")
		}
	}
	b.WriteString(border.Render("+" + strings.Repeat("-", g.Width()*cellWidth(scale)) + "+"))
	return b.String()
}

func renderInfo(m Model, theme Theme, scale int) string {
	g := m.game
	var b strings.Builder
	pad := lipgloss.NewStyle().PaddingLeft(2)
	b.WriteString(pad.Render(titleStyle(theme).Render("Next")))
	b.WriteString("\n")
	b.WriteString(pad.Render(renderMiniPiece(g.Next().Kind, theme, scale)))
	b.WriteString("\n\n")
	b.WriteString(pad.Render(fmt.Sprintf("Score: %d", g.Score())))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Lines: %d", g.Lines())))
	b.WriteString("\n")
	b.WriteString(pad.Render(fmt.Sprintf("Level: %d", g.Level())))
	b.WriteString("\n\n")
	if m.lastDelta > 0 {
		b.WriteString(pad.Render(highlightStyle(theme).Render(fmt.Sprintf("LINE CLEAR +%d", m.lastDelta))))
		b.WriteString("\n\n")
	}
	keys := []string{
		"A/D or Arrows: move",
		"W or Up: rotate",
		"S or Down: soft drop",
		"Space: hard drop",
		"R: restart",
		"P: pause",
		"Q: menu",
	}
	for _, line := range keys {
		b.WriteString(pad.Render(helpStyle(theme).Render(line)))
		b.WriteString("\n")
	}
	if m.paused && !g.Over() {
		b.WriteString("\n")
		b.WriteString(pad.Render(highlightStyle(theme).Render("Paused")))
		b.WriteString("\n")
	}
	if g.Over() && !m.isFlashing() {
		b.WriteString("\n")
		b.WriteString(pad.Render(highlightStyle(theme).Render("GAME OVER")))
		b.WriteString("\n")
		b.WriteString(pad.Render(fmt.Sprintf("Final score: %d", g.Score())))
		b.WriteString("\n")
		b.WriteString(pad.Render(helpStyle(theme).Render("R to restart, Q for menu")))
		b.WriteString("\n")
	}
	return b.String()
}

// renderMiniPiece draws a kind in its spawn orientation, trimmed to the
// bounding box of its cells.
func renderMiniPiece(kind engine.Kind, theme Theme, scale int) string {
	cells := engine.PreviewCells(kind)
	minX, minY := cells[0].X, cells[0].Y
	maxX, maxY := cells[0].X, cells[0].Y
	for _, c := range cells {
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}
	grid := make([][]bool, maxY-minY+1)
	for y := range grid {
		grid[y] = make([]bool, maxX-minX+1)
	}
	for _, c := range cells {
		grid[c.Y-minY][c.X-minX] = true
	}
	cellText := strings.Repeat(" ", cellWidth(scale))
	filled := lipgloss.NewStyle().Background(theme.PieceColors[int(kind)%engine.KindCount])
	var b strings.Builder
	for _, row := range grid {
		for repeat := 0; repeat < scale; repeat++ {
			for _, on := range row {
				if on {
					b.WriteString(filled.Render(cellText))
				} else {
					b.WriteString(cellText)
				}
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func minGameSize(g *engine.Game, scale int) (int, int) {
	width := g.Width()*cellWidth(scale) + 4
	height := g.Height()*scale + 4
	return width, height
}

func titleStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func highlightStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
}

func helpStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.TextColor)
}

func center(width, height int, content string) string {
	if width == 0 || height == 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func clampScale(value int) int {
	if value < 1 {
		return 1
	}
	if value > 3 {
		return 3
	}
	return value
}

func clampVolumePercent(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}

func cellWidth(scale int) int {
	if scale < 1 {
		scale = 1
	}
	return 2 * scale
}

func renderMenu(title string, items []string, selected int, footer string, theme Theme) string {
	maxWidth := lipgloss.Width(title)
	for _, item := range items {
		if width := lipgloss.Width(item); width > maxWidth {
			maxWidth = width
		}
	}
	if width := lipgloss.Width(footer); width > maxWidth {
		maxWidth = width
	}
	lineStyle := lipgloss.NewStyle().Width(maxWidth).Align(lipgloss.Center)
	var b strings.Builder
	b.WriteString(lineStyle.Render(titleStyle(theme).Render(title)))
	b.WriteString("\n\n")
	for i, item := range items {
		if i == selected {
			b.WriteString(lineStyle.Render(highlightStyle(theme).Render(item)))
		} else {
			b.WriteString(lineStyle.Render(item))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lineStyle.Render(helpStyle(theme).Render(footer)))
	return b.String()
}
