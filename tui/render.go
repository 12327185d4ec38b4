package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	colorBorder   = lipgloss.Color("#cbd5e1") // slate-300
	colorDragging = lipgloss.Color("#38bdf8") // sky-400
	colorTitle    = lipgloss.Color("#1e293b") // slate-800
	colorBody     = lipgloss.Color("#475569") // slate-600
	colorStatus   = lipgloss.Color("#64748b") // slate-500

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	titleStyle  = lipgloss.NewStyle().Foreground(colorTitle).Bold(true)
	bodyStyle   = lipgloss.NewStyle().Foreground(colorBody)
	statusStyle = lipgloss.NewStyle().Foreground(colorStatus)
)

// View implements tea.Model. Cards are drawn bottom to top; the last row is
// a status line.
func (m *Model) View() string {
	rows := max(m.height-1, 1)
	base := strings.Repeat(strings.Repeat(" ", m.width)+"\n", rows-1) + strings.Repeat(" ", m.width)

	for _, c := range m.cards {
		x, y := m.screenPosition(c)
		base = overlayAt(base, renderCard(c), x, y, m.width, rows)
	}
	return base + "\n" + statusStyle.Render(ansi.Truncate(m.status(), m.width, "…"))
}

// renderCard draws c as a box exactly c.Width x c.Height cells. Title and
// text are cut to one line each so the box never grows.
func renderCard(c *card) string {
	inner := max(c.Width-4, 1) // border and padding
	style := cardStyle.Width(max(c.Width-2, 1)).Height(max(c.Height-2, 1))
	if _, dragging := c.Movable.Dragging(); dragging {
		style = style.BorderForeground(colorDragging)
	}
	if c.Color != "" {
		style = style.Background(lipgloss.Color(c.Color))
	}
	title := ansi.Truncate(c.Title, inner, "…")
	text := ansi.Truncate(strings.ReplaceAll(c.Text, "\n", " "), inner, "…")
	return style.Render(titleStyle.Render(title) + "\n" + bodyStyle.Render(text))
}

// screenPosition rounds the logical position to a cell and keeps the box on
// screen. Only placement on screen is clamped; the Movable keeps its position.
func (m *Model) screenPosition(c *card) (int, int) {
	p := c.Movable.Position()
	x := clampInt(int(math.Round(p.X)), 0, m.width-c.Width)
	y := clampInt(int(math.Round(p.Y)), 0, m.height-1-c.Height)
	return x, y
}

func (m *Model) status() string {
	for _, c := range m.cards {
		if _, dragging := c.Movable.Dragging(); dragging {
			p := c.Movable.Position()
			return fmt.Sprintf("dragging %s to (%.0f, %.0f) · esc cancels", c.Title, p.X, p.Y)
		}
	}
	return "drag cards with the left mouse button · q quits"
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// overlayAt composites an overlay string on top of a base string at the given
// cell position (x, y). Both are treated as line-based grids.
func overlayAt(base, overlay string, x, y, width, height int) string {
	baseLines := splitLines(base)
	overlayLines := splitLines(overlay)
	overlayWidth := maxLineWidth(overlayLines)
	for i, line := range overlayLines {
		row := y + i
		if row < 0 || row >= len(baseLines) || row >= height {
			continue
		}
		target := padRight(baseLines[row], width)
		left := ansi.Truncate(target, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}

		overlayLine := padRight(line, overlayWidth)
		pos := x + ansi.StringWidth(overlayLine)
		right := ""
		if width > 0 {
			right = ansi.TruncateLeft(target, pos, "")
			if gap := width - pos - ansi.StringWidth(right); gap > 0 {
				right = strings.Repeat(" ", gap) + right
			}
		}
		baseLines[row] = left + overlayLine + right
	}
	return strings.Join(baseLines, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

func maxLineWidth(lines []string) int {
	m := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > m {
			m = w
		}
	}
	return m
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
