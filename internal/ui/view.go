package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hwpanel/menunav/internal/engine"
	"github.com/muesli/reflow/truncate"
)

const progressBarWidth = 10

// View implements tea.Model.
func (m *Model) View() string {
	if !m.haveSnapshot {
		return styles.Placeholder.Render("starting…")
	}
	var lines []string
	lines = append(lines, m.headerLine())
	if m.snapshot.IsApplication {
		lines = append(lines, m.applicationLines()...)
	} else {
		lines = append(lines, m.menuLines()...)
	}
	if notice := m.currentNotice(); notice != "" {
		lines = append(lines, "", styles.Error.Render(notice))
	}
	if m.showFooter {
		lines = append(lines, "", styles.Footer.Render(m.footerText()))
	}
	if m.jumping {
		lines = append(lines, "", m.jumpInput.View())
	}
	return m.fitToViewport(lines)
}

func (m *Model) headerLine() string {
	title := m.snapshot.Title
	if title == "" {
		title = "menu"
	}
	header := styles.Title.Render(title)
	if !m.snapshot.IsApplication && m.snapshot.Pages > 1 {
		indicator := fmt.Sprintf("%d/%d", m.snapshot.PageIndex+1, m.snapshot.Pages)
		if m.transitioning {
			indicator += " …"
		}
		gap := m.width - lipgloss.Width(header) - len(indicator)
		if gap < 1 {
			gap = 1
		}
		header += strings.Repeat(" ", gap) + styles.Scrollbar.Render(indicator)
	}
	return header
}

func (m *Model) menuLines() []string {
	page := m.snapshot.Page
	var lines []string
	if page.ShowHeading {
		lines = append(lines, styles.Heading.Render(page.Heading))
		if page.SubHeading != "" {
			lines = append(lines, styles.SubHeading.Render(page.SubHeading))
		}
	}
	if page.Empty {
		placeholder := page.Placeholder
		if placeholder == "" {
			placeholder = "(no entries)"
		}
		lines = append(lines, styles.Placeholder.Render(placeholder))
		return lines
	}
	for _, row := range page.Items {
		lines = append(lines, m.rowLine(row))
	}
	if m.snapshot.ShowScrollbar {
		lines = append(lines, styles.Scrollbar.Render(m.scrollbarLine()))
	}
	return lines
}

func (m *Model) rowLine(row engine.PageItem) string {
	indicator := "▌"
	indicatorStyle := styles.ItemIndicator
	base := styles.Item
	switch {
	case row.Selected:
		indicatorStyle = styles.SelectedIndicator
		base = styles.SelectedItem
	case row.Faded:
		base = styles.FadedItem
	}
	text := row.Label
	if row.Icon != "" {
		text = styles.Icon.Render(row.Icon) + " " + text
	}
	if row.HasProgress {
		text += " " + progressBar(row.Progress)
	}
	line := indicatorStyle.Render(indicator) + " " + m.styledRowText(base, row, text)
	if m.width > 0 && lipgloss.Width(line) > m.width {
		line = truncate.StringWithTail(line, uint(m.width-1), "…")
	}
	return line
}

func (m *Model) styledRowText(base *lipgloss.Style, row engine.PageItem, text string) string {
	style := styles.RowStyle(base, row.Color, row.BackgroundColor, row.Opacity)
	return style.Render(text)
}

func progressBar(v float64) string {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	filled := int(v*progressBarWidth + 0.5)
	return styles.ProgressFilled.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmpty.Render(strings.Repeat("░", progressBarWidth-filled))
}

func (m *Model) scrollbarLine() string {
	pages := m.snapshot.Pages
	if pages < 1 {
		pages = 1
	}
	cells := make([]string, pages)
	for i := range cells {
		if i == m.snapshot.PageIndex {
			cells[i] = "█"
		} else {
			cells[i] = "░"
		}
	}
	return strings.Join(cells, "")
}

func (m *Model) applicationLines() []string {
	var lines []string
	if m.activeApp != nil {
		if s, ok := m.activeApp.(fmt.Stringer); ok {
			for _, line := range strings.Split(s.String(), "\n") {
				lines = append(lines, styles.Application.Render(line))
			}
			return lines
		}
	}
	lines = append(lines, styles.Application.Render("(no display)"))
	return lines
}

func (m *Model) footerText() string {
	if m.snapshot.IsApplication {
		return "↑/↓ send  esc back  ctrl+c quit"
	}
	return "↑/↓ move  enter select  esc back  g home  / jump  q quit"
}

func (m *Model) fitToViewport(lines []string) string {
	if m.height > 0 && len(lines) > m.height {
		lines = append(lines[:m.height-1:m.height-1], "…")
	}
	if m.width > 0 {
		for i, line := range lines {
			if lipgloss.Width(line) > m.width {
				lines[i] = truncate.StringWithTail(line, uint(m.width-1), "…")
			}
		}
	}
	return strings.Join(lines, "\n")
}
