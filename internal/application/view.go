package application

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const cellWidth = 12

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
	noticeStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	errorStyle  = noticeStyle.BorderForeground(lipgloss.Color("1"))
)

func (m Model) View() string {
	if m.notice != nil {
		return m.viewNotice()
	}

	var b strings.Builder
	switch m.mode {
	case modePrompt:
		b.WriteString(titleStyle.Render(m.prompt.label))
		b.WriteString("\n> " + m.input + "_\n\n")
		b.WriteString(helpStyle.Render("enter: confirm  esc: cancel"))
	case modeGrid, modeEdit:
		b.WriteString(m.viewGrid())
	default:
		b.WriteString(m.viewMenu())
	}

	if m.status != "" {
		b.WriteString("\n\n" + m.status)
	}
	return b.String() + "\n"
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.menu.Title))
	b.WriteString("\n")
	for i, item := range m.menu.Items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(cursor + item.Label + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("↑/↓: move  enter: select  esc: back  q: quit"))
	return b.String()
}

func (m Model) viewNotice() string {
	n := m.notice
	body := n.summary
	if n.detail != "" {
		body += "\n" + n.detail
	}
	body += "\n\n" + helpStyle.Render("enter: OK")

	style := noticeStyle
	if n.err {
		style = errorStyle
	}
	return style.Render(body) + "\n"
}

func (m Model) viewGrid() string {
	view := m.svc.Page()
	st := view.State

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Strona %d z %d  |  %d rekordów  |  Pokaż %d",
		st.Index+1, st.Count, st.Total, st.Size)))
	b.WriteString("\n")

	first, last := m.colOffset, min(m.colOffset+m.visibleColumns(), len(m.columns))
	cols := m.columns[first:last]

	for _, c := range cols {
		b.WriteString(headerStyle.Render(fit(c.Header, cellWidth)) + " ")
	}
	b.WriteString("\n")

	if len(view.Rows) == 0 {
		b.WriteString("Brak danych\n")
	}
	for i, row := range view.Rows {
		for j, c := range cols {
			value := c.Cell(row.Record)
			cell := fit(value, cellWidth)
			if i == m.row && first+j == m.col {
				if m.mode == modeEdit {
					cell = fit(m.input+"_", cellWidth)
				}
				cell = cursorStyle.Render(cell)
			}
			b.WriteString(cell + " ")
		}
		b.WriteString("\n")
	}

	help := "arrows: move  enter: edit  n/p: page  g/G: first/last  +/-: page size  esc: menu"
	if m.mode == modeEdit {
		help = "editing " + m.columns[m.col].Header + "  enter: commit  esc: cancel"
	}
	b.WriteString("\n" + helpStyle.Render(help))
	return b.String()
}

// visibleColumns is the number of grid columns that fit the terminal width,
// or all of them before the first WindowSizeMsg.
func (m Model) visibleColumns() int {
	if m.width <= 0 {
		return len(m.columns)
	}
	return max(1, m.width/(cellWidth+1))
}

// fit truncates or pads s to exactly w cells.
func fit(s string, w int) string {
	if n := lipgloss.Width(s); n <= w {
		return s + strings.Repeat(" ", w-n)
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > w-1 {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
