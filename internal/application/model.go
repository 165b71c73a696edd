// Package application is the terminal shell of the catalog: a menu tree for
// loading and exporting files and an editable, paginated record grid.
package application

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/laptops/internal/core"
	"github.com/JonMunkholm/laptops/internal/grid"
)

type mode int

const (
	modeMenu mode = iota
	modePrompt
	modeGrid
	modeEdit
)

// notice is a blocking message; while one is shown every key except
// enter, esc and ctrl+c is ignored.
type notice struct {
	summary string // message, code and suggested action
	detail  string // raw error when no specific message applies
	code    string
	err     bool
}

// Model is the bubbletea model of the terminal shell.
type Model struct {
	svc     *core.Service
	columns []grid.Column

	menu   *Menu
	cursor int

	mode   mode
	prompt promptMsg
	input  string

	row, col  int // grid cursor within the current page
	colOffset int // first visible column
	width     int

	status string
	notice *notice
}

// New creates the shell model for svc.
func New(svc *core.Service) Model {
	return Model{
		svc:     svc,
		columns: core.Columns(),
		menu:    buildMenuTree(svc),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.notice != nil {
			switch msg.String() {
			case "enter", "esc":
				m.notice = nil
			}
			return m, nil
		}
		return m.handleKey(msg)

	case promptMsg:
		m.prompt = msg
		m.input = msg.value
		m.mode = modePrompt
		return m, nil

	case browseMsg:
		m.mode = modeGrid
		m.clampCursor()
		return m, nil

	case LoadedMsg:
		m.row, m.col, m.colOffset = 0, 0, 0
		m.status = fmt.Sprintf("Loaded %d records from %s", msg.Result.Rows, msg.Result.FileName)
		if msg.Result.InvalidRows > 0 {
			m.status += fmt.Sprintf(" (%d would fail editing rules)", msg.Result.InvalidRows)
		}
		if msg.Result.ReplacedBytes > 0 {
			m.status += fmt.Sprintf(" (%d invalid bytes shown as '?')", msg.Result.ReplacedBytes)
		}
		m.mode = modeGrid
		return m, nil

	case ExportedMsg:
		m.status = fmt.Sprintf("Saved %s (%d bytes)", msg.Path, msg.Bytes)
		return m, nil

	case DoneMsg:
		m.status = string(msg)
		return m, nil

	case ErrMsg:
		m.showError(msg.Err)
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modePrompt:
		return m.updatePrompt(k)
	case modeGrid:
		m.updateGrid(k)
		return m, nil
	case modeEdit:
		m.updateEdit(k)
		return m, nil
	default:
		return m.updateMenu(k)
	}
}

/* ----------------------------------------
	MENU
---------------------------------------- */

func (m Model) updateMenu(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.menu.Items)-1 {
			m.cursor++
		}
	case "esc", "backspace":
		if m.menu.Parent != nil {
			m.menu, m.cursor = m.menu.Parent, 0
		}
	case "q":
		return m, tea.Quit
	case "enter":
		item := m.menu.Items[m.cursor]
		if item.Submenu != nil {
			m.menu, m.cursor = item.Submenu, 0
			return m, nil
		}
		if item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

/* ----------------------------------------
	TEXT INPUT
---------------------------------------- */

// editInput applies k to the input line and reports whether it consumed k.
func (m *Model) editInput(k tea.KeyMsg) bool {
	switch k.Type {
	case tea.KeyRunes:
		m.input += string(k.Runes)
	case tea.KeySpace:
		m.input += " "
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	default:
		return false
	}
	return true
}

func (m Model) updatePrompt(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editInput(k) {
		return m, nil
	}
	switch k.Type {
	case tea.KeyEsc:
		m.mode = modeMenu
	case tea.KeyEnter:
		m.mode = modeMenu
		if m.input == "" {
			return m, nil
		}
		m.status = "Working..."
		return m, m.prompt.submit(m.input)
	}
	return m, nil
}

/* ----------------------------------------
	GRID
---------------------------------------- */

func (m *Model) updateGrid(k tea.KeyMsg) {
	view := m.svc.Page()

	switch k.String() {
	case "up", "k":
		if m.row > 0 {
			m.row--
		}
	case "down", "j":
		m.row++
	case "left", "h":
		if m.col > 0 {
			m.col--
		}
	case "right", "l":
		m.col++
	case "n", "pgdown":
		m.navigate(core.NavNext, 0)
	case "p", "pgup":
		m.navigate(core.NavPrev, 0)
	case "g", "home":
		m.navigate(core.NavFirst, 0)
	case "G", "end":
		m.navigate(core.NavLast, 0)
	case "+":
		m.resize(view.State.Size, 1)
	case "-":
		m.resize(view.State.Size, -1)
	case "enter":
		if m.row < len(view.Rows) {
			m.input = m.columns[m.col].Cell(view.Rows[m.row].Record)
			m.mode = modeEdit
		}
	case "esc", "q":
		m.mode = modeMenu
	}
	m.clampCursor()
}

func (m *Model) navigate(action string, arg int) {
	if err := m.svc.Navigate(action, arg); err != nil {
		m.showError(err)
		return
	}
	m.row = 0
}

// resize steps through grid.PageSizes.
func (m *Model) resize(current, step int) {
	i := 0
	for j, size := range grid.PageSizes {
		if size == current {
			i = j
		}
	}
	i += step
	if i < 0 || i >= len(grid.PageSizes) {
		return
	}
	m.navigate(core.NavSize, grid.PageSizes[i])
}

func (m *Model) updateEdit(k tea.KeyMsg) {
	if m.editInput(k) {
		return
	}
	switch k.Type {
	case tea.KeyEsc:
		m.mode = modeGrid
	case tea.KeyEnter:
		m.mode = modeGrid
		m.commitEdit()
	}
}

// commitEdit writes the input line into the cell under the cursor. The
// service keeps the current page on success and leaves the cell untouched
// on rejection.
func (m *Model) commitEdit() {
	view := m.svc.Page()
	if m.row >= len(view.Rows) {
		return
	}
	row, key := view.Rows[m.row].Row, m.columns[m.col].Key

	result, err := m.svc.UpdateField(context.Background(), row, key, m.input)
	if err != nil {
		m.showError(err)
		return
	}
	m.status = fmt.Sprintf("Row %d %s: %q -> %q", result.Row+1, result.Field, result.OldValue, result.NewValue)
}

// clampCursor keeps the cursor on an existing cell and the cursor column
// inside the visible column window.
func (m *Model) clampCursor() {
	rows := len(m.svc.Page().Rows)
	if m.row >= rows {
		m.row = rows - 1
	}
	if m.row < 0 {
		m.row = 0
	}
	if m.col >= len(m.columns) {
		m.col = len(m.columns) - 1
	}

	visible := m.visibleColumns()
	if m.col < m.colOffset {
		m.colOffset = m.col
	}
	if m.col >= m.colOffset+visible {
		m.colOffset = m.col - visible + 1
	}
}

func (m *Model) showError(err error) {
	msg := core.MapError(err)
	n := &notice{summary: core.FormatUserError(err), code: msg.Code, err: true}
	if !core.IsUserFacing(err) {
		n.detail = err.Error()
	}
	m.notice = n
	slog.Warn("action failed", "error", err, "code", msg.Code)
}
