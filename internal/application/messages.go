package application

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/laptops/internal/core"
)

// DoneMsg reports a finished action as a status line.
type DoneMsg string

// ErrMsg reports a failed action. It is shown as a blocking notice.
type ErrMsg struct{ Err error }

// LoadedMsg reports an installed collection.
type LoadedMsg struct{ Result *core.LoadResult }

// ExportedMsg reports a written export file.
type ExportedMsg struct {
	Path  string
	Bytes int
}

// promptMsg switches the model into path entry; submit builds the command
// to run with the entered value.
type promptMsg struct {
	label  string
	value  string
	submit func(string) tea.Cmd
}

type browseMsg struct{}
