package application

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/laptops/internal/core"
)

// ActionTimeout bounds one load or export started from the menu.
var ActionTimeout = 2 * time.Minute

// loadFile returns a command that loads path with the codec for format.
func loadFile(svc *core.Service, format, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ActionTimeout)
		defer cancel()

		f, err := os.Open(path)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("open %s: %w", path, err)}
		}
		defer f.Close()

		result, err := svc.LoadFrom(ctx, format, filepath.Base(path), f)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return LoadedMsg{Result: result}
	}
}

// exportFile returns a command that writes the collection to path. The file
// is only created once serialization succeeded.
func exportFile(svc *core.Service, format, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), ActionTimeout)
		defer cancel()

		var buf bytes.Buffer
		if err := svc.Export(ctx, format, &buf); err != nil {
			return ErrMsg{Err: err}
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return ErrMsg{Err: fmt.Errorf("write %s: %w", path, err)}
		}
		return ExportedMsg{Path: path, Bytes: buf.Len()}
	}
}

func askPath(label, value string, submit func(string) tea.Cmd) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg {
			return promptMsg{label: label, value: value, submit: submit}
		}
	}
}
