package application

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JonMunkholm/laptops/internal/core"
)

/* ----------------------------------------
	MENU TREE
---------------------------------------- */

type MenuItem struct {
	Label   string
	Submenu *Menu
	Action  func() tea.Cmd
}

type Menu struct {
	Title  string
	Items  []MenuItem
	Parent *Menu
}

/* ----------------------------------------
	MENU TREE DEFINITION
---------------------------------------- */

func linkParents(menu *Menu, parent *Menu) {
	menu.Parent = parent

	for i := range menu.Items {
		item := &menu.Items[i]

		if item.Label == "Back" {
			item.Submenu = parent
			continue
		}

		if item.Submenu != nil {
			linkParents(item.Submenu, menu)
		}
	}
}

func buildMenuTree(svc *core.Service) *Menu {
	root := &Menu{
		Title: "Katalog laptopów",
		Items: []MenuItem{
			{Label: "Load ->", Submenu: loadMenu(svc)},
			{Label: "Browse grid", Action: func() tea.Cmd {
				return func() tea.Msg { return browseMsg{} }
			}},
			{Label: "Export ->", Submenu: exportMenu(svc)},
			{Label: "Status", Action: func() tea.Cmd {
				return func() tea.Msg { return DoneMsg(statusLine(svc.Status())) }
			}},
			{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
		},
	}

	linkParents(root, nil)

	return root
}

/* ----------------------------------------
	LOAD / EXPORT MENUS
---------------------------------------- */

func loadMenu(svc *core.Service) *Menu {
	item := func(label, format string) MenuItem {
		return MenuItem{Label: label, Action: askPath("Load "+format+" file", "",
			func(path string) tea.Cmd { return loadFile(svc, format, path) })}
	}

	return &Menu{
		Title: "Load",
		Items: []MenuItem{
			item("Text file (.txt)", "txt"),
			item("XML file (.xml)", "xml"),
			{Label: "Back"},
		},
	}
}

func exportMenu(svc *core.Service) *Menu {
	items := make([]MenuItem, 0, len(core.Formats())+1)
	for _, format := range core.Formats() {
		name, err := svc.ExportFileName(format)
		if err != nil {
			items = append(items, MenuItem{Label: "Error: " + err.Error()})
			continue
		}
		items = append(items, MenuItem{
			Label: "Save as " + name,
			Action: askPath("Export "+format+" to", name,
				func(path string) tea.Cmd { return exportFile(svc, format, path) }),
		})
	}
	items = append(items, MenuItem{Label: "Back"})

	return &Menu{Title: "Export", Items: items}
}

func statusLine(st core.Status) string {
	return fmt.Sprintf("%d records, validation %s, loads %d/%d",
		st.Rows, st.Validation, st.Loads.Active, st.Loads.MaxConcurrent)
}
