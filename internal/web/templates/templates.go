// Package templates holds the HTML components of the catalog grid.
//
// Components implement templ.Component so handlers render them the same way
// whether they are written by hand or generated from .templ files.
package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/laptops/internal/core"
	"github.com/JonMunkholm/laptops/internal/grid"
)

// Notice is a blocking message shown above the grid until dismissed.
type Notice struct {
	Message string
	Action  string
	Code    string
	Error   bool
}

// CatalogData is everything the catalog page renders.
type CatalogData struct {
	Columns    []grid.Column
	View       core.PageView
	Formats    []string
	PageSizes  []int
	Validation string
	Notice     *Notice
}

// html accumulates the first write error so components can write linearly.
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) rawf(format string, args ...any) {
	if h.err == nil {
		_, h.err = fmt.Fprintf(h.w, format, args...)
	}
}

func (h *html) attr(name, value string) {
	h.rawf(` %s="%s"`, name, templ.EscapeString(value))
}

func (h *html) component(ctx context.Context, c templ.Component) {
	if h.err == nil {
		h.err = c.Render(ctx, h.w)
	}
}

// Layout wraps body in the page skeleton.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<!DOCTYPE html><html lang="pl"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title><style>`)
		h.raw(stylesheet)
		h.raw(`</style></head><body><main>`)
		h.component(ctx, body)
		h.raw(`</main></body></html>`)
		return h.err
	})
}

const stylesheet = `body{font-family:sans-serif;margin:1rem}
table{border-collapse:collapse;font-size:.85rem}
th,td{border:1px solid #ccc;padding:2px 4px}
td input{width:7rem;border:none;background:transparent}
.notice{padding:.5rem 1rem;margin-bottom:1rem;border:1px solid #888;background:#f4f4f4}
.notice.error{border-color:#b00;background:#fee}
.toolbar{display:flex;gap:1rem;align-items:center;margin-bottom:1rem}
.pager{display:flex;gap:.5rem;align-items:center;margin-top:1rem}`

// ErrorAlert renders a notice fragment. Used for HTMX partial responses.
func ErrorAlert(message, action, code string) templ.Component {
	return NoticeBox(&Notice{Message: message, Action: action, Code: code, Error: true})
}

// NoticeBox renders n, or nothing when n is nil.
func NoticeBox(n *Notice) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if n == nil {
			return nil
		}
		h := &html{w: w}
		class := "notice"
		if n.Error {
			class += " error"
		}
		h.raw(`<div role="alert"`)
		h.attr("class", class)
		h.raw(`><strong>`)
		h.text(n.Message)
		h.raw(`</strong>`)
		if n.Code != "" {
			h.raw(` <small>(`)
			h.text(n.Code)
			h.raw(`)</small>`)
		}
		if n.Action != "" {
			h.raw(`<p>`)
			h.text(n.Action)
			h.raw(`</p>`)
		}
		h.raw(`<a href="/">OK</a></div>`)
		return h.err
	})
}

// CatalogPage renders the full grid page.
func CatalogPage(d CatalogData) templ.Component {
	return Layout("Katalog laptopów", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.component(ctx, NoticeBox(d.Notice))
		h.component(ctx, Toolbar(d.Formats, d.Validation))
		h.component(ctx, Grid(d.Columns, d.View))
		h.component(ctx, Pagination(d.View.State, d.PageSizes))
		return h.err
	}))
}

// Toolbar renders the file-load form and the export buttons.
func Toolbar(formats []string, validation string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="toolbar">`)
		h.raw(`<form method="post" action="/load" enctype="multipart/form-data">`)
		h.raw(`<input type="file" name="file" accept=".txt,.xml" required>`)
		h.raw(`<button type="submit">Wczytaj</button></form>`)
		for _, f := range formats {
			h.raw(`<a`)
			h.attr("href", "/export/"+f)
			h.raw(`>Zapisz `)
			h.text(f)
			h.raw(`</a>`)
		}
		h.raw(`<small>walidacja: `)
		h.text(validation)
		h.raw(`</small></div>`)
		return h.err
	})
}

// Grid renders the current page as a table with one editable input per cell.
// Each input posts on change, which is the edit commit.
func Grid(columns []grid.Column, view core.PageView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<table><thead><tr>`)
		for _, c := range columns {
			h.raw(`<th>`)
			h.text(c.Header)
			h.raw(`</th>`)
		}
		h.raw(`</tr></thead><tbody>`)
		if len(view.Rows) == 0 {
			h.rawf(`<tr><td colspan="%d">Brak danych</td></tr>`, len(columns))
		}
		for _, row := range view.Rows {
			h.raw(`<tr>`)
			for _, c := range columns {
				h.raw(`<td>`)
				h.component(ctx, Cell(row.Row, c, c.Cell(row.Record)))
				h.raw(`</td>`)
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table>`)
		return h.err
	})
}

// Cell renders the edit form of one cell.
func Cell(row int, c grid.Column, value string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<form method="post" action="/cell">`)
		h.raw(`<input type="hidden" name="row"`)
		h.attr("value", strconv.Itoa(row))
		h.raw(`><input type="hidden" name="field"`)
		h.attr("value", c.Key)
		h.raw(`><input name="value" onchange="this.form.submit()"`)
		h.attr("value", value)
		h.attr("aria-label", c.Header)
		h.raw(`></form>`)
		return h.err
	})
}

// Pagination renders the navigation bar and the page-size selector.
func Pagination(st grid.PageState, sizes []int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<div class="pager">`)
		navButton(h, "first", "<<", st.CanPrev)
		navButton(h, "prev", "<", st.CanPrev)
		navButton(h, "next", ">", st.CanNext)
		navButton(h, "last", ">>", st.CanNext)
		h.rawf(`<span>Strona %d z %d</span>`, st.Index+1, st.Count)

		h.raw(`<form method="post" action="/page"><input type="hidden" name="action" value="goto">`)
		h.rawf(`<input type="number" name="page" min="1" max="%d" value="%d">`, st.Count, st.Index+1)
		h.raw(`<button type="submit">Idź</button></form>`)

		h.raw(`<form method="post" action="/page"><input type="hidden" name="action" value="size">`)
		h.raw(`<select name="size" onchange="this.form.submit()">`)
		for _, size := range sizes {
			selected := ""
			if size == st.Size {
				selected = " selected"
			}
			h.rawf(`<option value="%d"%s>Pokaż %d</option>`, size, selected, size)
		}
		h.raw(`</select></form>`)
		h.rawf(`<span>%d rekordów</span></div>`, st.Total)
		return h.err
	})
}

func navButton(h *html, action, label string, enabled bool) {
	h.raw(`<form method="post" action="/page">`)
	h.raw(`<input type="hidden" name="action"`)
	h.attr("value", action)
	h.raw(`><button type="submit"`)
	if !enabled {
		h.raw(` disabled`)
	}
	h.raw(`>`)
	h.text(label)
	h.raw(`</button></form>`)
}
