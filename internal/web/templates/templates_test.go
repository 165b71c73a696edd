package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/JonMunkholm/laptops/internal/core"
	"github.com/JonMunkholm/laptops/internal/grid"
)

func TestCell_EscapesValue(t *testing.T) {
	var buf bytes.Buffer
	col := grid.Column{Key: "manufacturer", Header: "Producent"}
	if err := Cell(3, col, `"><script>`).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	if strings.Contains(out, "<script>") {
		t.Errorf("value not escaped: %s", out)
	}
	for _, want := range []string{`name="row" value="3"`, `value="manufacturer"`, `aria-label="Producent"`} {
		if !strings.Contains(out, want) {
			t.Errorf("cell %q missing %s", out, want)
		}
	}
}

func TestNoticeBox(t *testing.T) {
	var buf bytes.Buffer
	if err := NoticeBox(nil).Render(context.Background(), &buf); err != nil || buf.Len() != 0 {
		t.Errorf("nil notice rendered %q, err %v", buf.String(), err)
	}

	buf.Reset()
	n := &Notice{Message: "Load a source file first", Code: "EXP001", Error: true}
	if err := NoticeBox(n).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `class="notice error"`) || !strings.Contains(out, "EXP001") {
		t.Errorf("notice = %q", out)
	}
}

func TestPagination_DisablesEdges(t *testing.T) {
	var buf bytes.Buffer
	st := grid.PageState{Index: 0, Size: 10, Count: 3, Total: 25, CanNext: true}
	if err := Pagination(st, grid.PageSizes).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	if got := strings.Count(out, " disabled"); got != 2 {
		t.Errorf("disabled buttons = %d, want 2", got)
	}
	for _, want := range []string{"Strona 1 z 3", `<option value="10" selected>`, "25 rekordów"} {
		if !strings.Contains(out, want) {
			t.Errorf("pagination missing %q", want)
		}
	}
}

func TestGrid_EmptyAndRows(t *testing.T) {
	cols := core.Columns()

	var buf bytes.Buffer
	if err := Grid(cols, core.PageView{}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "Brak danych") {
		t.Error("empty grid should say Brak danych")
	}

	buf.Reset()
	view := core.PageView{Rows: []core.PageRow{{Row: 0, Record: core.Record{ID: 1, Manufacturer: "Dell"}}}}
	if err := Grid(cols, view).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := strings.Count(buf.String(), `action="/cell"`); got != len(cols) {
		t.Errorf("cell forms = %d, want %d", got, len(cols))
	}
}
