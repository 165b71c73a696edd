package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPager_InvalidSizeFallsBack(t *testing.T) {
	assert.Equal(t, DefaultPageSize, NewPager(0).Size())
	assert.Equal(t, DefaultPageSize, NewPager(25).Size())
	assert.Equal(t, 30, NewPager(30).Size())
}

func TestPageCount(t *testing.T) {
	p := NewPager(10)
	assert.Equal(t, 1, p.PageCount(0))
	assert.Equal(t, 1, p.PageCount(10))
	assert.Equal(t, 2, p.PageCount(11))
	assert.Equal(t, 5, p.PageCount(50))
}

func TestNavigation(t *testing.T) {
	p := NewPager(10)
	total := 35

	p.Next(total)
	p.Next(total)
	assert.Equal(t, 2, p.Index())

	p.Last(total)
	assert.Equal(t, 3, p.Index())
	p.Next(total)
	assert.Equal(t, 3, p.Index(), "next stops on the last page")

	p.Prev()
	assert.Equal(t, 2, p.Index())

	p.First()
	p.Prev()
	assert.Equal(t, 0, p.Index(), "prev stops on the first page")

	p.Goto(3, total)
	assert.Equal(t, 2, p.Index())
	p.Goto(99, total)
	assert.Equal(t, 3, p.Index())
	p.Goto(-4, total)
	assert.Equal(t, 0, p.Index())
}

func TestRefresh(t *testing.T) {
	p := NewPager(10)
	p.Goto(3, 45)
	require.Equal(t, 2, p.Index())

	p.Refresh(45, PreservePage)
	assert.Equal(t, 2, p.Index(), "edits keep the page")

	p.Refresh(15, PreservePage)
	assert.Equal(t, 1, p.Index(), "shrunk collection clamps to the last page")

	p.Refresh(45, ResetPage)
	assert.Equal(t, 0, p.Index(), "reloads go back to the first page")
}

func TestSetSize_KeepsFirstVisibleRow(t *testing.T) {
	p := NewPager(10)
	p.Goto(5, 100) // rows 40-49

	require.NoError(t, p.SetSize(20, 100))
	assert.Equal(t, 2, p.Index()) // rows 40-59

	require.NoError(t, p.SetSize(50, 100))
	assert.Equal(t, 0, p.Index())

	assert.Error(t, p.SetSize(15, 100))
	assert.Equal(t, 50, p.Size())
}

func TestWindowAndState(t *testing.T) {
	p := NewPager(10)
	p.Last(23)

	start, end := p.Window(23)
	assert.Equal(t, 20, start)
	assert.Equal(t, 23, end)

	st := p.State(23)
	assert.Equal(t, PageState{Index: 2, Size: 10, Count: 3, Total: 23, CanPrev: true, CanNext: false}, st)

	start, end = p.Window(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
	assert.Equal(t, PageState{Size: 10, Count: 1}, p.State(0))
}

func TestRefreshModeString(t *testing.T) {
	assert.Equal(t, "reset", ResetPage.String())
	assert.Equal(t, "preserve", PreservePage.String())
	assert.Equal(t, "RefreshMode(7)", RefreshMode(7).String())
}

type row map[string]string

func (r row) Get(key string) (string, bool) {
	v, ok := r[key]
	return v, ok
}

func TestColumnCell(t *testing.T) {
	c := Column{Key: "diskType", Header: "Typ dysku"}
	assert.Equal(t, "SSD", c.Cell(row{"diskType": "SSD"}))
	assert.Empty(t, c.Cell(row{}))
}
