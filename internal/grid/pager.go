// Package grid implements the pagination capability of the record grid.
//
// A Pager owns nothing but a page index and a page size. It is told the
// collection size on every call, so it never holds a stale view of the data.
// After a data change the caller passes a RefreshMode that decides whether the
// view stays on the current page (in-place edit) or jumps back to the first
// page (full reload).
package grid

import "fmt"

// RefreshMode tells the pager how to react to a data change.
type RefreshMode int

const (
	// ResetPage moves the view back to the first page. Used after a full reload.
	ResetPage RefreshMode = iota
	// PreservePage keeps the current page. Used after a single-field edit.
	PreservePage
)

func (m RefreshMode) String() string {
	switch m {
	case ResetPage:
		return "reset"
	case PreservePage:
		return "preserve"
	default:
		return fmt.Sprintf("RefreshMode(%d)", int(m))
	}
}

// PageSizes is the fixed set of selectable page sizes.
var PageSizes = []int{10, 20, 30, 40, 50}

// DefaultPageSize is used when no valid size is configured.
const DefaultPageSize = 10

// PageState is a snapshot of the pager for rendering.
type PageState struct {
	Index   int  `json:"index"` // 0-based
	Size    int  `json:"size"`
	Count   int  `json:"count"` // number of pages, at least 1
	Total   int  `json:"total"` // number of rows
	CanPrev bool `json:"canPrev"`
	CanNext bool `json:"canNext"`
}

// Pager tracks the visible page of a record collection.
// The zero value is not usable; create one with NewPager.
type Pager struct {
	index int
	size  int
}

// NewPager creates a pager on the first page. Sizes outside PageSizes fall
// back to DefaultPageSize.
func NewPager(size int) *Pager {
	if !ValidSize(size) {
		size = DefaultPageSize
	}
	return &Pager{size: size}
}

// ValidSize reports whether size is one of PageSizes.
func ValidSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Index returns the 0-based current page.
func (p *Pager) Index() int { return p.index }

// Size returns the page size.
func (p *Pager) Size() int { return p.size }

// PageCount returns the number of pages for total rows. An empty collection
// still has one (empty) page.
func (p *Pager) PageCount(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + p.size - 1) / p.size
}

// Refresh applies a data change to the view.
func (p *Pager) Refresh(total int, mode RefreshMode) {
	if mode == ResetPage {
		p.index = 0
		return
	}
	p.clamp(total)
}

// First moves to the first page.
func (p *Pager) First() { p.index = 0 }

// Prev moves one page back if possible.
func (p *Pager) Prev() {
	if p.index > 0 {
		p.index--
	}
}

// Next moves one page forward if possible.
func (p *Pager) Next(total int) {
	if p.CanNext(total) {
		p.index++
	}
}

// Last moves to the last page.
func (p *Pager) Last(total int) {
	p.index = p.PageCount(total) - 1
}

// Goto jumps to a 1-based page number, clamped to the valid range.
func (p *Pager) Goto(page, total int) {
	p.index = page - 1
	p.clamp(total)
}

// SetSize changes the page size, keeping the first visible row on screen.
func (p *Pager) SetSize(size, total int) error {
	if !ValidSize(size) {
		return fmt.Errorf("invalid page size %d (allowed: %v)", size, PageSizes)
	}
	first := p.index * p.size
	p.size = size
	p.index = first / size
	p.clamp(total)
	return nil
}

// CanPrev reports whether a previous page exists.
func (p *Pager) CanPrev() bool { return p.index > 0 }

// CanNext reports whether a next page exists.
func (p *Pager) CanNext(total int) bool { return p.index < p.PageCount(total)-1 }

// Window returns the half-open row range [start, end) of the current page.
func (p *Pager) Window(total int) (start, end int) {
	p.clamp(total)
	start = p.index * p.size
	if start > total {
		start = total
	}
	end = start + p.size
	if end > total {
		end = total
	}
	if start < 0 {
		start = 0
	}
	return start, end
}

// State returns a rendering snapshot for total rows.
func (p *Pager) State(total int) PageState {
	p.clamp(total)
	return PageState{
		Index:   p.index,
		Size:    p.size,
		Count:   p.PageCount(total),
		Total:   total,
		CanPrev: p.CanPrev(),
		CanNext: p.CanNext(total),
	}
}

func (p *Pager) clamp(total int) {
	if last := p.PageCount(total) - 1; p.index > last {
		p.index = last
	}
	if p.index < 0 {
		p.index = 0
	}
}
