package usecase

import "smart-ocr-client/internal/domain/model"

// Pages paginates a search response client-side. Navigation clamps at the
// first and last page; the current page is always valid for the item count.
type Pages struct {
	items []model.SearchResultItem
	size  int
	page  int // 1-based
}

func NewPages(items []model.SearchResultItem, size int) *Pages {
	if size <= 0 {
		size = 5
	}
	return &Pages{items: items, size: size, page: 1}
}

// TotalPages is ceiling(len(items) / size).
func (p *Pages) TotalPages() int {
	return (len(p.items) + p.size - 1) / p.size
}

func (p *Pages) PageNum() int { return p.page }

// Page returns the items on the current page.
func (p *Pages) Page() []model.SearchResultItem {
	lo := (p.page - 1) * p.size
	if lo >= len(p.items) {
		return []model.SearchResultItem{}
	}
	hi := lo + p.size
	if hi > len(p.items) {
		hi = len(p.items)
	}
	return p.items[lo:hi]
}

func (p *Pages) HasNext() bool { return p.page < p.TotalPages() }
func (p *Pages) HasPrev() bool { return p.page > 1 }

// Next advances one page, clamped at the last page.
func (p *Pages) Next() {
	if p.HasNext() {
		p.page++
	}
}

// Prev goes back one page, clamped at the first page.
func (p *Pages) Prev() {
	if p.HasPrev() {
		p.page--
	}
}

// Goto jumps to a page, clamped into [1, TotalPages].
func (p *Pages) Goto(n int) {
	if n < 1 {
		n = 1
	}
	if t := p.TotalPages(); t > 0 && n > t {
		n = t
	}
	p.page = n
}
