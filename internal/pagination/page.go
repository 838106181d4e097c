// Package pagination provides the page window returned by list queries.
package pagination

// Page wraps one window of a list query together with the page math the
// list view needs to render prev/next navigation. A Page is constructed
// fresh per query and never persisted.
type Page[T any] struct {
	Items    []T
	Page     int
	PageSize int
	Offset   int
	Total    int64
}

// New builds a Page for the given window. Offset is always derived as
// page*pageSize so it stays consistent with the query that produced it.
func New[T any](items []T, page, pageSize int, total int64) Page[T] {
	return Page[T]{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Offset:   page * pageSize,
		Total:    total,
	}
}

// Prev returns the previous page number. Present only when this is not
// the first page.
func (p Page[T]) Prev() (int, bool) {
	if p.Page > 0 {
		return p.Page - 1, true
	}
	return 0, false
}

// Next returns the next page number. Present only when rows remain
// beyond this window.
func (p Page[T]) Next() (int, bool) {
	if p.Offset+len(p.Items) < int(p.Total) {
		return p.Page + 1, true
	}
	return 0, false
}

// HasPrev reports whether a previous page exists. Template helper.
func (p Page[T]) HasPrev() bool {
	_, ok := p.Prev()
	return ok
}

// HasNext reports whether a next page exists. Template helper.
func (p Page[T]) HasNext() bool {
	_, ok := p.Next()
	return ok
}

// PrevPage returns the previous page number, 0 when absent.
func (p Page[T]) PrevPage() int {
	n, _ := p.Prev()
	return n
}

// NextPage returns the next page number, 0 when absent.
func (p Page[T]) NextPage() int {
	n, _ := p.Next()
	return n
}
