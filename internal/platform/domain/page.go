package domain

// Page is an offset/limit window over an ordered result.
type Page struct {
	Offset int
	Limit  int
}

// PageOf converts an absolute offset and a page size into a window aligned
// to page boundaries: the page index is from/size, so from=15,size=10
// yields the second page (offset 10). A non-positive size yields an empty
// window.
func PageOf(from, size int) Page {
	if size <= 0 {
		return Page{}
	}
	page := 0
	if from > 0 {
		page = from / size
	}
	return Page{Offset: page * size, Limit: size}
}

// Apply returns the part of a fully materialized slice covered by the window.
func Apply[T any](items []T, p Page) []T {
	if p.Limit <= 0 || p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
