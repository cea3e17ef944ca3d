package dto

// Page is a pagination request. Page numbers start at 1.
type Page struct {
	Number int
	Size   int
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Normalize clamps the page request to sane bounds.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	return p
}

// Offset returns the row offset for the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// PageResult is a paginated response envelope.
type PageResult[T any] struct {
	Count   int64 `json:"count"`
	Results []T   `json:"results"`
}
