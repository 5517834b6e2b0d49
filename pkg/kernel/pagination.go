package kernel

// PaginationOptions is the request side of pagination. Zero values are
// normalized by Normalize.
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func (o PaginationOptions) Normalize() PaginationOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize < 1 {
		o.PageSize = defaultPageSize
	}
	if o.PageSize > maxPageSize {
		o.PageSize = maxPageSize
	}
	return o
}

func (o PaginationOptions) Offset() int { return (o.Page - 1) * o.PageSize }

// Page is the response side of pagination.
type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

func NewPage(opts PaginationOptions, total int) Page {
	pages := 0
	if opts.PageSize > 0 {
		pages = (total + opts.PageSize - 1) / opts.PageSize
	}
	return Page{Number: opts.Page, Size: opts.PageSize, Total: total, Pages: pages}
}

// Paginated wraps one page of items together with page metadata.
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

func NewPaginated[T any](items []T, opts PaginationOptions, total int) *Paginated[T] {
	return &Paginated[T]{
		Items: items,
		Page:  NewPage(opts, total),
		Empty: len(items) == 0,
	}
}
