package repository

const (
	DefaultPageSize int32 = 20
	MaxPageSize     int32 = 1000
)

// Pagination holds page-based listing parameters.
type Pagination struct {
	PageNo   int32
	PageSize int32
}

// Normalize clamps pagination to usable bounds.
func (p *Pagination) Normalize() {
	if p.PageNo < 1 {
		p.PageNo = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset converts the page number into a row offset.
func (p *Pagination) Offset() int32 { return (p.PageNo - 1) * p.PageSize }

// FilterOrder carries the raw CEL filter and order_by inputs of list queries.
// It satisfies filterexpr.Msg.
type FilterOrder struct {
	Filter  string
	OrderBy string
}

func (fo *FilterOrder) GetFilter() string { return fo.Filter }

func (fo *FilterOrder) GetOrderBy() string { return fo.OrderBy }
