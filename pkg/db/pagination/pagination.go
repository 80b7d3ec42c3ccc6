package pagination

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a limit/offset window over an ordered result set.
type Page struct {
	Limit  int `form:"limit,default=10" json:"limit"`
	Offset int `form:"offset,default=0" json:"offset"`
}

// Normalize clamps limit to 1..MaxLimit (zero means DefaultLimit) and offset to >= 0.
func Normalize(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// Valid reports whether limit and offset are inside the accepted API range.
func Valid(limit, offset int) bool {
	return limit >= 1 && limit <= MaxLimit && offset >= 0
}
