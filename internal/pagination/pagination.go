// Package pagination normalizes page/limit pairs for list queries.
package pagination

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Normalize clamps page to >= 1 and limit to [1, MaxLimit], using DefaultLimit when unset.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}

	if limit <= 0 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return page, limit
}

// Offset returns the row offset of a normalized page.
func Offset(page, limit int) int {
	page, limit = Normalize(page, limit)
	return (page - 1) * limit
}
