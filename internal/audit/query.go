package audit

import "strconv"

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Query selects one page of a user's audit trail, newest first.
type Query struct {
	UserID uint
	Action string
	Page   int
	Limit  int
}

// ParsePage turns raw page/limit strings into a usable page; bad or out
// of range values fall back to the defaults.
func ParsePage(pageStr, limitStr string) (page, limit int) {
	page, _ = strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(limitStr)
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	return page, limit
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}
