package util

// Pagination clamps skip/limit query values.
func Pagination(skip, limit int) (offset, size int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return skip, limit
}
