package repository

// Listing defaults shared by the repositories and the response metadata.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NormalizePage resolves the page and page size actually served: pages start
// at 1 and sizes outside (0, MaxPageSize] fall back to the default.
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}
	return page, pageSize
}
