package listing

// DefaultPageSize is the number of rows per page on the admin screens.
const DefaultPageSize = 10

// Page is one visible window over a filtered sequence.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// TotalPages is ceil(n/size); zero records give zero pages.
func TotalPages(n, size int) int {
	if n <= 0 {
		return 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	return (n + size - 1) / size
}

// ClampPage forces page into [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if last := max(1, totalPages); page > last {
		return last
	}
	return page
}

// Slice returns the half-open window [(page-1)*size, page*size) of recs,
// clamped to its bounds, together with the total page count.
func Slice[T any](recs []T, page, size int) ([]T, int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := TotalPages(len(recs), size)
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(recs) {
		return []T{}, total
	}
	end := min(start+size, len(recs))
	return recs[start:end], total
}

// Apply filters recs with c and slices out the requested page. The page is
// clamped to the valid range of the filtered sequence.
func Apply[T any](recs []T, c Criteria, page, size int, s Schema[T]) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	filtered := Filter(recs, c, s)
	page = ClampPage(page, TotalPages(len(filtered), size))
	items, total := Slice(filtered, page, size)
	return Page[T]{
		Items:      items,
		Page:       page,
		PageSize:   size,
		TotalItems: len(filtered),
		TotalPages: total,
	}
}
