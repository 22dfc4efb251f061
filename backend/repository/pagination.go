package repository

const (
	DefaultCoursePageSize = 10
	DefaultReviewPageSize = 5
)

// normalizePage applies the 1-indexed offset pagination defaults. Size has no
// upper bound.
func normalizePage(page, size, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultSize
	}
	return page, size
}

// pageOffset returns the row offset of page, or false when the page starts
// at or past total. The bound is checked before multiplying so huge page
// numbers cannot wrap around to an earlier page.
func pageOffset(page, size int, total int64) (int, bool) {
	if int64(page-1) > total/int64(size) {
		return 0, false
	}
	off := int64(page-1) * int64(size)
	if off >= total {
		return 0, false
	}
	return int(off), true
}

func totalPages(total int64, size int) int {
	if size < 1 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}
