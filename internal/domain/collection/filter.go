package collection

import (
	"strconv"
	"strings"

	"condoadmin/internal/storage"
)

// matches reports whether rec passes the search term and every exact filter
// the definition declares. Filters on undeclared fields are ignored.
func (d Definition) matches(rec storage.Record, search string, filters map[string]string) bool {
	for field, want := range filters {
		if want == "" || !d.hasExact(field) {
			continue
		}
		if storage.IDString(rec[field]) != want {
			return false
		}
	}

	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range d.SearchFields {
		text, ok := textOf(rec[field])
		if ok && strings.Contains(strings.ToLower(text), needle) {
			return true
		}
	}
	return false
}

// textOf renders scalar values for substring search; nested values never match.
func textOf(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64, int, int64:
		return storage.IDString(val), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}

// window normalises the cursor and returns the [start, end) bounds for total items.
// Zero or negative page and size fall back to the defaults.
func window(page, size, total int) (int, int, int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultPageSize
	}

	// page-1 is compared to the last page index so huge cursors never overflow
	start := total
	if total > 0 && page-1 <= (total-1)/size {
		start = (page - 1) * size
	}
	end := total
	if size < total-start {
		end = start + size
	}
	return page, size, start, end
}

func totalPages(total, size int) int {
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}
