package listing

import "github.com/FACorreiaa/hmhy-portal/internal/app/models"

// Paginate computes the page window for total items. A page past the end is
// clamped to the last page.
func Paginate(total, page, limit int) models.Pagination {
	if limit < 1 {
		limit = 1
	}
	pages := (total + limit - 1) / limit
	page = max(page, 1)
	if pages > 0 && page > pages {
		page = pages
	}

	p := models.Pagination{
		CurrentPage:   page,
		TotalPages:    pages,
		TotalElements: total,
		PageSize:      limit,
	}
	if total > 0 {
		p.From = (page-1)*limit + 1
		p.To = min(page*limit, total)
	}
	return p
}

// Page slices items to the requested page.
func Page[T any](items []T, page, limit int) ([]T, models.Pagination) {
	p := Paginate(len(items), page, limit)
	if p.TotalElements == 0 {
		return []T{}, p
	}
	return items[p.From-1 : p.To], p
}

// PageNumbers lists the page links to render around the current page.
func PageNumbers(p models.Pagination, window int) []int {
	if p.TotalPages <= 1 {
		return nil
	}
	start := max(1, p.CurrentPage-window)
	end := min(p.TotalPages, p.CurrentPage+window)
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out
}
