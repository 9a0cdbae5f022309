package service

import "strings"

// ListQuery is the screen-side listing input: a free-text filter plus a page
// number. The page resets to 1 whenever the query changes, which falls out of
// the links rendered by the templates.
type ListQuery struct {
	Search string
	Page   int
}

// Listing is one page of a filtered in-memory list. Every entity screen is
// built on the same shape: fetch everything, filter client-side, clamp the
// page into bounds.
type Listing[T any] struct {
	Items      []T
	Query      string
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (l Listing[T]) HasPrev() bool { return l.Page > 1 }

// HasNext reports whether a next page exists.
func (l Listing[T]) HasNext() bool { return l.Page < l.TotalPages }

// PrevPage is the clamped previous page number.
func (l Listing[T]) PrevPage() int {
	if l.Page <= 1 {
		return 1
	}
	return l.Page - 1
}

// NextPage is the clamped next page number.
func (l Listing[T]) NextPage() int {
	if l.Page >= l.TotalPages {
		return l.TotalPages
	}
	return l.Page + 1
}

// Empty reports whether the unfiltered source had no records at all.
func (l Listing[T]) Empty() bool { return l.TotalItems == 0 && l.Query == "" }

// filterItems keeps the elements matching the query case-insensitively on at
// least one searchable field. An empty query returns the list unchanged.
func filterItems[T any](items []T, query string, fields func(T) []string) []T {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return items
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

// buildListing filters then paginates, clamping the page into bounds.
func buildListing[T any](items []T, q ListQuery, pageSize int, fields func(T) []string) Listing[T] {
	if pageSize <= 0 {
		pageSize = 10
	}

	filtered := filterItems(items, q.Search, fields)

	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Listing[T]{
		Items:      filtered[start:end],
		Query:      strings.TrimSpace(q.Search),
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(filtered),
		TotalPages: totalPages,
	}
}
