// Package listview holds a fully fetched collection and the filtered,
// paginated view the console renders from it.
package listview

import "strings"

// List is not safe for concurrent use; each console request builds its own.
type List[T any] struct {
	all      []T
	view     []T
	page     int
	pageSize int
}

// New copies items. pageSize below 1 is treated as 1.
func New[T any](items []T, pageSize int) *List[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	all := append([]T(nil), items...)
	return &List[T]{
		all:      all,
		view:     append([]T(nil), all...),
		page:     1,
		pageSize: pageSize,
	}
}

// Filter narrows the view to matching items of the full collection and returns to page 1.
func (l *List[T]) Filter(match func(T) bool) {
	view := make([]T, 0, len(l.all))
	for _, item := range l.all {
		if match(item) {
			view = append(view, item)
		}
	}
	l.view = view
	l.page = 1
}

// Replace shows items returned by a server-side search and returns to page 1.
func (l *List[T]) Replace(items []T) {
	l.view = append([]T(nil), items...)
	l.page = 1
}

// Reset shows the full collection on page 1.
func (l *List[T]) Reset() {
	l.view = append([]T(nil), l.all...)
	l.page = 1
}

// SetPage clamps k into [1, max(1, TotalPages)].
func (l *List[T]) SetPage(k int) {
	last := max(1, l.TotalPages())
	l.page = min(max(k, 1), last)
}

func (l *List[T]) Page() int     { return l.page }
func (l *List[T]) PageSize() int { return l.pageSize }

// Len is the size of the view, Total the size of the full collection.
func (l *List[T]) Len() int   { return len(l.view) }
func (l *List[T]) Total() int { return len(l.all) }

// All returns the full collection.
func (l *List[T]) All() []T { return l.all }

// View returns every item of the current view, across pages.
func (l *List[T]) View() []T { return l.view }

// TotalPages is ceil(Len / PageSize), zero when the view is empty.
func (l *List[T]) TotalPages() int {
	return (len(l.view) + l.pageSize - 1) / l.pageSize
}

// Items returns the current page: view[(k-1)P : min(kP, N)].
func (l *List[T]) Items() []T {
	start := l.Offset()
	if start >= len(l.view) {
		return nil
	}
	end := min(start+l.pageSize, len(l.view))
	return l.view[start:end]
}

// Offset is the number of items before the current page, used for running row numbers.
func (l *List[T]) Offset() int {
	return (l.page - 1) * l.pageSize
}

// Pages lists 1..TotalPages for pagination links.
func (l *List[T]) Pages() []int {
	n := l.TotalPages()
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Remove drops matching items from both the collection and the view. When
// the current page no longer exists it moves to the last page, or 1.
func (l *List[T]) Remove(match func(T) bool) int {
	removed := 0
	l.all, removed = without(l.all, match)
	l.view, _ = without(l.view, match)
	if total := l.TotalPages(); l.page > total {
		l.page = max(1, total)
	}
	return removed
}

// Update applies fn to matching items in both the collection and the view.
func (l *List[T]) Update(match func(T) bool, fn func(T) T) {
	for i := range l.all {
		if match(l.all[i]) {
			l.all[i] = fn(l.all[i])
		}
	}
	for i := range l.view {
		if match(l.view[i]) {
			l.view[i] = fn(l.view[i])
		}
	}
}

func without[T any](items []T, match func(T) bool) ([]T, int) {
	kept := make([]T, 0, len(items))
	removed := 0
	for _, item := range items {
		if match(item) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	return kept, removed
}

// ContainsFold reports whether substr occurs in s, ignoring case. An empty
// substr matches everything.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
