// Package view computes display projections of already-fetched
// collections. Every function is pure: inputs are never mutated and
// identical inputs produce identical outputs.
package view

import (
	"slices"

	"canopus/internal/domain/entity"
)

// Filter returns the subsequence of items matching keep, preserving
// order. The result is a fresh slice.
func Filter[T any](items []T, keep func(T) bool) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			result = append(result, item)
		}
	}

	return result
}

// TotalPages returns ceil(count / perPage). Zero or negative perPage
// yields zero pages.
func TotalPages(count, perPage int) int {
	if perPage <= 0 || count <= 0 {
		return 0
	}

	return (count + perPage - 1) / perPage
}

// Paginate returns the contiguous slice for a 1-based page. Pages past
// the end are empty.
func Paginate[T any](items []T, page, perPage int) []T {
	if page < 1 || perPage <= 0 {
		return []T{}
	}

	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := min(start+perPage, len(items))

	return slices.Clone(items[start:end])
}

// SortByDueDate orders works by due date, most recent first.
func SortByDueDate(works []entity.Work) []entity.Work {
	sorted := slices.Clone(works)
	slices.SortStableFunc(sorted, func(a, b entity.Work) int {
		return b.DueDate.Compare(a.DueDate)
	})

	return sorted
}

// Latest returns the n most recently created works, newest first.
func Latest(works []entity.Work, n int) []entity.Work {
	sorted := slices.Clone(works)
	slices.SortStableFunc(sorted, func(a, b entity.Work) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}

	return sorted
}

// ByCategory filters menu items to one category. An empty or "All"
// category returns everything.
func ByCategory(items []entity.MenuItem, category string) []entity.MenuItem {
	if category == "" || category == "All" {
		return slices.Clone(items)
	}

	return Filter(items, func(item entity.MenuItem) bool {
		return item.Category == category
	})
}

// ByStatus filters works to one lifecycle status.
func ByStatus(works []entity.Work, status entity.WorkStatus) []entity.Work {
	return Filter(works, func(w entity.Work) bool {
		return w.Status == status
	})
}

// StaffOnly filters the roster to staff members, the set assignable to
// works.
func StaffOnly(users []entity.User) []entity.User {
	return Filter(users, func(u entity.User) bool {
		return u.Role == entity.RoleStaff
	})
}

// RoleCounts tallies roster entries per role for the dashboard summary.
func RoleCounts(users []entity.User) map[entity.Role]int {
	counts := make(map[entity.Role]int)
	for _, u := range users {
		counts[u.Role]++
	}

	return counts
}
