package model

import "strings"

// AllCategories is the listing value meaning "no category filter".
const AllCategories = "All Categories"

var Categories = []string{
	"Food & Beverage",
	"Technology",
	"Agriculture",
	"Services",
	"Manufacturing",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// SortKey orders the business listing.
type SortKey string

const (
	SortTrending SortKey = "trending"
	SortFunding  SortKey = "funding"
	SortGoal     SortKey = "goal"
)

// ParseSortKey maps unknown values to SortTrending. Matching is exact.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortFunding:
		return SortFunding
	case SortGoal:
		return SortGoal
	default:
		return SortTrending
	}
}

// ListFilter narrows the business listing. Empty fields do not filter.
type ListFilter struct {
	Category string
	Search   string
	SortBy   SortKey
}

// NewListFilter normalises raw query values.
func NewListFilter(category, search, sortBy string) ListFilter {
	category = strings.TrimSpace(category)
	if category == AllCategories {
		category = ""
	}
	return ListFilter{
		Category: category,
		Search:   strings.TrimSpace(search),
		SortBy:   ParseSortKey(sortBy),
	}
}
