package prs

import (
	"fmt"
	"sort"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

type SortMode string

const (
	SortTimeOpenAsc  SortMode = "time-open-asc"
	SortTimeOpenDesc SortMode = "time-open-desc"
)

func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(s); m {
	case SortTimeOpenAsc, SortTimeOpenDesc:
		return m, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q", s)
	}
}

// Sort returns a sorted copy ordered by hours open. Unknown modes return the
// copy unchanged.
func Sort(list []entity.EnhancedPR, mode SortMode) []entity.EnhancedPR {
	sorted := make([]entity.EnhancedPR, len(list))
	copy(sorted, list)

	switch mode {
	case SortTimeOpenAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].HoursOpen < sorted[j].HoursOpen
		})
	case SortTimeOpenDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].HoursOpen > sorted[j].HoursOpen
		})
	}
	return sorted
}
