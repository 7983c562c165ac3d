package prs

import (
	"fmt"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

const (
	FilterUrgent          = "urgent"
	FilterQuick           = "quick"
	FilterUnassigned      = "unassigned"
	FilterMissingAssignee = "missing-assignee"
	FilterMissingReviewer = "missing-reviewer"
)

// AllFilters is the full filter set, in display order.
var AllFilters = []string{
	FilterUrgent,
	FilterQuick,
	FilterUnassigned,
	FilterMissingAssignee,
	FilterMissingReviewer,
}

func ParseFilters(keys []string) (map[string]bool, error) {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !isFilter(k) {
			return nil, fmt.Errorf("unknown filter %q", k)
		}
		set[k] = true
	}
	return set, nil
}

func isFilter(k string) bool {
	for _, f := range AllFilters {
		if f == k {
			return true
		}
	}
	return false
}

// Categories lists the filter keys a pull request belongs to.
func Categories(pr entity.EnhancedPR) []string {
	var out []string
	if pr.IsUrgent {
		out = append(out, FilterUrgent)
	}
	if pr.IsQuick {
		out = append(out, FilterQuick)
	}
	if pr.MissingAssignee || pr.MissingReviewer {
		out = append(out, FilterUnassigned)
	}
	if pr.MissingAssignee {
		out = append(out, FilterMissingAssignee)
	}
	if pr.MissingReviewer {
		out = append(out, FilterMissingReviewer)
	}
	return out
}

// Filter keeps pull requests whose repository is in activeRepos and which
// either carry no category or carry at least one active one. An empty
// activeFilters or activeRepos set keeps nothing.
func Filter(list []entity.EnhancedPR, activeFilters, activeRepos map[string]bool) []entity.EnhancedPR {
	out := make([]entity.EnhancedPR, 0, len(list))
	if len(activeFilters) == 0 || len(activeRepos) == 0 {
		return out
	}

	for _, pr := range list {
		if !activeRepos[pr.Repo.FullName()] {
			continue
		}
		if matches(Categories(pr), activeFilters) {
			out = append(out, pr)
		}
	}
	return out
}

func matches(categories []string, active map[string]bool) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if active[c] {
			return true
		}
	}
	return false
}
