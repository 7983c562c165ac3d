package handlers

import (
	"net/http"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/prs"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/usecase"
)

// GET /api/prs?sort=&filter=&repo=
func (h *Handlers) ListPRs(w http.ResponseWriter, r *http.Request) {
	opts, err := listOptions(r)
	if err != nil {
		badQuery(w, err)
		return
	}

	listing, err := h.service.ListPRs(r.Context(), opts)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch PRs")
		return
	}
	WriteJSON(w, http.StatusOK, listing)
}

func listOptions(r *http.Request) (usecase.ListOptions, error) {
	var opts usecase.ListOptions

	sortParam, err := queryString(r, "sort")
	if err != nil {
		return opts, err
	}
	if sortParam != "" {
		mode, err := prs.ParseSortMode(sortParam)
		if err != nil {
			return opts, err
		}
		opts.Sort = string(mode)
	}

	filters, present, err := queryList(r, "filter")
	if err != nil {
		return opts, err
	}
	if present {
		if opts.Filters, err = prs.ParseFilters(filters); err != nil {
			return opts, err
		}
	}

	repos, present, err := queryList(r, "repo")
	if err != nil {
		return opts, err
	}
	if present {
		opts.Repos = make(map[string]bool, len(repos))
		for _, repo := range repos {
			opts.Repos[repo] = true
		}
	}

	return opts, nil
}
