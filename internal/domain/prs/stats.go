package prs

import (
	"sort"
	"strings"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

func Summarize(list []entity.EnhancedPR) entity.PRStats {
	s := entity.PRStats{Total: len(list)}
	for _, pr := range list {
		if pr.IsUrgent {
			s.Urgent++
		}
		if pr.IsQuick {
			s.Quick++
		}
		if pr.Status == entity.PRStatusWarning {
			s.Warning++
		}
		if pr.IsOverMaxDays {
			s.OverMaxDays++
		}
		if pr.MissingAssignee || pr.MissingReviewer {
			s.Unassigned++
		}
		if pr.MissingAssignee {
			s.MissingAssignee++
		}
		if pr.MissingReviewer {
			s.MissingReviewer++
		}
	}
	return s
}

// Workload groups pull requests per user. The assigned view counts a PR once
// per assignee and once per reviewer; the created view groups by author.
// Registered usernames without any PR are listed with an empty workload,
// reusing their profile when they take part in any listed PR.
// Users without a login (deleted accounts) are skipped.
func Workload(list []entity.EnhancedPR, view entity.WorkloadView, registered []string) []entity.UserWorkload {
	byLogin := make(map[string]*entity.UserWorkload)
	var order []string

	add := func(u entity.User, pr entity.EnhancedPR, role string) {
		if u.Login == "" {
			return
		}
		key := strings.ToLower(u.Login)
		w, ok := byLogin[key]
		if !ok {
			w = &entity.UserWorkload{User: u, PRs: []entity.WorkloadEntry{}}
			byLogin[key] = w
			order = append(order, key)
		}
		if role == "" {
			return
		}
		w.PRs = append(w.PRs, entity.WorkloadEntry{PR: pr, Role: role})
		w.Total++
	}

	for _, pr := range list {
		switch view {
		case entity.WorkloadCreated:
			add(pr.User, pr, "author")
		default:
			for _, u := range pr.Assignees {
				add(u, pr, "assignee")
			}
			for _, u := range pr.RequestedReviewers {
				add(u, pr, "reviewer")
			}
		}
	}

	for _, login := range registered {
		if login == "" {
			continue
		}
		if _, ok := byLogin[strings.ToLower(login)]; ok {
			continue
		}
		u, ok := participant(list, login)
		if !ok {
			u = entity.User{
				Login:     login,
				AvatarURL: "https://github.com/" + login + ".png",
				HTMLURL:   "https://github.com/" + login,
			}
		}
		add(u, entity.EnhancedPR{}, "")
	}

	out := make([]entity.UserWorkload, 0, len(order))
	for _, key := range order {
		out = append(out, *byLogin[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return strings.ToLower(out[i].User.Login) < strings.ToLower(out[j].User.Login)
	})
	return out
}

// participant finds the first author, assignee or reviewer of list matching
// login, case-insensitively.
func participant(list []entity.EnhancedPR, login string) (entity.User, bool) {
	for _, pr := range list {
		if strings.EqualFold(pr.User.Login, login) {
			return pr.User, true
		}
		for _, u := range pr.Assignees {
			if strings.EqualFold(u.Login, login) {
				return u, true
			}
		}
		for _, u := range pr.RequestedReviewers {
			if strings.EqualFold(u.Login, login) {
				return u, true
			}
		}
	}
	return entity.User{}, false
}
