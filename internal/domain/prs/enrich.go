// Package prs holds the pure rules applied to pull requests after they are
// fetched: enrichment, ordering, filtering and aggregation.
package prs

import (
	"strings"
	"time"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

const (
	LabelUrgent = "urgent"
	LabelQuick  = "quick"
)

// Input is everything Enrich needs for one pull request. Detail and Reviews
// are nil when the corresponding fetch was skipped or failed.
type Input struct {
	Summary    entity.PullRequest
	Detail     *entity.PullRequest
	Reviews    []entity.Review
	Repo       entity.RepoRef
	Thresholds entity.Thresholds
}

func Enrich(in Input, now time.Time) entity.EnhancedPR {
	pr := in.Summary
	if in.Detail != nil {
		pr = *in.Detail
	}

	reviewers := reviewerUnion(pr.RequestedReviewers, in.Reviews)
	pr.RequestedReviewers = reviewers
	if pr.Assignees == nil {
		pr.Assignees = []entity.User{}
	}
	if pr.RequestedTeams == nil {
		pr.RequestedTeams = []entity.Team{}
	}
	if pr.Labels == nil {
		pr.Labels = []entity.Label{}
	}

	hoursOpen := HoursOpen(pr.CreatedAt, now)
	reviewerCount := len(reviewers) + len(pr.RequestedTeams)
	missingAssignee := len(pr.Assignees) == 0

	return entity.EnhancedPR{
		PullRequest:     pr,
		Status:          Classify(missingAssignee, hoursOpen, in.Thresholds.AssignmentTimeLimit),
		HoursOpen:       hoursOpen,
		MissingAssignee: missingAssignee,
		MissingReviewer: reviewerCount == 0,
		ReviewerCount:   reviewerCount,
		CommentCount:    pr.Comments + pr.ReviewComments,
		IssueComments:   pr.Comments,
		ReviewComments:  pr.ReviewComments,
		IsUrgent:        HasLabel(pr.Labels, LabelUrgent),
		IsQuick:         HasLabel(pr.Labels, LabelQuick),
		IsOverMaxDays:   hoursOpen/24 > float64(in.Thresholds.MaxDaysOpen),
		Repo:            in.Repo,
	}
}

func HoursOpen(createdAt, now time.Time) float64 {
	return now.Sub(createdAt).Hours()
}

// Classify applies the assignment SLA. Reviewer absence never downgrades the
// status; only a missing assignee past the time limit does.
func Classify(missingAssignee bool, hoursOpen, assignmentTimeLimit float64) entity.PRStatus {
	if !missingAssignee {
		return entity.PRStatusOK
	}
	if hoursOpen >= assignmentTimeLimit {
		return entity.PRStatusWarning
	}
	return entity.PRStatusOK
}

func HasLabel(labels []entity.Label, name string) bool {
	for _, l := range labels {
		if strings.ToLower(l.Name) == name {
			return true
		}
	}
	return false
}

// reviewerUnion merges requested reviewers with everyone who already
// submitted a review. GitHub drops a reviewer from the requested list once
// they review, the dashboard keeps showing them. Later entries overwrite
// earlier ones with the same ID; first-seen order is kept.
func reviewerUnion(requested []entity.User, reviews []entity.Review) []entity.User {
	out := make([]entity.User, 0, len(requested)+len(reviews))
	index := make(map[int64]int, len(requested)+len(reviews))

	put := func(u entity.User) {
		if i, ok := index[u.ID]; ok {
			out[i] = u
			return
		}
		index[u.ID] = len(out)
		out = append(out, u)
	}

	for _, u := range requested {
		put(u)
	}
	for _, r := range reviews {
		if r.User == nil {
			continue
		}
		put(*r.User)
	}
	return out
}
