package prs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func defaultThresholds() entity.Thresholds {
	return entity.Thresholds{AssignmentTimeLimit: 4, MaxDaysOpen: 5}
}

func user(id int64, login string) entity.User {
	return entity.User{ID: id, Login: login}
}

func openedAgo(d time.Duration) entity.PullRequest {
	return entity.PullRequest{ID: 1, Number: 7, Title: "fix", CreatedAt: now.Add(-d)}
}

func TestEnrich_UnassignedPastLimitIsWarning(t *testing.T) {
	got := Enrich(Input{Summary: openedAgo(5 * time.Hour), Thresholds: defaultThresholds()}, now)

	assert.Equal(t, entity.PRStatusWarning, got.Status)
	assert.True(t, got.MissingAssignee)
	assert.InDelta(t, 5.0, got.HoursOpen, 1e-9)
}

func TestEnrich_AssignedWithoutReviewerIsOK(t *testing.T) {
	pr := openedAgo(2 * time.Hour)
	pr.Assignees = []entity.User{user(1, "alice")}

	got := Enrich(Input{Summary: pr, Thresholds: defaultThresholds()}, now)

	assert.Equal(t, entity.PRStatusOK, got.Status)
	assert.False(t, got.MissingAssignee)
	assert.True(t, got.MissingReviewer)
	assert.Equal(t, 0, got.ReviewerCount)
}

func TestEnrich_StatusRule(t *testing.T) {
	tests := []struct {
		name      string
		open      time.Duration
		assignees []entity.User
		want      entity.PRStatus
	}{
		{"assigned and old", 100 * time.Hour, []entity.User{user(1, "a")}, entity.PRStatusOK},
		{"assigned and fresh", time.Minute, []entity.User{user(1, "a")}, entity.PRStatusOK},
		{"unassigned within limit", 3*time.Hour + 59*time.Minute, nil, entity.PRStatusOK},
		{"unassigned at limit", 4 * time.Hour, nil, entity.PRStatusWarning},
		{"unassigned past limit", 30 * time.Hour, nil, entity.PRStatusWarning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := openedAgo(tt.open)
			pr.Assignees = tt.assignees
			got := Enrich(Input{Summary: pr, Thresholds: defaultThresholds()}, now)
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestEnrich_ReviewerUnionCountsEachPersonOnce(t *testing.T) {
	pr := openedAgo(time.Hour)
	pr.RequestedReviewers = []entity.User{user(10, "bob"), user(11, "carol")}
	pr.RequestedTeams = []entity.Team{{ID: 1, Slug: "core"}}

	bob := user(10, "bob")
	dave := user(12, "dave")
	reviews := []entity.Review{
		{ID: 1, User: &bob, State: "APPROVED"},
		{ID: 2, User: &dave, State: "COMMENTED"},
		{ID: 3, User: &dave, State: "APPROVED"},
		{ID: 4, User: nil, State: "COMMENTED"},
	}

	got := Enrich(Input{Summary: pr, Reviews: reviews, Thresholds: defaultThresholds()}, now)

	require.Len(t, got.RequestedReviewers, 3)
	assert.Equal(t, []string{"bob", "carol", "dave"}, logins(got.RequestedReviewers))
	assert.Equal(t, 4, got.ReviewerCount)
	assert.False(t, got.MissingReviewer)
}

func TestEnrich_DetailIsAuthoritative(t *testing.T) {
	summary := openedAgo(10 * time.Hour)
	summary.Comments = 1

	detail := summary
	detail.Assignees = []entity.User{user(1, "alice")}
	detail.Comments = 3
	detail.ReviewComments = 4

	got := Enrich(Input{Summary: summary, Detail: &detail, Thresholds: defaultThresholds()}, now)

	assert.False(t, got.MissingAssignee)
	assert.Equal(t, entity.PRStatusOK, got.Status)
	assert.Equal(t, 7, got.CommentCount)
	assert.Equal(t, 3, got.IssueComments)
	assert.Equal(t, 4, got.ReviewComments)
}

func TestEnrich_FallsBackToSummary(t *testing.T) {
	summary := openedAgo(time.Hour)
	summary.RequestedReviewers = []entity.User{user(10, "bob")}
	summary.Comments = 2

	got := Enrich(Input{Summary: summary, Thresholds: defaultThresholds()}, now)

	assert.Equal(t, 1, got.ReviewerCount)
	assert.Equal(t, 2, got.CommentCount)
	assert.NotNil(t, got.Assignees)
	assert.NotNil(t, got.Labels)
}

func TestEnrich_LabelFlagsIgnoreCaseAndColor(t *testing.T) {
	pr := openedAgo(time.Hour)
	pr.Labels = []entity.Label{
		{Name: "URGENT", Color: "ffffff"},
		{Name: "Quick", Color: "000000", Description: "anything"},
		{Name: "urgent-ish"},
	}

	got := Enrich(Input{Summary: pr, Thresholds: defaultThresholds()}, now)
	assert.True(t, got.IsUrgent)
	assert.True(t, got.IsQuick)

	pr.Labels = []entity.Label{{Name: "urgent-ish"}, {Name: "quickfix"}}
	got = Enrich(Input{Summary: pr, Thresholds: defaultThresholds()}, now)
	assert.False(t, got.IsUrgent)
	assert.False(t, got.IsQuick)
}

func TestEnrich_OverMaxDaysDoesNotAffectStatus(t *testing.T) {
	pr := openedAgo(6 * 24 * time.Hour)
	pr.Assignees = []entity.User{user(1, "alice")}

	got := Enrich(Input{Summary: pr, Thresholds: defaultThresholds()}, now)
	assert.True(t, got.IsOverMaxDays)
	assert.Equal(t, entity.PRStatusOK, got.Status)

	pr = openedAgo(5 * 24 * time.Hour)
	got = Enrich(Input{Summary: pr, Thresholds: defaultThresholds()}, now)
	assert.False(t, got.IsOverMaxDays)
}

func TestEnrich_CarriesRepo(t *testing.T) {
	repo := entity.RepoRef{Owner: "acme", Name: "api"}
	got := Enrich(Input{Summary: openedAgo(time.Hour), Repo: repo, Thresholds: defaultThresholds()}, now)
	assert.Equal(t, repo, got.Repo)
}

func logins(users []entity.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Login)
	}
	return out
}
