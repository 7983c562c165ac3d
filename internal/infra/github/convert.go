package github

import (
	gh "github.com/google/go-github/v66/github"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
)

func toUser(u *gh.User) entity.User {
	if u == nil {
		return entity.User{}
	}
	return entity.User{
		ID:        u.GetID(),
		Login:     u.GetLogin(),
		AvatarURL: u.GetAvatarURL(),
		HTMLURL:   u.GetHTMLURL(),
		Type:      u.GetType(),
	}
}

func toUsers(in []*gh.User) []entity.User {
	out := make([]entity.User, 0, len(in))
	for _, u := range in {
		if u == nil {
			continue
		}
		out = append(out, toUser(u))
	}
	return out
}

func toLabel(l *gh.Label) entity.Label {
	return entity.Label{
		ID:          l.GetID(),
		Name:        l.GetName(),
		Color:       l.GetColor(),
		Description: l.GetDescription(),
	}
}

func toPullRequest(pr *gh.PullRequest) entity.PullRequest {
	out := entity.PullRequest{
		ID:                 pr.GetID(),
		Number:             pr.GetNumber(),
		Title:              pr.GetTitle(),
		HTMLURL:            pr.GetHTMLURL(),
		State:              pr.GetState(),
		Draft:              pr.GetDraft(),
		CreatedAt:          pr.GetCreatedAt().Time,
		UpdatedAt:          pr.GetUpdatedAt().Time,
		User:               toUser(pr.User),
		Assignees:          toUsers(pr.Assignees),
		RequestedReviewers: toUsers(pr.RequestedReviewers),
		RequestedTeams:     make([]entity.Team, 0, len(pr.RequestedTeams)),
		Labels:             make([]entity.Label, 0, len(pr.Labels)),
		Head:               entity.BranchRef{Ref: pr.GetHead().GetRef()},
		Base:               entity.BranchRef{Ref: pr.GetBase().GetRef()},
		Comments:           pr.GetComments(),
		ReviewComments:     pr.GetReviewComments(),
	}
	for _, t := range pr.RequestedTeams {
		out.RequestedTeams = append(out.RequestedTeams, entity.Team{ID: t.GetID(), Slug: t.GetSlug(), Name: t.GetName()})
	}
	for _, l := range pr.Labels {
		out.Labels = append(out.Labels, toLabel(l))
	}
	return out
}

func toReview(r *gh.PullRequestReview) entity.Review {
	out := entity.Review{
		ID:          r.GetID(),
		State:       r.GetState(),
		SubmittedAt: r.GetSubmittedAt().Time,
	}
	if r.User != nil {
		u := toUser(r.User)
		out.User = &u
	}
	return out
}

func contributorToUser(c *gh.Contributor) entity.User {
	return entity.User{
		ID:        c.GetID(),
		Login:     c.GetLogin(),
		AvatarURL: c.GetAvatarURL(),
		HTMLURL:   c.GetHTMLURL(),
		Type:      c.GetType(),
	}
}
