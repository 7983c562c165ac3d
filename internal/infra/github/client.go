package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/entity"
	"github.com/prubiera85/hot-potato-pr-dashboard/internal/domain/repository"
)

const (
	DefaultAPIURL = "https://api.github.com"
	perPage       = 100
)

// Client adapts go-github to repository.GitHubClient for one installation.
type Client struct {
	gh *gh.Client
}

var _ repository.GitHubClient = (*Client)(nil)

func NewClient(httpClient *http.Client, apiURL string) (*Client, error) {
	c, err := NewRESTClient(httpClient, apiURL)
	if err != nil {
		return nil, err
	}
	return &Client{gh: c}, nil
}

// NewRESTClient points go-github at apiURL, which may be an Enterprise or
// test server root.
func NewRESTClient(httpClient *http.Client, apiURL string) (*gh.Client, error) {
	c := gh.NewClient(httpClient)
	if apiURL == "" || apiURL == DefaultAPIURL {
		return c, nil
	}
	base, err := url.Parse(strings.TrimSuffix(apiURL, "/") + "/")
	if err != nil {
		return nil, err
	}
	c.BaseURL = base
	return c, nil
}

func (c *Client) ListOpenPullRequests(ctx context.Context, owner, repo string) ([]entity.PullRequest, error) {
	const op = "github.ListOpenPullRequests"

	opts := &gh.PullRequestListOptions{State: "open", ListOptions: gh.ListOptions{PerPage: perPage}}
	var out []entity.PullRequest
	for {
		page, resp, err := c.gh.PullRequests.List(ctx, owner, repo, opts)
		if err != nil {
			return nil, mapError(op, err)
		}
		for _, pr := range page {
			out = append(out, toPullRequest(pr))
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (entity.PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return entity.PullRequest{}, mapError("github.GetPullRequest", err)
	}
	return toPullRequest(pr), nil
}

func (c *Client) ListReviews(ctx context.Context, owner, repo string, number int) ([]entity.Review, error) {
	const op = "github.ListReviews"

	opts := &gh.ListOptions{PerPage: perPage}
	var out []entity.Review
	for {
		page, resp, err := c.gh.PullRequests.ListReviews(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, mapError(op, err)
		}
		for _, r := range page {
			out = append(out, toReview(r))
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

func (c *Client) GetLabel(ctx context.Context, owner, repo, name string) (entity.Label, error) {
	l, _, err := c.gh.Issues.GetLabel(ctx, owner, repo, name)
	if err != nil {
		return entity.Label{}, mapError("github.GetLabel", err)
	}
	return toLabel(l), nil
}

func (c *Client) CreateLabel(ctx context.Context, owner, repo string, label entity.Label) (entity.Label, error) {
	l, _, err := c.gh.Issues.CreateLabel(ctx, owner, repo, &gh.Label{
		Name:        gh.String(label.Name),
		Color:       gh.String(label.Color),
		Description: gh.String(label.Description),
	})
	if err != nil {
		return entity.Label{}, mapError("github.CreateLabel", err)
	}
	return toLabel(l), nil
}

func (c *Client) AddLabel(ctx context.Context, pr entity.PRRef, name string) error {
	_, _, err := c.gh.Issues.AddLabelsToIssue(ctx, pr.Owner, pr.Repo, pr.Number, []string{name})
	return mapError("github.AddLabel", err)
}

func (c *Client) RemoveLabel(ctx context.Context, pr entity.PRRef, name string) error {
	_, err := c.gh.Issues.RemoveLabelForIssue(ctx, pr.Owner, pr.Repo, pr.Number, name)
	return mapError("github.RemoveLabel", err)
}

func (c *Client) AddAssignees(ctx context.Context, pr entity.PRRef, logins []string) ([]entity.User, error) {
	issue, _, err := c.gh.Issues.AddAssignees(ctx, pr.Owner, pr.Repo, pr.Number, logins)
	if err != nil {
		return nil, mapError("github.AddAssignees", err)
	}
	return toUsers(issue.Assignees), nil
}

func (c *Client) RemoveAssignees(ctx context.Context, pr entity.PRRef, logins []string) ([]entity.User, error) {
	issue, _, err := c.gh.Issues.RemoveAssignees(ctx, pr.Owner, pr.Repo, pr.Number, logins)
	if err != nil {
		return nil, mapError("github.RemoveAssignees", err)
	}
	return toUsers(issue.Assignees), nil
}

func (c *Client) RequestReviewers(ctx context.Context, pr entity.PRRef, logins []string) ([]entity.User, error) {
	out, _, err := c.gh.PullRequests.RequestReviewers(ctx, pr.Owner, pr.Repo, pr.Number, gh.ReviewersRequest{Reviewers: logins})
	if err != nil {
		return nil, mapError("github.RequestReviewers", err)
	}
	return toUsers(out.RequestedReviewers), nil
}

func (c *Client) RemoveReviewers(ctx context.Context, pr entity.PRRef, logins []string) error {
	_, err := c.gh.PullRequests.RemoveReviewers(ctx, pr.Owner, pr.Repo, pr.Number, gh.ReviewersRequest{Reviewers: logins})
	return mapError("github.RemoveReviewers", err)
}

func (c *Client) GetRepository(ctx context.Context, owner, repo string) (entity.RepoRef, error) {
	r, _, err := c.gh.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return entity.RepoRef{}, mapError("github.GetRepository", err)
	}
	return entity.RepoRef{Owner: r.GetOwner().GetLogin(), Name: r.GetName()}, nil
}

func (c *Client) ListCollaborators(ctx context.Context, owner, repo string) ([]entity.User, error) {
	const op = "github.ListCollaborators"

	opts := &gh.ListCollaboratorsOptions{ListOptions: gh.ListOptions{PerPage: perPage}}
	var out []entity.User
	for {
		page, resp, err := c.gh.Repositories.ListCollaborators(ctx, owner, repo, opts)
		if err != nil {
			return nil, mapError(op, err)
		}
		out = append(out, toUsers(page)...)
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

func (c *Client) ListContributors(ctx context.Context, owner, repo string) ([]entity.User, error) {
	const op = "github.ListContributors"

	opts := &gh.ListContributorsOptions{ListOptions: gh.ListOptions{PerPage: perPage}}
	var out []entity.User
	for {
		page, resp, err := c.gh.Repositories.ListContributors(ctx, owner, repo, opts)
		if err != nil {
			return nil, mapError(op, err)
		}
		for _, contributor := range page {
			out = append(out, contributorToUser(contributor))
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

func (c *Client) ListOrgMembers(ctx context.Context, org string) ([]entity.User, error) {
	const op = "github.ListOrgMembers"

	opts := &gh.ListMembersOptions{ListOptions: gh.ListOptions{PerPage: perPage}}
	var out []entity.User
	for {
		page, resp, err := c.gh.Organizations.ListMembers(ctx, org, opts)
		if err != nil {
			return nil, mapError(op, err)
		}
		out = append(out, toUsers(page)...)
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}
