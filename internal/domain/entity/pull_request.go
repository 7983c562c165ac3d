package entity

import "time"

type User struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Type      string `json:"type,omitempty"`
}

type Team struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type Label struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}

type BranchRef struct {
	Ref string `json:"ref"`
}

// PullRequest mirrors the subset of the GitHub pull request payload the
// dashboard reads. Comment counts are only populated by the detail endpoint.
type PullRequest struct {
	ID                 int64     `json:"id"`
	Number             int       `json:"number"`
	Title              string    `json:"title"`
	HTMLURL            string    `json:"html_url"`
	State              string    `json:"state"`
	Draft              bool      `json:"draft"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	User               User      `json:"user"`
	Assignees          []User    `json:"assignees"`
	RequestedReviewers []User    `json:"requested_reviewers"`
	RequestedTeams     []Team    `json:"requested_teams"`
	Labels             []Label   `json:"labels"`
	Head               BranchRef `json:"head"`
	Base               BranchRef `json:"base"`

	Comments       int `json:"-"`
	ReviewComments int `json:"-"`
}

// Review is a submitted code review. User is nil for deleted accounts.
type Review struct {
	ID          int64     `json:"id"`
	User        *User     `json:"user"`
	State       string    `json:"state"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type PRStatus string

const (
	PRStatusOK      PRStatus = "ok"
	PRStatusWarning PRStatus = "warning"
	PRStatusOverdue PRStatus = "overdue"
)

type RepoRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// EnhancedPR is built fresh on every listing and never persisted.
type EnhancedPR struct {
	PullRequest

	Status          PRStatus `json:"status"`
	HoursOpen       float64  `json:"hoursOpen"`
	MissingAssignee bool     `json:"missingAssignee"`
	MissingReviewer bool     `json:"missingReviewer"`
	ReviewerCount   int      `json:"reviewerCount"`
	CommentCount    int      `json:"commentCount"`
	IssueComments   int      `json:"issueComments"`
	ReviewComments  int      `json:"reviewComments"`
	IsUrgent        bool     `json:"isUrgent"`
	IsQuick         bool     `json:"isQuick"`
	IsOverMaxDays   bool     `json:"isOverMaxDays"`
	Repo            RepoRef  `json:"repo"`
}

// PRRef addresses a single pull request on GitHub.
type PRRef struct {
	Owner  string
	Repo   string
	Number int
}

type AssignmentAction string

const (
	ActionAdd    AssignmentAction = "add"
	ActionRemove AssignmentAction = "remove"
)

type PRListing struct {
	PRs    []EnhancedPR      `json:"prs"`
	Config DashboardConfig   `json:"config"`
	Errors map[string]string `json:"errors,omitempty"`
}

// PRStats holds the dashboard counters.
type PRStats struct {
	Total           int `json:"total"`
	Urgent          int `json:"urgent"`
	Quick           int `json:"quick"`
	Warning         int `json:"warning"`
	OverMaxDays     int `json:"overMaxDays"`
	Unassigned      int `json:"unassigned"`
	MissingAssignee int `json:"missingAssignee"`
	MissingReviewer int `json:"missingReviewer"`
}

type WorkloadView string

const (
	WorkloadAssigned WorkloadView = "assigned"
	WorkloadCreated  WorkloadView = "created"
)

type WorkloadEntry struct {
	PR   EnhancedPR `json:"pr"`
	Role string     `json:"role"`
}

type UserWorkload struct {
	User  User            `json:"user"`
	PRs   []WorkloadEntry `json:"prs"`
	Total int             `json:"total"`
}
