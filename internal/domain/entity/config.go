package entity

const (
	DefaultAssignmentTimeLimit = 4
	DefaultMaxDaysOpen         = 5
)

type Repository struct {
	Owner   string `json:"owner"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

func (r Repository) Ref() RepoRef {
	return RepoRef{Owner: r.Owner, Name: r.Name}
}

type DashboardConfig struct {
	AssignmentTimeLimit float64      `json:"assignmentTimeLimit"`
	MaxDaysOpen         int          `json:"maxDaysOpen"`
	Repositories        []Repository `json:"repositories"`
}

// Thresholds is the part of the config the enrichment step needs.
type Thresholds struct {
	AssignmentTimeLimit float64
	MaxDaysOpen         int
}

func (c DashboardConfig) Thresholds() Thresholds {
	return Thresholds{
		AssignmentTimeLimit: c.AssignmentTimeLimit,
		MaxDaysOpen:         c.MaxDaysOpen,
	}
}

// RepoValidation is the outcome shown by the configuration panel when a
// repository is added.
type RepoValidation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}
