package organization

import "github.com/daap14/agentflow/internal/store"

// CreateInput carries the fields of "org create". An empty Description is
// stored as null.
type CreateInput struct {
	Name        string
	Slug        string
	Description string
}

// Summary is one row of "org list".
type Summary struct {
	store.Organization
	OwnerEmail   string `json:"owner_email,omitempty"`
	ProjectCount int    `json:"project_count"`
}

// Detail is the result of "org view": the organization and its projects in
// insertion order.
type Detail struct {
	store.Organization
	Projects []store.Project `json:"projects"`
}
