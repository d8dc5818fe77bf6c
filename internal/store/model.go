package store

// Dataset is the whole persisted document: every user, organization and
// project, in insertion order.
type Dataset struct {
	Users         []User         `json:"users"`
	Organizations []Organization `json:"organizations"`
	Projects      []Project      `json:"projects"`
}

// User is a registered account. Email is unique across all users.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	APIKeys      []APIKey  `json:"api_keys"`
	CreatedAt    Timestamp `json:"created_at"`
}

// APIKey is owned by exactly one user. The key string is shown once at
// creation and kept so that login can restore it into the session.
type APIKey struct {
	Key        string     `json:"key"`
	Name       string     `json:"name"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  Timestamp  `json:"created_at"`
	LastUsedAt *Timestamp `json:"last_used_at"`
}

// Organization is owned by one user. Slug is globally unique.
type Organization struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   Timestamp `json:"created_at"`
}

// Project belongs to one organization. Slug is unique within that
// organization only.
type Project struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    *string   `json:"description"`
	GithubURL      *string   `json:"github_url"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      Timestamp `json:"created_at"`
}

// FirstActiveKey returns the first active API key in creation order, or
// nil when every key is deactivated.
func (u *User) FirstActiveKey() *APIKey {
	for i := range u.APIKeys {
		if u.APIKeys[i].IsActive {
			return &u.APIKeys[i]
		}
	}
	return nil
}

// normalize replaces nil collections with empty ones so the document
// always serializes lists as [] rather than null.
func (d *Dataset) normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Organizations == nil {
		d.Organizations = []Organization{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	for i := range d.Users {
		if d.Users[i].APIKeys == nil {
			d.Users[i].APIKeys = []APIKey{}
		}
	}
}
