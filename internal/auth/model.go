package auth

import "github.com/daap14/agentflow/internal/store"

// RegisterInput carries the fields of "auth register".
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Registration is the outcome of a successful register: the stored user
// and its first API key, which is shown to the caller once.
type Registration struct {
	User   store.User
	APIKey store.APIKey
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	User         store.User
	APIKey       store.APIKey
	Organization string
	Project      string
}

// Status describes the current session for "auth status".
type Status struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Organization  string `json:"organization,omitempty"`
	Project       string `json:"project,omitempty"`
	ContextFile   string `json:"contextFile"`
	DataFile      string `json:"dataFile"`
}
