package auth

import (
	"github.com/daap14/agentflow/internal/apperror"
	"github.com/daap14/agentflow/internal/session"
	"github.com/daap14/agentflow/internal/store"
)

// ErrNotAuthenticated is returned when no user is recorded in the session.
var ErrNotAuthenticated = apperror.Unauthenticated("Not authenticated. Run: agentflow auth login")

// ErrUserNotFound is returned when the session names a user that is not in
// the data file.
var ErrUserNotFound = apperror.NotFound("User not found")

// ErrUserExists is returned when registering an email that is already taken.
var ErrUserExists = apperror.Duplicate("User already exists")

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
// Both cases share the message so login does not reveal which emails exist.
var ErrInvalidCredentials = apperror.Unauthenticated("Invalid credentials")

// ErrNoActiveKey is returned when a user logs in but has no active API key.
var ErrNoActiveKey = apperror.NotFound("No active API keys found")

// ErrKeyNameRequired is returned by "api-keys create" without --name.
var ErrKeyNameRequired = apperror.Validation("Name is required for creating API key")

// RequireUser resolves the session's current user in ds. It is the
// authentication check shared by every command that needs a user.
func RequireUser(ds *store.Dataset, state *session.State) (*store.User, error) {
	email := state.CurrentUserEmail()
	if email == "" {
		return nil, ErrNotAuthenticated
	}
	user := ds.FindUserByEmail(email)
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
