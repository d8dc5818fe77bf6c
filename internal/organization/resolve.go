package organization

import (
	"github.com/daap14/agentflow/internal/apperror"
	"github.com/daap14/agentflow/internal/session"
	"github.com/daap14/agentflow/internal/store"
)

// ErrAccessDenied is returned when the current user does not own the
// organization.
var ErrAccessDenied = apperror.Forbidden("Access denied")

// ErrNoOrganizationSelected is returned when neither --org nor the session
// names an organization.
var ErrNoOrganizationSelected = apperror.Validation(
	"No organization selected. Use: agentflow org use <slug> (or pass --org <slug>)")

// NotFoundError builds the error for an unknown organization slug.
func NotFoundError(slug string) error {
	return apperror.NotFound("Organization '%s' not found", slug)
}

// Resolve picks the organization a command acts on: the explicit slug when
// given, otherwise the session's current organization. The returned pointer
// aliases ds.
func Resolve(ds *store.Dataset, state *session.State, user *store.User, explicit string) (*store.Organization, error) {
	slug := explicit
	if slug == "" {
		slug = state.CurrentOrganization()
	}
	if slug == "" {
		return nil, ErrNoOrganizationSelected
	}
	return lookupOwned(ds, user, slug)
}

func lookupOwned(ds *store.Dataset, user *store.User, slug string) (*store.Organization, error) {
	org := ds.FindOrganizationBySlug(slug)
	if org == nil {
		return nil, NotFoundError(slug)
	}
	if org.OwnerID != user.ID {
		return nil, ErrAccessDenied
	}
	return org, nil
}
