package organization

import (
	"log/slog"
	"time"

	"github.com/daap14/agentflow/internal/apperror"
	"github.com/daap14/agentflow/internal/auth"
	"github.com/daap14/agentflow/internal/ident"
	"github.com/daap14/agentflow/internal/session"
	"github.com/daap14/agentflow/internal/store"
	"github.com/daap14/agentflow/internal/validation"
)

// Service provides organization operations for the session's user.
type Service struct {
	store  store.Store
	state  *session.State
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new organization Service.
func NewService(st store.Store, state *session.State, logger *slog.Logger) *Service {
	return &Service{
		store:  st,
		state:  state,
		logger: logger,
		now:    time.Now,
	}
}

// List returns the organizations owned by the current user, or every
// organization with its owner's email when all is set.
func (s *Service) List(all bool) ([]Summary, error) {
	ds, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	user, err := auth.RequireUser(ds, s.state)
	if err != nil {
		return nil, err
	}

	orgs := ds.Organizations
	if !all {
		orgs = ds.FindOrganizationsByOwner(user.ID)
	}

	summaries := make([]Summary, 0, len(orgs))
	for _, org := range orgs {
		sum := Summary{
			Organization: org,
			ProjectCount: len(ds.FindProjectsByOrganization(org.ID)),
		}
		if all {
			if owner := ds.FindUserByID(org.OwnerID); owner != nil {
				sum.OwnerEmail = owner.Email
			}
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

// Create adds an organization owned by the current user. Slugs are unique
// across all users.
func (s *Service) Create(in CreateInput) (*store.Organization, error) {
	if s.state.CurrentUserEmail() == "" {
		return nil, auth.ErrNotAuthenticated
	}
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, apperror.Validation("%w", err)
	}
	if err := validation.ValidateSlug(in.Slug); err != nil {
		return nil, apperror.Validation("%w", err)
	}

	ds, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if ds.SlugExistsInOrganizations(in.Slug) {
		return nil, apperror.Duplicate("Organization with slug '%s' already exists", in.Slug)
	}
	user, err := auth.RequireUser(ds, s.state)
	if err != nil {
		return nil, err
	}

	org := store.Organization{
		ID:          ident.New(),
		OwnerID:     user.ID,
		Name:        in.Name,
		Slug:        in.Slug,
		Description: optional(in.Description),
		CreatedAt:   store.NewTimestamp(s.now()),
	}
	ds.Organizations = append(ds.Organizations, org)

	if err := s.store.Save(ds); err != nil {
		return nil, err
	}
	s.logger.Debug("organization created", "id", org.ID, "slug", org.Slug, "owner", user.Email)

	return &org, nil
}

// View returns an organization owned by the current user with its projects.
func (s *Service) View(slug string) (*Detail, error) {
	ds, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	user, err := auth.RequireUser(ds, s.state)
	if err != nil {
		return nil, err
	}
	org, err := lookupOwned(ds, user, slug)
	if err != nil {
		return nil, err
	}

	return &Detail{
		Organization: *org,
		Projects:     ds.FindProjectsByOrganization(org.ID),
	}, nil
}

// Use makes slug the current organization and clears the current project,
// which belonged to the previous organization.
func (s *Service) Use(slug string) (*store.Organization, error) {
	ds, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	user, err := auth.RequireUser(ds, s.state)
	if err != nil {
		return nil, err
	}
	org, err := lookupOwned(ds, user, slug)
	if err != nil {
		return nil, err
	}

	s.state.SetCurrentOrganization(org.Slug)
	s.state.ClearProject()

	result := *org
	return &result, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
