package project

import (
	"log/slog"
	"time"

	"github.com/daap14/agentflow/internal/apperror"
	"github.com/daap14/agentflow/internal/auth"
	"github.com/daap14/agentflow/internal/ident"
	"github.com/daap14/agentflow/internal/organization"
	"github.com/daap14/agentflow/internal/session"
	"github.com/daap14/agentflow/internal/store"
	"github.com/daap14/agentflow/internal/validation"
)

// CreateInput carries the fields of "project create". Empty optional
// strings are stored as null; an empty Org means the session organization.
type CreateInput struct {
	Org         string
	Name        string
	Slug        string
	Description string
	GithubURL   string
}

// Listing is the result of "project list".
type Listing struct {
	Organization store.Organization `json:"organization"`
	Projects     []store.Project    `json:"projects"`
}

// Detail is a project together with the organization it belongs to.
type Detail struct {
	store.Project
	Organization store.Organization `json:"organization"`
}

// Service provides project operations scoped to a resolved organization.
type Service struct {
	store  store.Store
	state  *session.State
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new project Service.
func NewService(st store.Store, state *session.State, logger *slog.Logger) *Service {
	return &Service{
		store:  st,
		state:  state,
		logger: logger,
		now:    time.Now,
	}
}

// scope loads the dataset and resolves the current user and organization.
func (s *Service) scope(org string) (*store.Dataset, *store.Organization, error) {
	ds, err := s.store.Load()
	if err != nil {
		return nil, nil, err
	}
	user, err := auth.RequireUser(ds, s.state)
	if err != nil {
		return nil, nil, err
	}
	o, err := organization.Resolve(ds, s.state, user, org)
	if err != nil {
		return nil, nil, err
	}
	return ds, o, nil
}

// List returns the projects of org in insertion order.
func (s *Service) List(org string) (*Listing, error) {
	ds, o, err := s.scope(org)
	if err != nil {
		return nil, err
	}
	return &Listing{
		Organization: *o,
		Projects:     ds.FindProjectsByOrganization(o.ID),
	}, nil
}

// Create adds an active project to the resolved organization and makes it
// the current project. Its organization becomes the current organization.
func (s *Service) Create(in CreateInput) (*Detail, error) {
	ds, o, err := s.scope(in.Org)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, apperror.Validation("%w", err)
	}
	if err := validation.ValidateSlug(in.Slug); err != nil {
		return nil, apperror.Validation("%w", err)
	}
	if ds.SlugExistsInProjects(o.ID, in.Slug) {
		return nil, apperror.Duplicate("Project with slug '%s' already exists in this organization", in.Slug)
	}

	p := store.Project{
		ID:             ident.New(),
		OrganizationID: o.ID,
		Name:           in.Name,
		Slug:           in.Slug,
		Description:    optional(in.Description),
		GithubURL:      optional(in.GithubURL),
		IsActive:       true,
		CreatedAt:      store.NewTimestamp(s.now()),
	}
	ds.Projects = append(ds.Projects, p)

	if err := s.store.Save(ds); err != nil {
		return nil, err
	}
	s.logger.Debug("project created", "id", p.ID, "organization", o.Slug, "slug", p.Slug)

	s.state.SetCurrentOrganization(o.Slug)
	s.state.SetCurrentProject(p.Slug)

	return &Detail{Project: p, Organization: *o}, nil
}

// View returns one project of the resolved organization.
func (s *Service) View(slug, org string) (*Detail, error) {
	ds, o, err := s.scope(org)
	if err != nil {
		return nil, err
	}
	p := ds.FindProjectBySlug(o.ID, slug)
	if p == nil {
		return nil, NotFoundError(slug, o.Slug)
	}
	return &Detail{Project: *p, Organization: *o}, nil
}

// Use makes slug the current project, switching the current organization
// to the project's when they differ.
func (s *Service) Use(slug, org string) (*Detail, error) {
	d, err := s.View(slug, org)
	if err != nil {
		return nil, err
	}
	s.state.SetCurrentOrganization(d.Organization.Slug)
	s.state.SetCurrentProject(d.Slug)
	return d, nil
}

// NotFoundError builds the error for a slug missing from an organization.
func NotFoundError(slug, org string) error {
	return apperror.NotFound("Project '%s' not found in %s", slug, org)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
