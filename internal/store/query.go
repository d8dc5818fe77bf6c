package store

// Lookups are linear scans in insertion order. Pointers returned by the
// Find methods alias elements of the dataset's slices, so mutations through
// them are saved with the dataset. Appending to the same slice invalidates
// them.

// FindUserByEmail returns the first user whose email matches exactly.
func (d *Dataset) FindUserByEmail(email string) *User {
	for i := range d.Users {
		if d.Users[i].Email == email {
			return &d.Users[i]
		}
	}
	return nil
}

// FindUserByID returns the user with the given id.
func (d *Dataset) FindUserByID(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// FindOrganizationBySlug returns the organization with the given slug.
func (d *Dataset) FindOrganizationBySlug(slug string) *Organization {
	for i := range d.Organizations {
		if d.Organizations[i].Slug == slug {
			return &d.Organizations[i]
		}
	}
	return nil
}

// FindProjectBySlug returns the project with the given slug inside one
// organization.
func (d *Dataset) FindProjectBySlug(organizationID, slug string) *Project {
	for i := range d.Projects {
		p := &d.Projects[i]
		if p.OrganizationID == organizationID && p.Slug == slug {
			return p
		}
	}
	return nil
}

// FindProjectsByOrganization returns copies of an organization's projects.
func (d *Dataset) FindProjectsByOrganization(organizationID string) []Project {
	projects := []Project{}
	for _, p := range d.Projects {
		if p.OrganizationID == organizationID {
			projects = append(projects, p)
		}
	}
	return projects
}

// FindOrganizationsByOwner returns copies of the organizations a user owns.
func (d *Dataset) FindOrganizationsByOwner(userID string) []Organization {
	orgs := []Organization{}
	for _, o := range d.Organizations {
		if o.OwnerID == userID {
			orgs = append(orgs, o)
		}
	}
	return orgs
}

// SlugExistsInOrganizations reports whether any organization uses slug.
func (d *Dataset) SlugExistsInOrganizations(slug string) bool {
	return d.FindOrganizationBySlug(slug) != nil
}

// SlugExistsInProjects reports whether the organization already has a
// project with slug.
func (d *Dataset) SlugExistsInProjects(organizationID, slug string) bool {
	return d.FindProjectBySlug(organizationID, slug) != nil
}
