package entities

import gitforgeEntities "github.com/rios0rios0/gitforge/domain/entities"

// ProjectInput contains the data needed to create a GitLab project.
type ProjectInput struct {
	Name                 string
	Path                 string
	Description          string
	Visibility           string
	NamespaceID          int64
	InitializeWithReadme bool
}

// Project is a GitLab project as returned by the API.
type Project struct {
	ID                int64
	Name              string
	PathWithNamespace string
	DefaultBranch     string
	HTTPURLToRepo     string
	WebURL            string
}

// BranchInput is re-exported from gitforge. Only BranchName and BaseBranch
// are sent when creating a branch.
type BranchInput = gitforgeEntities.BranchInput

// Branch is a GitLab branch as returned by the API.
type Branch struct {
	Name     string
	CommitID string
	WebURL   string
}
