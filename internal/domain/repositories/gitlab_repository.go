package repositories

import (
	"context"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
)

// GitLabRepository abstracts the GitLab HTTP API endpoints used by the actions.
// Project identifiers are either numeric IDs or "namespace/path" strings.
type GitLabRepository interface {
	// CreateMergeRequest opens a merge request and returns what GitLab reports back.
	CreateMergeRequest(
		ctx context.Context,
		projectID string,
		input entities.MergeRequestInput,
	) (*entities.MergeRequest, error)

	// UpdateMergeRequest edits the merge request identified by its project-scoped IID.
	UpdateMergeRequest(
		ctx context.Context,
		projectID string,
		mergeRequestIID int64,
		input entities.MergeRequestInput,
	) error

	// CreateProject creates a new project.
	CreateProject(ctx context.Context, input entities.ProjectInput) (*entities.Project, error)

	// GetProject fetches a single project.
	GetProject(ctx context.Context, projectID string) (*entities.Project, error)

	// CreateBranch creates a branch in the project from the given ref.
	CreateBranch(
		ctx context.Context,
		projectID string,
		input entities.BranchInput,
	) (*entities.Branch, error)
}

// GitLabRepositoryFactory builds a client for one host and token. A new
// client is built for every action invocation.
type GitLabRepositoryFactory func(host, token string) (GitLabRepository, error)
