package gitlab

import (
	"context"
	"fmt"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/repositories"
)

// GitLabRepository implements repositories.GitLabRepository on top of the
// official GitLab API client. Retries are disabled: every failure is returned
// to the caller as-is.
type GitLabRepository struct {
	client *gl.Client
}

// NewGitLabRepository creates a GitLab client for the given host and token.
// The host is either a bare hostname ("gitlab.example.com") or a base URL
// with a scheme ("http://localhost:8080").
func NewGitLabRepository(host, token string) (repositories.GitLabRepository, error) {
	client, err := gl.NewClient(
		token,
		gl.WithBaseURL(baseURL(host)),
		gl.WithCustomRetryMax(0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitlab client: %w", err)
	}
	return &GitLabRepository{client: client}, nil
}

func baseURL(host string) string {
	if strings.Contains(host, "://") {
		return host
	}
	return "https://" + host
}

func (p *GitLabRepository) CreateMergeRequest(
	ctx context.Context,
	projectID string,
	input entities.MergeRequestInput,
) (*entities.MergeRequest, error) {
	mr, _, err := p.client.MergeRequests.CreateMergeRequest(
		projectID,
		&gl.CreateMergeRequestOptions{
			Title:        gl.Ptr(input.Title),
			Description:  gl.Ptr(input.Description),
			SourceBranch: gl.Ptr(input.SourceBranch),
			TargetBranch: gl.Ptr(input.TargetBranch),
		},
		gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create merge request: %w", err)
	}

	return &entities.MergeRequest{
		IID:          mr.IID,
		Title:        mr.Title,
		Description:  mr.Description,
		SourceBranch: mr.SourceBranch,
		TargetBranch: mr.TargetBranch,
		WebURL:       mr.WebURL,
		State:        mr.State,
	}, nil
}

// UpdateMergeRequest re-sends the title, description and target branch.
// GitLab does not allow the source branch of an existing merge request to change.
func (p *GitLabRepository) UpdateMergeRequest(
	ctx context.Context,
	projectID string,
	mergeRequestIID int64,
	input entities.MergeRequestInput,
) error {
	_, _, err := p.client.MergeRequests.UpdateMergeRequest(
		projectID,
		mergeRequestIID,
		&gl.UpdateMergeRequestOptions{
			Title:        gl.Ptr(input.Title),
			Description:  gl.Ptr(input.Description),
			TargetBranch: gl.Ptr(input.TargetBranch),
		},
		gl.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to update merge request !%d: %w", mergeRequestIID, err)
	}
	return nil
}

func (p *GitLabRepository) CreateProject(
	ctx context.Context,
	input entities.ProjectInput,
) (*entities.Project, error) {
	opts := &gl.CreateProjectOptions{
		Name:                 gl.Ptr(input.Name),
		InitializeWithReadme: gl.Ptr(input.InitializeWithReadme),
	}
	if input.Path != "" {
		opts.Path = gl.Ptr(input.Path)
	}
	if input.Description != "" {
		opts.Description = gl.Ptr(input.Description)
	}
	if input.Visibility != "" {
		opts.Visibility = gl.Ptr(gl.VisibilityValue(input.Visibility))
	}
	if input.NamespaceID != 0 {
		opts.NamespaceID = gl.Ptr(input.NamespaceID)
	}

	project, _, err := p.client.Projects.CreateProject(opts, gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create project %q: %w", input.Name, err)
	}
	return toProject(project), nil
}

func (p *GitLabRepository) GetProject(ctx context.Context, projectID string) (*entities.Project, error) {
	project, _, err := p.client.Projects.GetProject(projectID, nil, gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get project %q: %w", projectID, err)
	}
	return toProject(project), nil
}

func (p *GitLabRepository) CreateBranch(
	ctx context.Context,
	projectID string,
	input entities.BranchInput,
) (*entities.Branch, error) {
	branch, _, err := p.client.Branches.CreateBranch(projectID, &gl.CreateBranchOptions{
		Branch: gl.Ptr(input.BranchName),
		Ref:    gl.Ptr(input.BaseBranch),
	}, gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}

	result := &entities.Branch{Name: branch.Name, WebURL: branch.WebURL}
	if branch.Commit != nil {
		result.CommitID = branch.Commit.ID
	}
	return result, nil
}

func toProject(project *gl.Project) *entities.Project {
	defaultBranch := "main"
	if project.DefaultBranch != "" {
		defaultBranch = project.DefaultBranch
	}
	return &entities.Project{
		ID:                project.ID,
		Name:              project.Name,
		PathWithNamespace: project.PathWithNamespace,
		DefaultBranch:     defaultBranch,
		HTTPURLToRepo:     project.HTTPURLToRepo,
		WebURL:            project.WebURL,
	}
}
