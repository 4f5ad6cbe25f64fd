//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/repositories"
)

// SpyGitLabRepository implements repositories.GitLabRepository as a configurable spy.
// Calls records the method names in invocation order.
type SpyGitLabRepository struct {
	Calls []string

	// --- CreateMergeRequest ---
	CreatedMR        *entities.MergeRequest
	CreateMRErr      error
	CreateProjectIDs []string
	MRInputs         []entities.MergeRequestInput

	// --- UpdateMergeRequest ---
	UpdateMRErr      error
	UpdateProjectIDs []string
	UpdatedIIDs      []int64
	UpdateInputs     []entities.MergeRequestInput

	// --- CreateProject ---
	CreatedProject   *entities.Project
	CreateProjectErr error
	ProjectInputs    []entities.ProjectInput

	// --- GetProject ---
	Project         *entities.Project
	GetProjectErr   error
	FetchedProjects []string

	// --- CreateBranch ---
	CreatedBranch   *entities.Branch
	CreateBranchErr error
	BranchInputs    []entities.BranchInput
}

var _ repositories.GitLabRepository = (*SpyGitLabRepository)(nil)

func (s *SpyGitLabRepository) CreateMergeRequest(
	_ context.Context, projectID string, input entities.MergeRequestInput,
) (*entities.MergeRequest, error) {
	s.Calls = append(s.Calls, "CreateMergeRequest")
	s.CreateProjectIDs = append(s.CreateProjectIDs, projectID)
	s.MRInputs = append(s.MRInputs, input)
	if s.CreateMRErr != nil {
		return nil, s.CreateMRErr
	}
	if s.CreatedMR != nil {
		return s.CreatedMR, nil
	}
	return &entities.MergeRequest{
		IID:          1,
		Title:        input.Title,
		SourceBranch: input.SourceBranch,
		TargetBranch: input.TargetBranch,
	}, nil
}

func (s *SpyGitLabRepository) UpdateMergeRequest(
	_ context.Context, projectID string, mergeRequestIID int64, input entities.MergeRequestInput,
) error {
	s.Calls = append(s.Calls, "UpdateMergeRequest")
	s.UpdateProjectIDs = append(s.UpdateProjectIDs, projectID)
	s.UpdatedIIDs = append(s.UpdatedIIDs, mergeRequestIID)
	s.UpdateInputs = append(s.UpdateInputs, input)
	return s.UpdateMRErr
}

func (s *SpyGitLabRepository) CreateProject(
	_ context.Context, input entities.ProjectInput,
) (*entities.Project, error) {
	s.Calls = append(s.Calls, "CreateProject")
	s.ProjectInputs = append(s.ProjectInputs, input)
	if s.CreateProjectErr != nil {
		return nil, s.CreateProjectErr
	}
	if s.CreatedProject != nil {
		return s.CreatedProject, nil
	}
	return &entities.Project{ID: 1, Name: input.Name, DefaultBranch: "main"}, nil
}

func (s *SpyGitLabRepository) GetProject(
	_ context.Context, projectID string,
) (*entities.Project, error) {
	s.Calls = append(s.Calls, "GetProject")
	s.FetchedProjects = append(s.FetchedProjects, projectID)
	if s.GetProjectErr != nil {
		return nil, s.GetProjectErr
	}
	if s.Project != nil {
		return s.Project, nil
	}
	return &entities.Project{ID: 1, DefaultBranch: "main"}, nil
}

func (s *SpyGitLabRepository) CreateBranch(
	_ context.Context, _ string, input entities.BranchInput,
) (*entities.Branch, error) {
	s.Calls = append(s.Calls, "CreateBranch")
	s.BranchInputs = append(s.BranchInputs, input)
	if s.CreateBranchErr != nil {
		return nil, s.CreateBranchErr
	}
	if s.CreatedBranch != nil {
		return s.CreatedBranch, nil
	}
	return &entities.Branch{Name: input.BranchName, CommitID: "abc123"}, nil
}

// GitLabFactorySpy returns the given spy from every factory call and records
// the host and token it was built with.
type GitLabFactorySpy struct {
	Repository repositories.GitLabRepository
	FactoryErr error
	Hosts      []string
	Tokens     []string
}

// Factory is a repositories.GitLabRepositoryFactory backed by the spy.
func (f *GitLabFactorySpy) Factory(host, token string) (repositories.GitLabRepository, error) {
	f.Hosts = append(f.Hosts, host)
	f.Tokens = append(f.Tokens, token)
	if f.FactoryErr != nil {
		return nil, f.FactoryErr
	}
	return f.Repository, nil
}
