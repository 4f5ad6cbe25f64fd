package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/repositories"
)

const (
	mergeRequestActionID = "gitlab:repo:pr"
	mergeRequestOutput   = "mergeRequestId"
)

// mergeRequestInput is the decoded input of the gitlab:repo:pr action.
type mergeRequestInput struct {
	Organization       string `yaml:"organization"`
	SourceBranch       string `yaml:"sourceBranch"`
	TargetBranch       string `yaml:"targetBranch"`
	Title              string `yaml:"title"`
	Description        string `yaml:"description"`
	RepoID             string `yaml:"repoId"`
	Project            string `yaml:"project"`
	SupportsIterations bool   `yaml:"supportsIterations"`
	Server             string `yaml:"server"`
	Token              string `yaml:"token"`
	AutoComplete       bool   `yaml:"autoComplete"`
}

// projectID returns the project the merge request is opened in. An explicit
// project takes precedence over the repository ID.
func (it mergeRequestInput) projectID() string {
	return orDefault(it.Project, it.RepoID)
}

// MergeRequestCommand implements the gitlab:repo:pr action.
type MergeRequestCommand struct {
	gitlabFactory      repositories.GitLabRepositoryFactory
	credentialsFactory repositories.CredentialsRepositoryFactory
}

// NewMergeRequestCommand creates a new MergeRequestCommand.
func NewMergeRequestCommand(
	gitlabFactory repositories.GitLabRepositoryFactory,
	credentialsFactory repositories.CredentialsRepositoryFactory,
) *MergeRequestCommand {
	return &MergeRequestCommand{
		gitlabFactory:      gitlabFactory,
		credentialsFactory: credentialsFactory,
	}
}

func (it *MergeRequestCommand) ID() string { return mergeRequestActionID }

func (it *MergeRequestCommand) Description() string {
	return "Create a merge request to a repository in GitLab."
}

func (it *MergeRequestCommand) Schema() entities.ActionSchema {
	return entities.ActionSchema{
		Required: []string{"repoId", "title"},
		Input: map[string]entities.ActionProperty{
			"organization": {
				Title:       "Organization Name",
				Type:        entities.TypeString,
				Description: "The name of the organization in GitLab.",
			},
			"sourceBranch": {
				Title:       "Source Branch",
				Type:        entities.TypeString,
				Description: "The branch to merge from (default: scaffolder).",
			},
			"targetBranch": {
				Title:       "Target Branch",
				Type:        entities.TypeString,
				Description: "The branch to merge into (default: main).",
			},
			"title": {
				Title:       "Title",
				Type:        entities.TypeString,
				Description: "The title of the merge request.",
			},
			"description": {
				Title:       "Description",
				Type:        entities.TypeString,
				Description: "The description of the merge request.",
			},
			"repoId": {
				Title:       "Remote Repo ID",
				Type:        entities.TypeString,
				Description: "ID or path of the project the merge request is opened in.",
			},
			"project": {
				Title:       "Project",
				Type:        entities.TypeString,
				Description: "The project in GitLab. Overrides repoId when set.",
			},
			"supportsIterations": {
				Title:       "Supports Iterations",
				Type:        entities.TypeBoolean,
				Description: "Whether or not the MR supports iterations.",
			},
			"server": {
				Title:       "Server hostname",
				Type:        entities.TypeString,
				Description: "The hostname of the GitLab service. Defaults to gitlab.com.",
			},
			"token": {
				Title:       "Authentication Token",
				Type:        entities.TypeString,
				Description: "The token to use for authorization.",
			},
			"autoComplete": {
				Title:       "Enable auto-completion",
				Type:        entities.TypeBoolean,
				Description: "Enable auto-completion of the merge request once policies are met.",
			},
		},
		Output: map[string]entities.ActionProperty{
			mergeRequestOutput: {
				Title: "The ID of the created merge request",
				Type:  entities.TypeNumber,
			},
		},
	}
}

// Execute resolves the target, opens the merge request and reports its IID.
func (it *MergeRequestCommand) Execute(ctx context.Context, actionCtx *entities.ActionContext) error {
	var input mergeRequestInput
	if err := decodeInput(it, actionCtx, &input); err != nil {
		return err
	}

	defaults := actionCtx.Settings.Defaults
	target, err := resolveTarget(ctx, it.credentialsFactory(actionCtx.Settings), targetInput{
		Server:       input.Server,
		Organization: input.Organization,
		Token:        input.Token,
	}, defaults)
	if err != nil {
		return err
	}

	client, err := it.gitlabFactory(target.Host, target.Token)
	if err != nil {
		return fmt.Errorf("failed to create GitLab client for %s: %w", target.Host, err)
	}

	request := entities.MergeRequestInput{
		SourceBranch: entities.BranchRef(orDefault(input.SourceBranch, defaults.SourceBranch)),
		TargetBranch: entities.BranchRef(orDefault(input.TargetBranch, defaults.TargetBranch)),
		Title:        input.Title,
		Description:  input.Description,
		AutoComplete: input.AutoComplete,
	}

	actionCtx.Logger.Infof(
		"Creating merge request %q in %s (%s -> %s)",
		request.Title, input.projectID(), request.SourceBranch, request.TargetBranch,
	)

	iid, err := openMergeRequest(ctx, client, input.projectID(), request)
	if err != nil {
		return err
	}

	actionCtx.Logger.Infof("Merge request !%d is ready", iid)
	actionCtx.Output(mergeRequestOutput, iid)
	return nil
}

// openMergeRequest creates the merge request and, when auto-completion is
// requested, edits it right after with the IID GitLab assigned. The setting
// is not accepted at creation time. There is no rollback: a failed edit
// leaves the created merge request in place and its error is returned.
func openMergeRequest(
	ctx context.Context,
	client repositories.GitLabRepository,
	projectID string,
	request entities.MergeRequestInput,
) (int64, error) {
	created, err := client.CreateMergeRequest(ctx, projectID, request)
	if err != nil {
		return 0, err
	}

	if request.AutoComplete {
		if err = client.UpdateMergeRequest(ctx, projectID, created.IID, request); err != nil {
			return 0, err
		}
	}

	return created.IID, nil
}
