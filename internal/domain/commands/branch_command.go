package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/repositories"
)

const branchActionID = "gitlab:branch:create"

type branchInput struct {
	RepoID       string `yaml:"repoId"`
	Branch       string `yaml:"branch"`
	Ref          string `yaml:"ref"`
	Server       string `yaml:"server"`
	Organization string `yaml:"organization"`
	Token        string `yaml:"token"`
}

// BranchCommand implements the gitlab:branch:create action.
type BranchCommand struct {
	gitlabFactory      repositories.GitLabRepositoryFactory
	credentialsFactory repositories.CredentialsRepositoryFactory
}

// NewBranchCommand creates a new BranchCommand.
func NewBranchCommand(
	gitlabFactory repositories.GitLabRepositoryFactory,
	credentialsFactory repositories.CredentialsRepositoryFactory,
) *BranchCommand {
	return &BranchCommand{
		gitlabFactory:      gitlabFactory,
		credentialsFactory: credentialsFactory,
	}
}

func (it *BranchCommand) ID() string { return branchActionID }

func (it *BranchCommand) Description() string {
	return "Create a branch in a GitLab repository."
}

func (it *BranchCommand) Schema() entities.ActionSchema {
	return entities.ActionSchema{
		Required: []string{"repoId", "branch"},
		Input: map[string]entities.ActionProperty{
			"repoId": {
				Title:       "Remote Repo ID",
				Type:        entities.TypeString,
				Description: "ID or path of the project.",
			},
			"branch": {Title: "Branch", Type: entities.TypeString, Description: "The name of the new branch."},
			"ref": {
				Title:       "Ref",
				Type:        entities.TypeString,
				Description: "Branch, tag or commit to start from. Defaults to the project's default branch.",
			},
			"server": {
				Title:       "Server hostname",
				Type:        entities.TypeString,
				Description: "The hostname of the GitLab service. Defaults to gitlab.com.",
			},
			"organization": {
				Title:       "Organization Name",
				Type:        entities.TypeString,
				Description: "The name of the organization in GitLab.",
			},
			"token": {
				Title:       "Authentication Token",
				Type:        entities.TypeString,
				Description: "The token to use for authorization.",
			},
		},
		Output: map[string]entities.ActionProperty{
			"branch":   {Title: "The created branch", Type: entities.TypeString},
			"commitId": {Title: "The commit the branch points to", Type: entities.TypeString},
		},
	}
}

// Execute creates the branch, looking up the project's default branch when no ref is given.
func (it *BranchCommand) Execute(ctx context.Context, actionCtx *entities.ActionContext) error {
	var input branchInput
	if err := decodeInput(it, actionCtx, &input); err != nil {
		return err
	}

	target, err := resolveTarget(ctx, it.credentialsFactory(actionCtx.Settings), targetInput{
		Server:       input.Server,
		Organization: input.Organization,
		Token:        input.Token,
	}, actionCtx.Settings.Defaults)
	if err != nil {
		return err
	}

	client, err := it.gitlabFactory(target.Host, target.Token)
	if err != nil {
		return fmt.Errorf("failed to create GitLab client for %s: %w", target.Host, err)
	}

	ref := input.Ref
	if ref == "" {
		project, getErr := client.GetProject(ctx, input.RepoID)
		if getErr != nil {
			return getErr
		}
		ref = project.DefaultBranch
		actionCtx.Logger.Debugf("Using default branch %q of %s", ref, project.PathWithNamespace)
	}

	branch, err := client.CreateBranch(ctx, input.RepoID, entities.BranchInput{
		BranchName: input.Branch,
		BaseBranch: ref,
	})
	if err != nil {
		return err
	}

	actionCtx.Logger.Infof("Created branch %s from %s", branch.Name, ref)
	actionCtx.Output("branch", branch.Name)
	actionCtx.Output("commitId", branch.CommitID)
	return nil
}
