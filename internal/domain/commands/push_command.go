package commands

import (
	"context"
	"errors"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/repositories"
)

const (
	pushActionID     = "gitlab:repo:push"
	commitHashOutput = "commitHash"
)

type pushInput struct {
	SourcePath     string `yaml:"sourcePath"`
	Branch         string `yaml:"branch"`
	Remote         string `yaml:"remote"`
	CommitMessage  string `yaml:"commitMessage"`
	GitAuthorName  string `yaml:"gitAuthorName"`
	GitAuthorEmail string `yaml:"gitAuthorEmail"`
	Server         string `yaml:"server"`
	Organization   string `yaml:"organization"`
	Token          string `yaml:"token"`
}

// PushCommand implements the gitlab:repo:push action.
type PushCommand struct {
	vcsFactory         repositories.VersionControlRepositoryFactory
	credentialsFactory repositories.CredentialsRepositoryFactory
}

// NewPushCommand creates a new PushCommand.
func NewPushCommand(
	vcsFactory repositories.VersionControlRepositoryFactory,
	credentialsFactory repositories.CredentialsRepositoryFactory,
) *PushCommand {
	return &PushCommand{
		vcsFactory:         vcsFactory,
		credentialsFactory: credentialsFactory,
	}
}

func (it *PushCommand) ID() string { return pushActionID }

func (it *PushCommand) Description() string {
	return "Commit the workspace changes and push them to a branch in GitLab."
}

func (it *PushCommand) Schema() entities.ActionSchema {
	return entities.ActionSchema{
		Required: []string{"commitMessage"},
		Input: map[string]entities.ActionProperty{
			"sourcePath": {
				Title:       "Working Subdirectory",
				Type:        entities.TypeString,
				Description: "The subdirectory of the working directory holding the repository.",
			},
			"branch": {
				Title:       "Branch",
				Type:        entities.TypeString,
				Description: "The branch to push to (default: scaffolder).",
			},
			"remote": {
				Title:       "Remote",
				Type:        entities.TypeString,
				Description: "The remote to push to (default: origin).",
			},
			"commitMessage": {
				Title:       "Commit Message",
				Type:        entities.TypeString,
				Description: "The commit message.",
			},
			"gitAuthorName": {
				Title:       "Author Name",
				Type:        entities.TypeString,
				Description: "The name used as commit author and committer.",
			},
			"gitAuthorEmail": {
				Title:       "Author Email",
				Type:        entities.TypeString,
				Description: "The email used as commit author and committer.",
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
			commitHashOutput: {
				Title: "The hash of the pushed commit",
				Type:  entities.TypeString,
			},
		},
	}
}

// Execute stages everything under the source path, commits it and pushes the
// commit to refs/heads/<branch>. Without any resolvable token the push is
// attempted anonymously.
func (it *PushCommand) Execute(ctx context.Context, actionCtx *entities.ActionContext) error {
	var input pushInput
	if err := decodeInput(it, actionCtx, &input); err != nil {
		return err
	}

	dir, err := resolveSafeChildPath(actionCtx.WorkspacePath, orDefault(input.SourcePath, "./"))
	if err != nil {
		return err
	}

	defaults := actionCtx.Settings.Defaults
	var credentials *entities.Credentials
	target, err := resolveTarget(ctx, it.credentialsFactory(actionCtx.Settings), targetInput{
		Server:       input.Server,
		Organization: input.Organization,
		Token:        input.Token,
	}, defaults)
	var inputErr *entities.InputError
	switch {
	case err == nil:
		credentials = &entities.Credentials{URL: "https://" + target.Host, Token: target.Token}
	case errors.As(err, &inputErr):
		actionCtx.Logger.Debugf("Pushing without credentials: %v", err)
	default:
		return err
	}

	author := entities.Signature{
		Name:  orDefault(input.GitAuthorName, defaults.Author.Name),
		Email: orDefault(input.GitAuthorEmail, defaults.Author.Email),
	}
	remoteRef := entities.BranchRef(orDefault(input.Branch, defaults.SourceBranch))
	vcs := it.vcsFactory(credentials)

	if err = vcs.Add(ctx, dir, "."); err != nil {
		return err
	}
	hash, err := vcs.Commit(ctx, dir, input.CommitMessage, author, author)
	if err != nil {
		return err
	}

	actionCtx.Logger.Infof("Pushing commit %s to %s", hash, remoteRef)
	if err = vcs.Push(ctx, dir, orDefault(input.Remote, defaults.Remote), remoteRef); err != nil {
		return err
	}

	actionCtx.Output(commitHashOutput, hash)
	return nil
}
