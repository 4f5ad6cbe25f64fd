package commands

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/repositories"
)

const cloneActionID = "gitlab:repo:clone"

type cloneInput struct {
	RemoteURL  string `yaml:"remoteUrl"`
	Branch     string `yaml:"branch"`
	TargetPath string `yaml:"targetPath"`
	Server     string `yaml:"server"`
	Token      string `yaml:"token"`
}

// CloneCommand implements the gitlab:repo:clone action.
type CloneCommand struct {
	vcsFactory         repositories.VersionControlRepositoryFactory
	credentialsFactory repositories.CredentialsRepositoryFactory
}

// NewCloneCommand creates a new CloneCommand.
func NewCloneCommand(
	vcsFactory repositories.VersionControlRepositoryFactory,
	credentialsFactory repositories.CredentialsRepositoryFactory,
) *CloneCommand {
	return &CloneCommand{
		vcsFactory:         vcsFactory,
		credentialsFactory: credentialsFactory,
	}
}

func (it *CloneCommand) ID() string { return cloneActionID }

func (it *CloneCommand) Description() string {
	return "Clone a GitLab repository into the workspace directory."
}

func (it *CloneCommand) Schema() entities.ActionSchema {
	return entities.ActionSchema{
		Required: []string{"remoteUrl"},
		Input: map[string]entities.ActionProperty{
			"remoteUrl": {
				Title:       "Remote URL",
				Type:        entities.TypeString,
				Description: "The Git URL to the repository.",
			},
			"branch": {
				Title:       "Repository Branch",
				Type:        entities.TypeString,
				Description: "The branch to checkout to.",
			},
			"targetPath": {
				Title:       "Working Subdirectory",
				Type:        entities.TypeString,
				Description: "The subdirectory of the working directory to clone the repository into.",
			},
			"server": {
				Title:       "Server hostname",
				Type:        entities.TypeString,
				Description: "The hostname of the GitLab service.",
			},
			"token": {
				Title:       "Authentication Token",
				Type:        entities.TypeString,
				Description: "The token to use for authorization.",
			},
		},
	}
}

// Execute clones the repository, registers the origin remote and checks out the branch.
func (it *CloneCommand) Execute(ctx context.Context, actionCtx *entities.ActionContext) error {
	var input cloneInput
	if err := decodeInput(it, actionCtx, &input); err != nil {
		return err
	}

	outputDir, err := resolveSafeChildPath(actionCtx.WorkspacePath, orDefault(input.TargetPath, "./"))
	if err != nil {
		return err
	}

	credentials, err := resolveURLCredentials(
		ctx, it.credentialsFactory(actionCtx.Settings), input.RemoteURL, input.Token,
	)
	if err != nil {
		return err
	}

	defaults := actionCtx.Settings.Defaults
	branch := orDefault(input.Branch, defaults.CloneBranch)
	vcs := it.vcsFactory(credentials)

	actionCtx.Logger.Infof("Cloning %s into %s", input.RemoteURL, outputDir)
	if err = vcs.Clone(ctx, input.RemoteURL, outputDir); err != nil {
		return err
	}
	if err = vcs.AddRemote(ctx, outputDir, defaults.Remote, input.RemoteURL); err != nil {
		return err
	}

	actionCtx.Logger.Infof("Checking out %s", branch)
	return vcs.Checkout(ctx, outputDir, branch)
}

// resolveSafeChildPath joins target onto base and rejects results outside base.
func resolveSafeChildPath(base, target string) (string, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", entities.NewInputError("invalid workspace path %q: %v", base, err)
	}

	resolved := filepath.Join(absBase, target)
	if filepath.IsAbs(target) {
		resolved = filepath.Clean(target)
	}

	rel, err := filepath.Rel(absBase, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", entities.NewInputError(
			"relative path %q is not allowed to refer to a directory outside the workspace", target,
		)
	}
	return resolved, nil
}
