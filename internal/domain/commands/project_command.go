package commands

import (
	"context"
	"fmt"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/repositories"
)

const projectActionID = "gitlab:repo:create"

type projectInput struct {
	Name                 string `yaml:"name"`
	Path                 string `yaml:"path"`
	Description          string `yaml:"description"`
	Visibility           string `yaml:"visibility"`
	NamespaceID          int64  `yaml:"namespaceId"`
	InitializeWithReadme bool   `yaml:"initializeWithReadme"`
	Server               string `yaml:"server"`
	Organization         string `yaml:"organization"`
	Token                string `yaml:"token"`
}

// ProjectCommand implements the gitlab:repo:create action.
type ProjectCommand struct {
	gitlabFactory      repositories.GitLabRepositoryFactory
	credentialsFactory repositories.CredentialsRepositoryFactory
}

// NewProjectCommand creates a new ProjectCommand.
func NewProjectCommand(
	gitlabFactory repositories.GitLabRepositoryFactory,
	credentialsFactory repositories.CredentialsRepositoryFactory,
) *ProjectCommand {
	return &ProjectCommand{
		gitlabFactory:      gitlabFactory,
		credentialsFactory: credentialsFactory,
	}
}

func (it *ProjectCommand) ID() string { return projectActionID }

func (it *ProjectCommand) Description() string {
	return "Create a project in GitLab."
}

func (it *ProjectCommand) Schema() entities.ActionSchema {
	return entities.ActionSchema{
		Required: []string{"name"},
		Input: map[string]entities.ActionProperty{
			"name":        {Title: "Name", Type: entities.TypeString, Description: "The name of the project."},
			"path":        {Title: "Path", Type: entities.TypeString, Description: "The URL path of the project."},
			"description": {Title: "Description", Type: entities.TypeString, Description: "The project description."},
			"visibility": {
				Title:       "Visibility",
				Type:        entities.TypeString,
				Description: "One of private, internal or public.",
			},
			"namespaceId": {
				Title:       "Namespace ID",
				Type:        entities.TypeNumber,
				Description: "The group to create the project in. Defaults to the token owner's namespace.",
			},
			"initializeWithReadme": {
				Title:       "Initialize with README",
				Type:        entities.TypeBoolean,
				Description: "Create an initial commit with a README.",
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
			"projectId": {Title: "The ID of the created project", Type: entities.TypeNumber},
			"remoteUrl": {Title: "The HTTP clone URL", Type: entities.TypeString},
			"webUrl":    {Title: "The project page", Type: entities.TypeString},
		},
	}
}

// Execute creates the project and reports its ID and URLs.
func (it *ProjectCommand) Execute(ctx context.Context, actionCtx *entities.ActionContext) error {
	var input projectInput
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

	project, err := client.CreateProject(ctx, entities.ProjectInput{
		Name:                 input.Name,
		Path:                 input.Path,
		Description:          input.Description,
		Visibility:           input.Visibility,
		NamespaceID:          input.NamespaceID,
		InitializeWithReadme: input.InitializeWithReadme,
	})
	if err != nil {
		return err
	}

	actionCtx.Logger.Infof("Created project %s (%d)", project.PathWithNamespace, project.ID)
	actionCtx.Output("projectId", project.ID)
	actionCtx.Output("remoteUrl", project.HTTPURLToRepo)
	actionCtx.Output("webUrl", project.WebURL)
	return nil
}
