package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/gitlab-scaffolder/internal/domain/repositories"
	glRepo "github.com/rios0rios0/gitlab-scaffolder/internal/infrastructure/repositories/gitlab"
	gogitRepo "github.com/rios0rios0/gitlab-scaffolder/internal/infrastructure/repositories/gogit"
	intRepo "github.com/rios0rios0/gitlab-scaffolder/internal/infrastructure/repositories/integrations"
)

// RegisterProviders registers all repository factories with the DIG container.
// Factories rather than instances are provided: every action invocation builds
// its own clients from the credentials it resolved.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() domainRepos.GitLabRepositoryFactory {
		return glRepo.NewGitLabRepository
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.VersionControlRepositoryFactory {
		return gogitRepo.NewVersionControlRepository
	}); err != nil {
		return err
	}

	if err := container.Provide(func() domainRepos.CredentialsRepositoryFactory {
		return intRepo.NewCredentialsRepository
	}); err != nil {
		return err
	}

	return nil
}
