package repositories

import (
	"context"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
)

// CredentialsRepository looks up the token registered for a URL.
// A lookup that finds nothing returns credentials without a token, not an error.
type CredentialsRepository interface {
	GetCredentials(ctx context.Context, url string) (*entities.Credentials, error)
}

// CredentialsRepositoryFactory builds a CredentialsRepository from the loaded settings.
type CredentialsRepositoryFactory func(settings *entities.Settings) CredentialsRepository
