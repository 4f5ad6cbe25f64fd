//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/repositories"
)

// StubCredentialsRepository implements repositories.CredentialsRepository
// with a fixed URL -> token table.
type StubCredentialsRepository struct {
	Tokens        map[string]string
	Err           error
	RequestedURLs []string
}

var _ repositories.CredentialsRepository = (*StubCredentialsRepository)(nil)

func (s *StubCredentialsRepository) GetCredentials(
	_ context.Context, url string,
) (*entities.Credentials, error) {
	s.RequestedURLs = append(s.RequestedURLs, url)
	if s.Err != nil {
		return nil, s.Err
	}
	return &entities.Credentials{URL: url, Token: s.Tokens[url]}, nil
}

// Factory is a repositories.CredentialsRepositoryFactory returning the stub.
func (s *StubCredentialsRepository) Factory(_ *entities.Settings) repositories.CredentialsRepository {
	return s
}
