//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/repositories"
)

// SpyVersionControlRepository implements repositories.VersionControlRepository as a spy.
// Calls records "<method> <args>" entries in invocation order.
type SpyVersionControlRepository struct {
	Calls []string

	CloneErr     error
	AddRemoteErr error
	CheckoutErr  error
	AddErr       error
	CommitErr    error
	PushErr      error

	CommitHash string
	Authors    []entities.Signature
	Committers []entities.Signature

	// Credentials received by the factory
	Credentials []*entities.Credentials
}

var _ repositories.VersionControlRepository = (*SpyVersionControlRepository)(nil)

func (s *SpyVersionControlRepository) Clone(_ context.Context, url, dir string) error {
	s.Calls = append(s.Calls, "Clone "+url+" "+dir)
	return s.CloneErr
}

func (s *SpyVersionControlRepository) AddRemote(_ context.Context, dir, remote, url string) error {
	s.Calls = append(s.Calls, "AddRemote "+dir+" "+remote+" "+url)
	return s.AddRemoteErr
}

func (s *SpyVersionControlRepository) Checkout(_ context.Context, dir, ref string) error {
	s.Calls = append(s.Calls, "Checkout "+dir+" "+ref)
	return s.CheckoutErr
}

func (s *SpyVersionControlRepository) Add(_ context.Context, dir, path string) error {
	s.Calls = append(s.Calls, "Add "+dir+" "+path)
	return s.AddErr
}

func (s *SpyVersionControlRepository) Commit(
	_ context.Context, dir, message string, author, committer entities.Signature,
) (string, error) {
	s.Calls = append(s.Calls, "Commit "+dir+" "+message)
	s.Authors = append(s.Authors, author)
	s.Committers = append(s.Committers, committer)
	if s.CommitErr != nil {
		return "", s.CommitErr
	}
	return s.CommitHash, nil
}

func (s *SpyVersionControlRepository) Push(_ context.Context, dir, remote, remoteRef string) error {
	s.Calls = append(s.Calls, "Push "+dir+" "+remote+" "+remoteRef)
	return s.PushErr
}

// Factory is a repositories.VersionControlRepositoryFactory returning the spy.
func (s *SpyVersionControlRepository) Factory(
	credentials *entities.Credentials,
) repositories.VersionControlRepository {
	s.Credentials = append(s.Credentials, credentials)
	return s
}
