package repositories

import (
	"context"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
)

// VersionControlRepository is the local Git client used by the clone and push actions.
// Every method operates on the working copy located at dir.
type VersionControlRepository interface {
	Clone(ctx context.Context, url, dir string) error
	AddRemote(ctx context.Context, dir, remote, url string) error
	Checkout(ctx context.Context, dir, ref string) error
	Add(ctx context.Context, dir, path string) error
	Commit(ctx context.Context, dir, message string, author, committer entities.Signature) (string, error)
	Push(ctx context.Context, dir, remote, remoteRef string) error
}

// VersionControlRepositoryFactory builds a client authenticating with the given
// credentials. Nil credentials mean anonymous access.
type VersionControlRepositoryFactory func(credentials *entities.Credentials) VersionControlRepository
