package gogit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/repositories"
)

// tokenUsername is the HTTP basic-auth user GitLab expects alongside an access token.
const tokenUsername = "oauth2"

// VersionControlRepository implements repositories.VersionControlRepository with go-git.
type VersionControlRepository struct {
	auth transport.AuthMethod
}

// NewVersionControlRepository creates a go-git client. When the credentials
// carry a token it is sent as HTTP basic auth on clone and push.
func NewVersionControlRepository(credentials *entities.Credentials) repositories.VersionControlRepository {
	it := &VersionControlRepository{}
	if credentials.HasToken() {
		it.auth = &http.BasicAuth{
			Username: tokenUsername,
			Password: credentials.Token,
		}
	}
	return it
}

func (it *VersionControlRepository) Clone(ctx context.Context, url, dir string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:  url,
		Auth: it.auth,
	})
	if err != nil {
		return fmt.Errorf("error cloning git repository %q: %w", url, err)
	}
	return nil
}

// AddRemote registers a remote. An existing remote with the same name is left as is.
func (it *VersionControlRepository) AddRemote(_ context.Context, dir, remote, url string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository %q: %w", dir, err)
	}

	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: remote,
		URLs: []string{url},
	})
	if errors.Is(err, git.ErrRemoteExists) {
		logger.Debugf("Remote %q already exists in %s", remote, dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to add remote %q: %w", remote, err)
	}
	return nil
}

// Checkout switches the worktree to ref. A branch that only exists on a
// remote is created locally from it; anything else is resolved as a revision
// and checked out detached.
func (it *VersionControlRepository) Checkout(_ context.Context, dir, ref string) error {
	repo, worktree, err := open(dir)
	if err != nil {
		return err
	}

	branchRef := plumbing.NewBranchReferenceName(ref)
	if _, refErr := repo.Reference(branchRef, true); refErr == nil {
		return checkout(worktree, ref, &git.CheckoutOptions{Branch: branchRef})
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return fmt.Errorf("cannot list remotes in %q: %w", dir, err)
	}
	for _, remote := range remotes {
		remoteRef, refErr := repo.Reference(
			plumbing.NewRemoteReferenceName(remote.Config().Name, ref), true,
		)
		if refErr != nil {
			continue
		}
		return checkout(worktree, ref, &git.CheckoutOptions{
			Hash:   remoteRef.Hash(),
			Branch: branchRef,
			Create: true,
		})
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return fmt.Errorf("cannot resolve ref %q: %w", ref, err)
	}
	return checkout(worktree, ref, &git.CheckoutOptions{Hash: *hash})
}

// Add stages path. The path "." stages every change in the worktree, deletions included.
func (it *VersionControlRepository) Add(_ context.Context, dir, path string) error {
	_, worktree, err := open(dir)
	if err != nil {
		return err
	}

	if path == "." {
		err = worktree.AddWithOptions(&git.AddOptions{All: true})
	} else {
		_, err = worktree.Add(path)
	}
	if err != nil {
		return fmt.Errorf("failed to stage %q: %w", path, err)
	}
	return nil
}

func (it *VersionControlRepository) Commit(
	_ context.Context,
	dir, message string,
	author, committer entities.Signature,
) (string, error) {
	_, worktree, err := open(dir)
	if err != nil {
		return "", err
	}

	now := time.Now()
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author:    &object.Signature{Name: author.Name, Email: author.Email, When: now},
		Committer: &object.Signature{Name: committer.Name, Email: committer.Email, When: now},
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return hash.String(), nil
}

// Push sends HEAD to remoteRef on the given remote.
func (it *VersionControlRepository) Push(ctx context.Context, dir, remote, remoteRef string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("failed to open repository %q: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("cannot resolve HEAD in %q: %w", dir, err)
	}

	source := head.Hash().String()
	if head.Name().IsBranch() {
		source = head.Name().String()
	}
	refSpec := config.RefSpec(fmt.Sprintf("%s:%s", source, remoteRef))
	if err = refSpec.Validate(); err != nil {
		return fmt.Errorf("invalid push ref %q: %w", remoteRef, err)
	}

	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{refSpec},
		Auth:       it.auth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		logger.Debugf("Remote %q is already up to date with %s", remote, remoteRef)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to push to %s %s: %w", remote, remoteRef, err)
	}
	return nil
}

func open(dir string) (*git.Repository, *git.Worktree, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open repository %q: %w", dir, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open worktree of %q: %w", dir, err)
	}
	return repo, worktree, nil
}

func checkout(worktree *git.Worktree, ref string, opts *git.CheckoutOptions) error {
	if err := worktree.Checkout(opts); err != nil {
		return fmt.Errorf("failed to checkout %q: %w", ref, err)
	}
	return nil
}
