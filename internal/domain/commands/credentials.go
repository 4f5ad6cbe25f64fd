package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/repositories"
)

// credentialProvider is one source of a bearer token. An empty token means
// the source has nothing to offer and the next one is tried.
type credentialProvider interface {
	token(ctx context.Context) (string, error)
}

// explicitTokenProvider returns the token given in the action input.
type explicitTokenProvider string

func (p explicitTokenProvider) token(_ context.Context) (string, error) {
	return string(p), nil
}

// registryProvider asks the credentials registry for the token bound to url.
type registryProvider struct {
	repository repositories.CredentialsRepository
	url        string
}

func (p registryProvider) token(ctx context.Context) (string, error) {
	credentials, err := p.repository.GetCredentials(ctx, p.url)
	if err != nil {
		return "", fmt.Errorf("failed to look up credentials for %s: %w", p.url, err)
	}
	if !credentials.HasToken() {
		return "", nil
	}
	return credentials.Token, nil
}

// resolveToken walks the providers in order and returns the first non-empty token.
func resolveToken(ctx context.Context, url string, providers ...credentialProvider) (string, error) {
	for _, provider := range providers {
		token, err := provider.token(ctx)
		if err != nil {
			return "", err
		}
		if token != "" {
			return token, nil
		}
	}
	return "", entities.NewCredentialsError(url)
}

// targetInput holds the action fields that select a GitLab host and its token.
type targetInput struct {
	Server       string
	Organization string
	Token        string
}

// resolveTarget determines the host and token for an action. The explicit
// token wins; otherwise the registry is queried with https://<host>/<organization>,
// which requires an organization.
func resolveTarget(
	ctx context.Context,
	registry repositories.CredentialsRepository,
	input targetInput,
	defaults entities.Defaults,
) (*entities.Target, error) {
	host := input.Server
	if host == "" {
		host = defaults.Host
	}
	organization := strings.Trim(input.Organization, "/")
	url := fmt.Sprintf("https://%s/%s", host, organization)

	providers := []credentialProvider{explicitTokenProvider(input.Token)}
	if input.Token == "" {
		if organization == "" {
			return nil, &entities.InputError{
				Message: "organization is required to look up credentials for " + url,
				URL:     url,
			}
		}
		providers = append(providers, registryProvider{repository: registry, url: url})
	}

	token, err := resolveToken(ctx, url, providers...)
	if err != nil {
		return nil, err
	}

	return &entities.Target{Host: host, Token: token}, nil
}

// resolveURLCredentials resolves a token for an arbitrary repository URL,
// such as a clone URL, with the same precedence as resolveTarget.
func resolveURLCredentials(
	ctx context.Context,
	registry repositories.CredentialsRepository,
	url, explicitToken string,
) (*entities.Credentials, error) {
	token, err := resolveToken(
		ctx, url,
		explicitTokenProvider(explicitToken),
		registryProvider{repository: registry, url: url},
	)
	if err != nil {
		return nil, err
	}
	return &entities.Credentials{URL: url, Token: token}, nil
}
