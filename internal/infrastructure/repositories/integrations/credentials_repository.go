package integrations

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/repositories"
)

// CredentialsRepository resolves tokens from the GitLab integrations declared
// in the settings file, matching on the host of the requested URL.
type CredentialsRepository struct {
	integrations []entities.GitLabIntegration
}

// NewCredentialsRepository creates a registry over the configured integrations.
func NewCredentialsRepository(settings *entities.Settings) repositories.CredentialsRepository {
	var integrations []entities.GitLabIntegration
	if settings != nil {
		integrations = settings.Integrations.GitLab
	}
	return &CredentialsRepository{integrations: integrations}
}

// GetCredentials returns the token of the integration whose host matches the
// URL. A URL with no matching integration yields credentials without a token.
func (it *CredentialsRepository) GetCredentials(
	_ context.Context,
	rawURL string,
) (*entities.Credentials, error) {
	host, err := hostOf(rawURL)
	if err != nil {
		return nil, err
	}

	credentials := &entities.Credentials{URL: rawURL}
	for _, integration := range it.integrations {
		if strings.EqualFold(integration.Host, host) {
			credentials.Token = integration.Token
			break
		}
	}
	return credentials, nil
}

// hostOf extracts host[:port] from an HTTP(S) URL or an scp-like SSH address
// such as git@gitlab.com:group/repo.git.
func hostOf(rawURL string) (string, error) {
	if !strings.Contains(rawURL, "://") {
		if at := strings.Index(rawURL, "@"); at >= 0 {
			if host, _, ok := strings.Cut(rawURL[at+1:], ":"); ok && host != "" {
				return host, nil
			}
		}
		return "", fmt.Errorf("unsupported repository URL %q", rawURL)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid repository URL %q: %w", rawURL, err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("repository URL %q has no host", rawURL)
	}
	return parsed.Host, nil
}
