//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
)

//nolint:tparallel // some subtests use t.Setenv which is incompatible with t.Parallel on parent
func TestResolveToken(t *testing.T) {
	t.Run("should return an inline token unchanged", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "glpat-abc123"

		// when
		result := entities.ResolveToken(raw)

		// then
		assert.Equal(t, "glpat-abc123", result)
	})

	t.Run("should expand an environment variable reference", func(t *testing.T) {
		// NOTE: cannot use t.Parallel() with t.Setenv()

		// given
		t.Setenv("SCAFFOLDER_TEST_TOKEN", "from-env")

		// when
		result := entities.ResolveToken("${SCAFFOLDER_TEST_TOKEN}")

		// then
		assert.Equal(t, "from-env", result)
	})

	t.Run("should return empty for an unset environment variable", func(t *testing.T) {
		t.Parallel()

		// given
		raw := "${SCAFFOLDER_DEFINITELY_UNSET_12345}"

		// when
		result := entities.ResolveToken(raw)

		// then
		assert.Empty(t, result)
	})

	t.Run("should read the token from a file path", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(path, []byte("  file-token\n"), 0o600))

		// when
		result := entities.ResolveToken(path)

		// then
		assert.Equal(t, "file-token", result)
	})
}

func TestNewSettings(t *testing.T) {
	t.Parallel()

	t.Run("should parse integrations and keep configured defaults", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "scaffolder.yaml")
		content := `integrations:
  gitlab:
    - host: gitlab.example.com
      token: glpat-example
defaults:
  host: gitlab.example.com
  source_branch: bot
  author:
    name: Bot
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.GitLabIntegration{
			{Host: "gitlab.example.com", Token: "glpat-example"},
		}, settings.Integrations.GitLab)
		assert.Equal(t, entities.Defaults{
			Host:         "gitlab.example.com",
			SourceBranch: "bot",
			TargetBranch: "main",
			CloneBranch:  "main",
			Remote:       "origin",
			Author:       entities.Signature{Name: "Bot", Email: "scaffolder@backstage.io"},
		}, settings.Defaults)
	})

	t.Run("should reject an integration without host", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "scaffolder.yaml")
		require.NoError(t, os.WriteFile(path, []byte("integrations:\n  gitlab:\n    - token: x\n"), 0o600))

		// when
		settings, err := entities.NewSettings(path)

		// then
		assert.Nil(t, settings)
		require.EqualError(t, err, "integrations.gitlab[0].host is required")
	})

	t.Run("should reject a host with a path", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "scaffolder.yaml")
		content := "integrations:\n  gitlab:\n    - host: gitlab.com/acme\n      token: x\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bare hostname")
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "missing.yaml")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
	})
}

//nolint:paralleltest // uses t.Setenv
func TestSettingsAddEnvironmentIntegration(t *testing.T) {
	t.Run("should add gitlab.com from GITLAB_TOKEN", func(t *testing.T) {
		// given
		t.Setenv("GITLAB_TOKEN", "env-token")
		t.Setenv("GL_TOKEN", "")
		settings := entities.NewDefaultSettings()

		// when
		settings.AddEnvironmentIntegration()

		// then
		assert.Equal(t, []entities.GitLabIntegration{
			{Host: "gitlab.com", Token: "env-token"},
		}, settings.Integrations.GitLab)
	})

	t.Run("should fall back to GL_TOKEN", func(t *testing.T) {
		// given
		t.Setenv("GITLAB_TOKEN", "")
		t.Setenv("GL_TOKEN", "gl-token")
		settings := entities.NewDefaultSettings()

		// when
		settings.AddEnvironmentIntegration()

		// then
		require.Len(t, settings.Integrations.GitLab, 1)
		assert.Equal(t, "gl-token", settings.Integrations.GitLab[0].Token)
	})

	t.Run("should keep a configured gitlab.com integration", func(t *testing.T) {
		// given
		t.Setenv("GITLAB_TOKEN", "env-token")
		settings := entities.NewDefaultSettings()
		settings.Integrations.GitLab = []entities.GitLabIntegration{{Host: "GitLab.com", Token: "configured"}}

		// when
		settings.AddEnvironmentIntegration()

		// then
		assert.Equal(t, []entities.GitLabIntegration{
			{Host: "GitLab.com", Token: "configured"},
		}, settings.Integrations.GitLab)
	})
}
