//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/commands"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
	doubles "github.com/rios0rios0/gitlab-scaffolder/test/infrastructure/repositorydoubles"
	builders "github.com/rios0rios0/gitlab-scaffolder/test/domain/entitybuilders"
)

type mergeRequestFixture struct {
	gitlab      *doubles.SpyGitLabRepository
	factory     *doubles.GitLabFactorySpy
	credentials *doubles.StubCredentialsRepository
	command     *commands.MergeRequestCommand
}

func newMergeRequestFixture() *mergeRequestFixture {
	gitlab := &doubles.SpyGitLabRepository{
		CreatedMR: &entities.MergeRequest{IID: 7, Title: "Add feature"},
	}
	factory := &doubles.GitLabFactorySpy{Repository: gitlab}
	credentials := &doubles.StubCredentialsRepository{Tokens: map[string]string{}}
	return &mergeRequestFixture{
		gitlab:      gitlab,
		factory:     factory,
		credentials: credentials,
		command:     commands.NewMergeRequestCommand(factory.Factory, credentials.Factory),
	}
}

func mergeRequestContext() *builders.ActionContextBuilder {
	return builders.NewActionContextBuilder().
		WithActionID("gitlab:repo:pr").
		WithInput("title", "Add feature").
		WithInput("repoId", "42")
}

func TestMergeRequestCommandCredentials(t *testing.T) {
	t.Parallel()

	t.Run("should prefer the explicit token over the registry token", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		fixture.credentials.Tokens["https://gitlab.com/my-org"] = "registry-token"
		actionCtx := mergeRequestContext().
			WithInput("organization", "my-org").
			WithInput("token", "explicit-token").
			BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"explicit-token"}, fixture.factory.Tokens)
		assert.Empty(t, fixture.credentials.RequestedURLs)
	})

	t.Run("should use the registry token for https://<server>/<organization>", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		fixture.credentials.Tokens["https://gitlab.example.com/platform"] = "registry-token"
		actionCtx := mergeRequestContext().
			WithInput("organization", "platform").
			WithInput("server", "gitlab.example.com").
			BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"https://gitlab.example.com/platform"}, fixture.credentials.RequestedURLs)
		assert.Equal(t, []string{"gitlab.example.com"}, fixture.factory.Hosts)
		assert.Equal(t, []string{"registry-token"}, fixture.factory.Tokens)
	})

	t.Run("should default the server to gitlab.com", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		actionCtx := mergeRequestContext().WithInput("token", "tok").BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"gitlab.com"}, fixture.factory.Hosts)
	})

	t.Run("should fail with an input error naming the URL when no token is found", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		actionCtx := mergeRequestContext().WithInput("organization", "my-org").BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		var inputErr *entities.InputError
		require.ErrorAs(t, err, &inputErr)
		assert.Equal(t, "https://gitlab.com/my-org", inputErr.URL)
		assert.Contains(t, err.Error(), "https://gitlab.com/my-org")
		assert.Empty(t, fixture.factory.Hosts)
		assert.Empty(t, fixture.gitlab.Calls)
		assert.Empty(t, actionCtx.Outputs())
	})

	t.Run("should reject a registry lookup without organization", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		actionCtx := mergeRequestContext().BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		var inputErr *entities.InputError
		require.ErrorAs(t, err, &inputErr)
		assert.Contains(t, err.Error(), "organization is required")
		assert.Empty(t, fixture.credentials.RequestedURLs)
		assert.Empty(t, fixture.gitlab.Calls)
	})

	t.Run("should propagate a registry failure", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		registryErr := errors.New("registry unavailable")
		fixture.credentials.Err = registryErr
		actionCtx := mergeRequestContext().WithInput("organization", "my-org").BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.ErrorIs(t, err, registryErr)
		assert.Empty(t, fixture.gitlab.Calls)
	})
}

func TestMergeRequestCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should create once and report the IID when auto-complete is omitted", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		actionCtx := mergeRequestContext().WithInput("token", "tok").BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"CreateMergeRequest"}, fixture.gitlab.Calls)
		assert.Equal(t, []string{"42"}, fixture.gitlab.CreateProjectIDs)
		assert.Equal(t, map[string]any{"mergeRequestId": int64(7)}, actionCtx.Outputs())
	})

	t.Run("should create then update with the created IID when auto-complete is true", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		actionCtx := mergeRequestContext().
			WithInput("token", "tok").
			WithInput("autoComplete", true).
			WithInput("description", "Adds the feature").
			BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"CreateMergeRequest", "UpdateMergeRequest"}, fixture.gitlab.Calls)
		assert.Equal(t, []int64{7}, fixture.gitlab.UpdatedIIDs)
		assert.Equal(t, []string{"42"}, fixture.gitlab.UpdateProjectIDs)
		assert.Equal(t, fixture.gitlab.MRInputs, fixture.gitlab.UpdateInputs)
		assert.Equal(t, int64(7), actionCtx.Outputs()["mergeRequestId"])
	})

	t.Run("should accept auto-complete given as a string", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		actionCtx := mergeRequestContext().
			WithInput("token", "tok").
			WithInput("autoComplete", "true").
			BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.NoError(t, err)
		assert.Len(t, fixture.gitlab.Calls, 2)
	})

	t.Run("should send fully qualified branch refs", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		actionCtx := mergeRequestContext().
			WithInput("token", "tok").
			WithInput("sourceBranch", "feature/login").
			WithInput("targetBranch", "develop").
			BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.NoError(t, err)
		require.Len(t, fixture.gitlab.MRInputs, 1)
		assert.Equal(t, "refs/heads/feature/login", fixture.gitlab.MRInputs[0].SourceBranch)
		assert.Equal(t, "refs/heads/develop", fixture.gitlab.MRInputs[0].TargetBranch)
	})

	t.Run("should apply default branches before qualifying them", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		actionCtx := mergeRequestContext().WithInput("token", "tok").BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.MergeRequestInput{
			SourceBranch: "refs/heads/scaffolder",
			TargetBranch: "refs/heads/main",
			Title:        "Add feature",
			Description:  "",
		}, fixture.gitlab.MRInputs[0])
	})

	t.Run("should take default branches from the settings", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		settings := entities.NewDefaultSettings()
		settings.Defaults.SourceBranch = "bot"
		settings.Defaults.TargetBranch = "trunk"
		actionCtx := mergeRequestContext().
			WithInput("token", "tok").
			WithSettings(settings).
			BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.NoError(t, err)
		assert.Equal(t, "refs/heads/bot", fixture.gitlab.MRInputs[0].SourceBranch)
		assert.Equal(t, "refs/heads/trunk", fixture.gitlab.MRInputs[0].TargetBranch)
	})

	t.Run("should open the merge request in the project when one is given", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		actionCtx := mergeRequestContext().
			WithInput("token", "tok").
			WithInput("project", "group/app").
			BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"group/app"}, fixture.gitlab.CreateProjectIDs)
	})

	t.Run("should not update nor output when create fails", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		createErr := errors.New("403 Forbidden")
		fixture.gitlab.CreateMRErr = createErr
		actionCtx := mergeRequestContext().
			WithInput("token", "tok").
			WithInput("autoComplete", true).
			BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.ErrorIs(t, err, createErr)
		assert.Equal(t, []string{"CreateMergeRequest"}, fixture.gitlab.Calls)
		assert.Empty(t, actionCtx.Outputs())
	})

	t.Run("should surface the update error without undoing the create", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		updateErr := errors.New("422 Unprocessable Entity")
		fixture.gitlab.UpdateMRErr = updateErr
		actionCtx := mergeRequestContext().
			WithInput("token", "tok").
			WithInput("autoComplete", true).
			BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.ErrorIs(t, err, updateErr)
		assert.Equal(t, []string{"CreateMergeRequest", "UpdateMergeRequest"}, fixture.gitlab.Calls)
		assert.Empty(t, actionCtx.Outputs())
	})

	t.Run("should reject input without title", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		actionCtx := builders.NewActionContextBuilder().
			WithInput("repoId", "42").
			WithInput("token", "tok").
			BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		var inputErr *entities.InputError
		require.ErrorAs(t, err, &inputErr)
		assert.Contains(t, err.Error(), `"title"`)
		assert.Empty(t, fixture.gitlab.Calls)
	})

	t.Run("should accept a numeric repository ID", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		actionCtx := builders.NewActionContextBuilder().
			WithInput("title", "Add feature").
			WithInput("repoId", 42).
			WithInput("token", "tok").
			BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"42"}, fixture.gitlab.CreateProjectIDs)
	})

	t.Run("should propagate a client construction failure", func(t *testing.T) {
		t.Parallel()

		// given
		fixture := newMergeRequestFixture()
		factoryErr := errors.New("bad base URL")
		fixture.factory.FactoryErr = factoryErr
		actionCtx := mergeRequestContext().WithInput("token", "tok").BuildActionContext()

		// when
		err := fixture.command.Execute(context.Background(), actionCtx)

		// then
		require.ErrorIs(t, err, factoryErr)
		assert.Empty(t, fixture.gitlab.Calls)
	})
}

func TestOpenMergeRequest(t *testing.T) {
	t.Parallel()

	t.Run("should never pass a caller supplied ID to the update", func(t *testing.T) {
		t.Parallel()

		// given
		spy := &doubles.SpyGitLabRepository{CreatedMR: &entities.MergeRequest{IID: 99}}
		request := entities.MergeRequestInput{Title: "t", AutoComplete: true}

		// when
		iid, err := commands.OpenMergeRequest(context.Background(), spy, "42", request)

		// then
		require.NoError(t, err)
		assert.Equal(t, int64(99), iid)
		assert.Equal(t, []int64{99}, spy.UpdatedIIDs)
	})
}
