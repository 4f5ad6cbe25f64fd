//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"maps"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
)

// ActionContextBuilder helps create action contexts with a fluent interface.
type ActionContextBuilder struct {
	*testkit.BaseBuilder
	actionID  string
	workspace string
	input     entities.ActionInput
	settings  *entities.Settings
}

// NewActionContextBuilder creates a new builder with sensible defaults.
func NewActionContextBuilder() *ActionContextBuilder {
	return &ActionContextBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		actionID:    "test:action",
		workspace:   ".",
		input:       entities.ActionInput{},
		settings:    entities.NewDefaultSettings(),
	}
}

// WithActionID sets the action the context is created for.
func (b *ActionContextBuilder) WithActionID(id string) *ActionContextBuilder {
	b.actionID = id
	return b
}

// WithWorkspace sets the workspace path.
func (b *ActionContextBuilder) WithWorkspace(workspace string) *ActionContextBuilder {
	b.workspace = workspace
	return b
}

// WithInput sets a single input field.
func (b *ActionContextBuilder) WithInput(name string, value any) *ActionContextBuilder {
	b.input[name] = value
	return b
}

// WithSettings replaces the settings.
func (b *ActionContextBuilder) WithSettings(settings *entities.Settings) *ActionContextBuilder {
	b.settings = settings
	return b
}

// Build creates the action context (satisfies testkit.Builder interface).
func (b *ActionContextBuilder) Build() interface{} {
	return b.BuildActionContext()
}

// BuildActionContext creates the action context with a concrete return type.
func (b *ActionContextBuilder) BuildActionContext() *entities.ActionContext {
	return entities.NewActionContext(b.actionID, b.workspace, maps.Clone(b.input), b.settings)
}

// Reset clears the builder state, allowing it to be reused.
func (b *ActionContextBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.actionID = "test:action"
	b.workspace = "."
	b.input = entities.ActionInput{}
	b.settings = entities.NewDefaultSettings()
	return b
}

// Clone creates a deep copy of the ActionContextBuilder.
func (b *ActionContextBuilder) Clone() testkit.Builder {
	return &ActionContextBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		actionID:    b.actionID,
		workspace:   b.workspace,
		input:       maps.Clone(b.input),
		settings:    b.settings,
	}
}
