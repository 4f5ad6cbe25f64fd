//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/commands"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
)

// StubAction is a stub implementation of commands.Action.
type StubAction struct {
	ActionID     string
	ActionSchema entities.ActionSchema
	Outputs      map[string]any
	ExecuteErr   error

	ExecuteCallCount int
	LastContext      *entities.ActionContext
}

var _ commands.Action = (*StubAction)(nil)

func (s *StubAction) ID() string                    { return s.ActionID }
func (s *StubAction) Description() string           { return "stub action " + s.ActionID }
func (s *StubAction) Schema() entities.ActionSchema { return s.ActionSchema }

func (s *StubAction) Execute(_ context.Context, actionCtx *entities.ActionContext) error {
	s.ExecuteCallCount++
	s.LastContext = actionCtx
	if s.ExecuteErr != nil {
		return s.ExecuteErr
	}
	for name, value := range s.Outputs {
		actionCtx.Output(name, value)
	}
	return nil
}
