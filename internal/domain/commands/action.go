package commands

import (
	"context"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
)

// Action is a scaffolder action invoked by its ID with a declarative input.
type Action interface {
	// ID returns the action identifier (e.g. "gitlab:repo:pr").
	ID() string

	// Description returns a one-line summary of what the action does.
	Description() string

	// Schema declares the accepted input and produced output.
	Schema() entities.ActionSchema

	// Execute runs the action. Outputs are recorded on the context and are
	// only meaningful when no error is returned.
	Execute(ctx context.Context, actionCtx *entities.ActionContext) error
}

// decodeInput validates the context input against the action schema and
// decodes it into target.
func decodeInput(action Action, actionCtx *entities.ActionContext, target any) error {
	normalized, err := action.Schema().Normalize(actionCtx.Input)
	if err != nil {
		return err
	}
	return normalized.Decode(target)
}

// orDefault returns value, or fallback when value is empty.
func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
