package controllers

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/commands"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
)

// ActionsController handles the "actions" subcommand: it lists the registered
// actions, or prints the schema of one of them.
type ActionsController struct {
	actions *commands.ActionRegistry
}

// NewActionsController creates a new ActionsController.
func NewActionsController(actions *commands.ActionRegistry) *ActionsController {
	return &ActionsController{actions: actions}
}

// GetBind returns the Cobra command metadata for the actions controller.
func (it *ActionsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "actions [action-id]",
		Short: "List the available scaffolder actions",
		Long: `List every available scaffolder action with its description.
Given an action ID, print the input and output schema of that action.`,
		Args: cobra.MaximumNArgs(1),
	}
}

func (it *ActionsController) AddFlags(_ *cobra.Command) {}

// Execute prints the action list or a single action schema.
func (it *ActionsController) Execute(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for _, action := range it.actions.All() {
			fmt.Fprintf(out, "%-22s %s\n", action.ID(), action.Description())
		}
		return nil
	}

	action, err := it.actions.Get(args[0])
	if err != nil {
		return err
	}

	encoder := yaml.NewEncoder(out)
	defer encoder.Close()
	encoder.SetIndent(2) //nolint:mnd // two-space YAML
	return encoder.Encode(map[string]any{
		"id":          action.ID(),
		"description": action.Description(),
		"schema":      action.Schema(),
	})
}
