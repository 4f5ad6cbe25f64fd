package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/commands"
	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
)

// RunController handles the "run" subcommand: it invokes a single action.
type RunController struct {
	actions *commands.ActionRegistry
}

// NewRunController creates a new RunController.
func NewRunController(actions *commands.ActionRegistry) *RunController {
	return &RunController{actions: actions}
}

// GetBind returns the Cobra command metadata for the run controller.
func (it *RunController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "run <action-id>",
		Short: "Run a scaffolder action",
		Long: `Run a single scaffolder action against the workspace directory.

The action input is read from a YAML or JSON file (--input, "-" for stdin)
and can be overridden field by field with --set key=value. On success the
action outputs are printed as YAML on stdout.`,
		Args: cobra.ExactArgs(1),
	}
}

// AddFlags adds the run-specific flags to the given Cobra command.
func (it *RunController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "Path to a YAML/JSON file with the action input")
	cmd.Flags().StringArray("set", nil, "Set an input field (key=value), may be repeated")
	cmd.Flags().StringP("workspace", "w", ".", "Workspace directory the action operates in")
}

// Execute runs the requested action and prints its outputs.
func (it *RunController) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	inputPath, _ := cmd.Flags().GetString("input")
	assignments, _ := cmd.Flags().GetStringArray("set")
	workspace, _ := cmd.Flags().GetString("workspace")

	action, err := it.actions.Get(args[0])
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	input, err := readInput(cmd.InOrStdin(), inputPath, assignments)
	if err != nil {
		return err
	}

	actionCtx := entities.NewActionContext(action.ID(), workspace, input, settings)
	if err = action.Execute(ctx, actionCtx); err != nil {
		logger.Errorf("Action %q failed: %v", action.ID(), err)
		return err
	}

	outputs := actionCtx.Outputs()
	if len(outputs) == 0 {
		return nil
	}
	encoder := yaml.NewEncoder(cmd.OutOrStdout())
	defer encoder.Close()
	if err = encoder.Encode(outputs); err != nil {
		return fmt.Errorf("failed to write outputs: %w", err)
	}
	return nil
}

// loadSettings reads the config file given with --config or found in the
// default locations. Running without a config file is allowed.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		var err error
		cfgPath, err = entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using built-in defaults: %v", err)
			settings := entities.NewDefaultSettings()
			settings.AddEnvironmentIntegration()
			return settings, nil
		}
	}

	logger.Debugf("Using config file: %s", cfgPath)
	settings, err := entities.NewSettings(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	settings.AddEnvironmentIntegration()
	return settings, nil
}
