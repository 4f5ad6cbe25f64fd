package entities

import "github.com/spf13/cobra"

// ControllerBind holds the Cobra command metadata for a controller.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
	Args  cobra.PositionalArgs
}

// Controller is a CLI entry point bound to a Cobra sub-command.
type Controller interface {
	GetBind() ControllerBind
	AddFlags(cmd *cobra.Command)
	Execute(cmd *cobra.Command, args []string) error
}
