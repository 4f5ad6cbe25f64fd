package main

import (
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/gitlab-scaffolder/internal"
)

func buildRootCommand() *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "scaffolder",
		Short: "GitLab scaffolder actions",
		Long: `Scaffolder actions that automate GitLab repository workflows:
cloning a repository into a workspace, committing and pushing changes,
and opening merge requests.

Examples:
  scaffolder actions                                  List the available actions
  scaffolder actions gitlab:repo:pr                   Show the input schema of an action
  scaffolder run gitlab:repo:pr -i input.yaml         Run an action with a YAML/JSON input
  scaffolder run gitlab:repo:pr --set repoId=42 --set title="Add feature"`,
		SilenceUsage: true,
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  bind.Args,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		ctrl.AddFlags(subCmd)
		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// token references such as ${GITLAB_TOKEN} may live in a local .env
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded environment from .env")
	}

	cobraRoot := buildRootCommand()

	// Inject controllers via DIG and add them as subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'scaffolder': %s", err)
	}
}
