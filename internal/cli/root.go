package cli

import (
	"context"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
}

func NewRootCommand() *cobra.Command {
	options := &rootOptions{}

	root := &cobra.Command{
		Use:           "healthlog",
		Short:         "healthlog keeps diet, exercise and sleep records and exports health reports",
		Long:          "healthlog is a local-first health record store with statistics, PDF reports, optional report encryption and JSON export.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&options.configFile, "config", "", "Path to a healthlog.yaml config file")

	root.AddCommand(
		newServeCommand(options),
		newExportCommand(options),
		newDecryptCommand(options),
		newStatsCommand(options),
		newPasswordCommand(options),
	)
	return root
}

func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
