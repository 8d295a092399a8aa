// Package commands holds the cobra command tree of the billing CLI.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/retailbill/pkg/logging"
)

// options holds the state shared by one command tree.
type options struct {
	verbose bool
	logger  *slog.Logger
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "billing",
		Short:        "Retail store billing",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := logging.LevelFromEnv(slog.LevelWarn)
			if opts.verbose {
				level = slog.LevelDebug
			}
			opts.logger = logging.New(cmd.ErrOrStderr(), level)
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(shellCmd(opts), quoteCmd(), serveCmd())
	return root
}
