package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/retailbill/internal/config"
	"github.com/mmynk/retailbill/internal/server"
	"github.com/mmynk/retailbill/pkg/logging"
)

// serve: run the session service, configured from BILLING_* variables.
func serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the billing session service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.Serve(ctx, cfg, logging.Setup())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides BILLING_ADDR)")
	return cmd
}
