package commands

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/retailbill/internal/billing"
	"github.com/mmynk/retailbill/internal/shell"
)

// shell: enter items one form at a time, print the bill on :quit.
func shellCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Enter products interactively and print the bill",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return shell.New(cmd.InOrStdin(), cmd.OutOrStdout(), billing.NewBill(), opts.logger).Run()
		},
	}
}
