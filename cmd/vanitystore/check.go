package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/vanitystore/pkg/addrstore"
)

func newCheckCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify connectivity and write permission",
		Long: `Connect to MongoDB, ping the deployment and verify write permission on the
target collection by inserting and removing a sentinel document.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rootOpts.prepare(cmd); err != nil {
				return err
			}
			return rootOpts.withGateway(cmd.Context(), func(gw *addrstore.Gateway) error {
				if err := gw.Healthcheck()(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %s.%s is writable\n", gw.Database(), gw.Collection())
				return nil
			})
		},
	}
}
