package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/vanitystore/pkg/addrstore"
)

type recentOptions struct {
	*rootOptions
	Limit int64
}

func newRecentCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &recentOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Print the newest saved records as JSON lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.prepare(cmd); err != nil {
				return err
			}
			return opts.withGateway(cmd.Context(), func(gw *addrstore.Gateway) error {
				records, err := gw.Recent(cmd.Context(), opts.Limit)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				for _, rec := range records {
					if err := enc.Encode(rec); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().Int64VarP(&opts.Limit, "limit", "n", 10, "number of records to print")

	return cmd
}
