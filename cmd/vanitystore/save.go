package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/vanitystore/pkg/addrstore"
)

type saveOptions struct {
	*rootOptions
	Address    string
	PrivateKey string
	Pattern    string
}

func newSaveCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &saveOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save one address record",
		Example: `  vanitystore save --address 1BoatSLRHtKNngkdXEeobR76b53LETtpyT --pattern 1Boat
  vanitystore save --address 0xABC --pattern 0xA --private-key "$KEY"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.prepare(cmd); err != nil {
				return err
			}
			return opts.withGateway(cmd.Context(), func(gw *addrstore.Gateway) error {
				if err := gw.Save(cmd.Context(), opts.Address, opts.PrivateKey, opts.Pattern); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", opts.Address)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.Address, "address", "", "generated address (required)")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", "", "pattern the address matched (required)")
	cmd.Flags().StringVar(&opts.PrivateKey, "private-key", "", "private key, stored as empty string when omitted")
	_ = cmd.MarkFlagRequired("address")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}
