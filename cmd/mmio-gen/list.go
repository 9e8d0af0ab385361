package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"omibyte.io/mmiogen/devices"
)

var (
	listOpts = struct {
		headers bool
	}{}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the known devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			if listOpts.headers {
				fmt.Fprintln(w, "ID\tNAME\tPREFIX\tHEADER")
			} else {
				fmt.Fprintln(w, "ID\tNAME\tPREFIX\tDOC")
			}
			for _, dev := range devices.All() {
				if listOpts.headers {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", dev.ID, dev.Name, dev.Prefix, dev.Header)
				} else {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", dev.ID, dev.Name, dev.Prefix, dev.Doc)
				}
			}
			return w.Flush()
		},
	}
)

func init() {
	listCmd.Flags().BoolVar(&listOpts.headers, "headers", false, "show the header URLs instead of the documentation")
}
