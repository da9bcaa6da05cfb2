package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func auditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit [term]",
		Short: "Search the ledger by organisation, action or transaction hash",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := wire.Audit.Search(strings.Join(args, " "))
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching entries")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIMESTAMP\tORG\tACTION\tTX")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Timestamp, e.Org, e.Action, e.TxHash)
			}
			return tw.Flush()
		},
	}
}
