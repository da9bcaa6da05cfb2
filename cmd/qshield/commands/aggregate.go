package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func aggregateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aggregate",
		Short: "Run a secure aggregation round",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Aggregating model updates from all participants...")
			if _, err := wire.Aggregation.Trigger(cmd.Context(), nil); err != nil {
				return err
			}
			dismissModal(cmd.OutOrStdout())
			return nil
		},
	}
}
