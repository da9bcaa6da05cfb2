package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func modelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "model",
		Short: "Print the current global model",
		RunE: func(cmd *cobra.Command, args []string) error {
			m := wire.Catalog.Model()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Version:      %s\n", m.Version)
			fmt.Fprintf(out, "Accuracy:     %.1f%%\n", m.Accuracy)
			fmt.Fprintf(out, "Rounds:       %d\n", m.Rounds)
			fmt.Fprintf(out, "Last update:  %s\n", m.LastUpdate)
			return nil
		},
	}
}

func downloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download",
		Short: "Prepare the encrypted global model package",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Preparing encrypted model package...")
			if _, err := wire.Catalog.Download(cmd.Context()); err != nil {
				return err
			}
			dismissModal(cmd.OutOrStdout())
			return nil
		},
	}
}
