package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func certCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cert",
		Short: "Generate the organisation's quantum-safe certificate",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Generating quantum-safe certificate...")
			if _, err := wire.Identity.GenerateCertificate(cmd.Context()); err != nil {
				return err
			}
			dismissModal(cmd.OutOrStdout())
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Register the certificate on the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Broadcasting transaction...")
			if _, err := wire.Identity.RegisterIdentity(cmd.Context()); err != nil {
				return err
			}
			dismissModal(cmd.OutOrStdout())
			return nil
		},
	}
}
