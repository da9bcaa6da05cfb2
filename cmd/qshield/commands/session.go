package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var email, org string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := wire.Sessions.SignIn(email, org)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", sess.Email, sess.Org)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "operator email")
	cmd.Flags().StringVar(&org, "org", "", "organisation name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("org")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			wire.Sessions.SignOut()
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, ok := wire.Sessions.Current()
			if !ok {
				return fmt.Errorf("not signed in. use qshield login")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", sess.Email, sess.Org)
			if cert := wire.Store.Snapshot().Certificate; cert != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "certificate: %s %s, expires %s\n",
					cert.Algorithm, cert.Fingerprint(), cert.ExpiresAt.Format("2006-01-02"))
			}
			return nil
		},
	}
}
