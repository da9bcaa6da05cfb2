package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the dashboard overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := wire.Dashboard.Summary()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Threats detected:  %d\n", s.TotalThreats)
			fmt.Fprintf(out, "Rounds completed:  %d\n", s.ActiveRounds)
			fmt.Fprintf(out, "Participants:      %d\n", s.Participants)
			fmt.Fprintf(out, "Global model:      v%s (%.1f%%)\n", s.Model.Version, s.Model.Accuracy)
			fmt.Fprintf(out, "Training:          %d%%\n", s.Training.Progress)
			fmt.Fprintln(out, "\nRecent activity:")
			for _, e := range s.Recent {
				fmt.Fprintf(out, "  %s  %-16s %s\n", e.Timestamp, e.Org, e.Action)
			}
			return nil
		},
	}
}

func participantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "participants",
		Short: "List federation members",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDATASET\tSTATUS")
			for _, p := range wire.Dashboard.Participants() {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", p.ID, p.Name, p.DatasetSize, p.Status)
			}
			return tw.Flush()
		},
	}
}
