package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listRegistrationsCmd)
}

var listRegistrationsCmd = &cobra.Command{
	Use:   "registrations <eventId>",
	Short: "Print registrations for an event from a running server",
	Args:  cobra.ExactArgs(1),
	RunE:  listRegistrations,
}

func listRegistrations(cmd *cobra.Command, args []string) error {
	regs, err := newAPIClient().ListRegistrations(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("listing registrations: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(regs) == 0 {
		fmt.Fprintln(out, "No registrations found.")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-25s  %-30s  %-12s  %-6s  %s\n", "ID", "NAME", "EMAIL", "PRONOUNS", "OPT-IN", "REGISTERED")
	for _, r := range regs {
		fmt.Fprintf(out, "%-36s  %-25s  %-30s  %-12s  %-6t  %s\n",
			r.ID, r.Name, r.Email, r.Pronouns, r.OptInCommunication, r.RegisteredAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
