package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/youmna-rabie/event-registry/internal/client"
	"github.com/youmna-rabie/event-registry/internal/event"
	"github.com/youmna-rabie/event-registry/internal/types"
)

var (
	eventsDate     string
	eventsLocation string
)

func init() {
	listEventsCmd.Flags().StringVar(&eventsDate, "date", "", "only events on this date (YYYY-MM-DD)")
	listEventsCmd.Flags().StringVar(&eventsLocation, "location", "", "only events whose location contains this text")
	rootCmd.AddCommand(listEventsCmd)
}

var listEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print events from a running server",
	RunE:  listEvents,
}

func newAPIClient() *client.Client {
	return client.New(serverURL, &http.Client{Timeout: 10 * time.Second})
}

func listEvents(cmd *cobra.Command, args []string) error {
	f := event.Filter{Location: eventsLocation}
	if eventsDate != "" {
		d, err := types.ParseDate(eventsDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}
		f.Date = &d
	}

	events, err := newAPIClient().ListEvents(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No events found.")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-10s  %-8s  %-30s  %s\n", "ID", "DATE", "START", "NAME", "LOCATION")
	for _, e := range events {
		fmt.Fprintf(out, "%-36s  %-10s  %-8s  %-30s  %s\n", e.ID, e.Date, e.StartTime, e.Name, e.Location)
	}
	return nil
}
