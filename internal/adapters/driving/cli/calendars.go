package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var calendarsCmd = &cobra.Command{
	Use:   "calendars",
	Short: "Inspect Google calendars",
	Long: `Inspect the calendars visible to the signed-in user.

Use the listed ids in calendar.ids to merge several calendars into
/calendar/next.`,
}

var calendarsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List calendars and their ids",
	RunE:  runCalendarsList,
}

func init() {
	calendarsCmd.AddCommand(calendarsListCmd)
	rootCmd.AddCommand(calendarsCmd)
}

func runCalendarsList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if connectorService == nil {
		return fmt.Errorf("calendars list: %w", errNotConfigured)
	}

	cals, err := connectorService.ListCalendars(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list calendars: %w", err)
	}

	if len(cals) == 0 {
		cmd.Println("No calendars found.")
		return nil
	}

	for _, c := range cals {
		marker := " "
		if c.Primary {
			marker = "*"
		}
		cmd.Printf("%s %s\n    id: %s\n", marker, c.Summary, c.ID)
		if c.AccessRole != "" {
			cmd.Printf("    access: %s\n", c.AccessRole)
		}
	}
	return nil
}
