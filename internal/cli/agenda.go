package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nhle/habit-tracker/internal/dateutil"
	"github.com/nhle/habit-tracker/internal/tracker"
	"github.com/nhle/habit-tracker/internal/ui/day"
)

var agendaCmd = &cobra.Command{
	Use:   "agenda [date]",
	Short: "Print the tasks of a day (today by default)",
	Long: `Print the timeline of one day. The date is a Y-M-D key such as
2026-10-14; without one, today is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAgenda,
}

func init() {
	agendaCmd.Flags().Bool("general", false, "Also list general tasks")
}

func runAgenda(cmd *cobra.Command, args []string) error {
	withGeneral, _ := cmd.Flags().GetBool("general")

	e, err := openEnv(cmd.Context(), stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	date := e.tracker.Today()
	if len(args) == 1 {
		date = args[0]
	}
	return printAgenda(cmd.Context(), cmd.OutOrStdout(), e.tracker, date, withGeneral)
}

// printAgenda writes the day's timeline to w, materializing the month's
// repeating tasks first.
func printAgenda(ctx context.Context, w io.Writer, t *tracker.Tracker, date string, withGeneral bool) error {
	y, m, d, err := dateutil.ParseDateKey(date)
	if err != nil {
		return err
	}
	date = dateutil.DateKey(y, m, d)

	if _, err := t.EnsureMonth(ctx, y, m); err != nil {
		return err
	}

	fmt.Fprintln(w, day.LongDate(date))
	fmt.Fprintln(w)

	items := t.InstancesOn(date)
	if len(items) == 0 {
		fmt.Fprintln(w, "  No tasks.")
	}
	for _, inst := range items {
		check := "[ ]"
		if inst.Completed {
			check = "[x]"
		}
		line := fmt.Sprintf("  %s %-19s %s", check, day.TimeRange(inst), inst.Name)
		if inst.IsRepeating {
			if label := t.RepeatLabel(inst.TemplateID); label != "" {
				line += "  " + day.Badge(label)
			}
		}
		fmt.Fprintln(w, line)
	}

	if !withGeneral {
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "General")
	fmt.Fprintln(w)
	general := t.General()
	if len(general) == 0 {
		fmt.Fprintln(w, "  No general tasks.")
	}
	for _, g := range general {
		check := "[ ]"
		if g.Completed {
			check = "[x]"
		}
		fmt.Fprintf(w, "  %s %s\n", check, g.Name)
	}
	return nil
}
