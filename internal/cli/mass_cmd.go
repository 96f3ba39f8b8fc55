package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/parish/internal/cli/formatter"
	"github.com/alexanderramin/parish/internal/locale"
	"github.com/alexanderramin/parish/internal/schedule"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newMassCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mass",
		Short: "Weekly Mass times, countdowns and calendar export",
	}

	cmd.AddCommand(
		newMassNextCmd(app),
		newMassLiveCmd(app),
		newMassCountdownCmd(app),
		newMassWeekCmd(app),
		newMassUpcomingCmd(app),
		newMassICSCmd(app),
		newMassResetCmd(app),
		newMassWatchCmd(app),
	)

	return cmd
}

func newMassNextCmd(app *App) *cobra.Command {
	var earliest bool

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next Mass and how long until it starts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr := app.translator()
			next, ok, err := app.Schedule.Countdown(cmd.Context(), earliest)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(tr.Msg(locale.MsgNoMass)))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNext(next.Occurrence, next.Remaining, next.ResolvedAt, tr))
			return nil
		},
	}

	cmd.Flags().BoolVar(&earliest, "earliest", false, "Pick the chronologically earliest slot instead of template order")
	return cmd
}

func newMassLiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "live",
		Short: "Report whether a Mass is in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			occ, live, err := app.Schedule.Live(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLive(occ, live, app.translator()))
			return nil
		},
	}
}

func newMassCountdownCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "countdown",
		Short: "Print the time remaining until the next Mass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			next, ok, err := app.Schedule.Countdown(cmd.Context(), false)
			if err != nil {
				return err
			}
			tr := app.translator()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(tr.Msg(locale.MsgNoMass)))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n",
				formatter.FormatOccurrence(next.Occurrence, next.ResolvedAt, tr),
				formatter.FormatCountdownLabels(next.Remaining, tr))
			return nil
		},
	}
}

func newMassWeekCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show the weekly Mass template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Schedule.Template(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWeek(t, app.translator()))
			return nil
		},
	}
}

func newMassUpcomingCmd(app *App) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List the next N Masses in chronological order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", n)
			}
			occs, err := app.Schedule.Upcoming(cmd.Context(), n)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUpcoming(occs, app.clock().Now(), app.translator()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&n, "count", "n", 5, "Number of Masses to list")
	return cmd
}

func newMassICSCmd(app *App) *cobra.Command {
	var out, name, location, domainName string

	cmd := &cobra.Command{
		Use:   "ics",
		Short: "Export the Mass schedule as an iCalendar feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			err := app.Schedule.ExportICS(cmd.Context(), w, schedule.ICSOptions{
				CalendarName: name,
				Location:     location,
				Domain:       domainName,
			})
			if err != nil {
				return err
			}
			if out != "" && out != "-" {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Wrote "+out))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringVar(&name, "name", "Mass Times", "Calendar name")
	cmd.Flags().StringVar(&location, "location", "", "Location set on every event")
	cmd.Flags().StringVar(&domainName, "domain", "", "Domain used in event UIDs")
	return cmd
}

func newMassResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Replace the stored schedule with the built-in Mass times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := schedule.DefaultMassTimes()
			if err := app.Schedule.Replace(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Schedule reset to %d default Mass times", len(t))))
			return nil
		},
	}
}

func newMassWatchCmd(app *App) *cobra.Command {
	var duration int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live countdown to the next Mass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d := app.MassDuration
			if cmd.Flags().Changed("duration") {
				if duration < 1 {
					return fmt.Errorf("--duration must be at least 1 minute, got %d", duration)
				}
				d = time.Duration(duration) * time.Minute
			}
			load := func() (schedule.Template, error) {
				return app.Schedule.Template(ctx)
			}
			m := newWatchModel(load, app.clock(), d, app.translator(), app.state())
			if m.loadErr != nil {
				return m.loadErr
			}

			if !app.interactive() {
				fmt.Fprint(cmd.OutOrStdout(), m.View())
				return nil
			}

			p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout()))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("watch: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&duration, "duration", 0, "Minutes a Mass counts as live (default 60)")
	return cmd
}
