package cli

import (
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/alexanderramin/studyplanner/internal/service"
	"github.com/spf13/cobra"
)

func newCheckCmd(app *App) *cobra.Command {
	var input, schedule, start string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a schedule CSV against a plan input",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseOptionalDate("start", start)
			if err != nil {
				return err
			}
			res, err := app.Plans.CheckSchedule(cmd.Context(), service.CheckRequest{
				InputPath:    input,
				SchedulePath: schedule,
				StartDate:    startDate,
				Now:          app.now(),
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n\n", formatter.Bold(schedule),
				formatter.Dim(fmt.Sprintf("%d sessions, %s", len(res.Schedule), formatter.FormatHours(res.Schedule.TotalHours()))))
			fmt.Fprint(w, formatter.FormatIssues(res.Report))
			if !res.Report.IsAcceptable() {
				return fmt.Errorf("schedule has %d validation errors", len(res.Report.Errors()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Plan input file (JSON or YAML)")
	cmd.Flags().StringVar(&schedule, "schedule", "", "Schedule CSV to validate")
	cmd.Flags().StringVar(&start, "start", "", "First study day (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("schedule")

	return cmd
}
