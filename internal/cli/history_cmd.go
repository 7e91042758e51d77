package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/importer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved plan runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.History.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunList(runs, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (0 for all)")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var csvPath string
	var browse bool

	cmd := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show a saved plan run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := app.History.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			courses := storedCourses(run)

			if csvPath != "" {
				if err := writeScheduleFile(csvPath, run.Schedule, &run.Report); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Schedule written to "+csvPath))
				return nil
			}

			if browse {
				if !app.interactive() {
					return fmt.Errorf("--browse requires a terminal")
				}
				p := tea.NewProgram(newScheduleBrowser(run, courses), tea.WithAltScreen())
				_, err := p.Run()
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRun(run, courses))
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Export the run's schedule as CSV to this file")
	cmd.Flags().BoolVar(&browse, "browse", false, "Browse the schedule day by day")
	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete RUN_ID",
		Short: "Delete a saved plan run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.History.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted run %s\n", formatter.StyleGreen.Render("✔"), args[0])
			return nil
		},
	}
}

// storedCourses recovers course names from the run's saved input. Runs
// whose input cannot be decoded show course IDs only.
func storedCourses(run *domain.PlanRun) []domain.Course {
	if run.InputJSON == "" {
		return nil
	}
	var in importer.PlanInput
	if err := json.Unmarshal([]byte(run.InputJSON), &in); err != nil {
		return nil
	}
	courses := make([]domain.Course, 0, len(in.Courses))
	for _, c := range in.Courses {
		courses = append(courses, domain.Course{ID: c.ID, Name: c.Name})
	}
	return courses
}
