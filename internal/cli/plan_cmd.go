package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/export"
	"github.com/alexanderramin/studyplanner/internal/importer"
	"github.com/alexanderramin/studyplanner/internal/service"
	"github.com/spf13/cobra"
)

type planOptions struct {
	input         string
	start         string
	out           string
	style         studyStyleFlag
	pagesPerHour  float64
	maxIterations int
	withIssues    bool
	dryRun        bool
	interactive   bool
}

func newPlanCmd(app *App) *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a validated study schedule from a plan input file",
		Long: `Scores courses by exam urgency, volume and weight, generates a day-by-day
schedule with learning and review sessions, and validates it. Validation
errors are fed back into generation until the plan is accepted or the
iteration limit is reached. The run is saved to history unless --dry-run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, app, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Plan input file (JSON or YAML)")
	cmd.Flags().StringVar(&opts.start, "start", "", "First study day (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Write the schedule as CSV to this file")
	cmd.Flags().Var(&opts.style, "style", "Study style override ("+studyStyleNames()+")")
	cmd.Flags().Float64Var(&opts.pagesPerHour, "pages-per-hour", 0, "Reading speed override")
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", 0, "Feedback loop iteration limit override")
	cmd.Flags().BoolVar(&opts.withIssues, "with-issues", false, "Prefix the CSV with the validation report")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Plan without saving the run to history")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", false, "Edit study preferences in a form before planning")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runPlan(cmd *cobra.Command, app *App, opts *planOptions) error {
	if opts.pagesPerHour < 0 {
		return fmt.Errorf("--pages-per-hour must be positive")
	}
	if opts.maxIterations < 0 {
		return fmt.Errorf("--max-iterations must be positive")
	}
	start, err := parseOptionalDate("start", opts.start)
	if err != nil {
		return err
	}

	req := service.CreatePlanRequest{
		InputPath:     opts.input,
		StartDate:     start,
		Style:         opts.style.value,
		PagesPerHour:  opts.pagesPerHour,
		MaxIterations: opts.maxIterations,
		DryRun:        opts.dryRun,
		Now:           app.now(),
	}

	if opts.interactive {
		in, err := editPreferences(app, opts.input)
		if err != nil {
			return err
		}
		req.Input = in
	}

	stop := func() {}
	if app.interactive() {
		stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Planning...")
	}
	outcome, err := app.Plans.CreatePlan(cmd.Context(), req)
	stop()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprint(w, formatter.FormatRun(outcome.Run, outcome.Courses))

	if opts.out != "" {
		var report *domain.ValidationReport
		if opts.withIssues {
			report = &outcome.Run.Report
		}
		if err := writeScheduleFile(opts.out, outcome.Run.Schedule, report); err != nil {
			return err
		}
		fmt.Fprintf(w, "\n%s\n", formatter.Dim("Schedule written to "+opts.out))
	}
	return nil
}

// editPreferences loads the input file and lets the user adjust its
// preferences before planning.
func editPreferences(app *App, path string) (*importer.PlanInput, error) {
	if !app.interactive() {
		return nil, fmt.Errorf("--interactive requires a terminal")
	}
	in, err := importer.LoadPlanInput(path)
	if err != nil {
		return nil, &domain.InvalidInputError{Message: fmt.Sprintf("loading plan input: %v", err)}
	}
	values := preferenceValuesFrom(in.Preferences)
	if err := preferenceForm(&values).Run(); err != nil {
		return nil, fmt.Errorf("preference form: %w", err)
	}
	values.apply(&in.Preferences)
	return in, nil
}

func writeScheduleFile(path string, schedule domain.Schedule, report *domain.ValidationReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := writeSchedule(f, schedule, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeSchedule(w io.Writer, schedule domain.Schedule, report *domain.ValidationReport) error {
	if err := export.WriteCSV(w, schedule, export.WriteOptions{Report: report}); err != nil {
		return fmt.Errorf("writing schedule: %w", err)
	}
	return nil
}
