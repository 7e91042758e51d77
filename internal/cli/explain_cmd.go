package cli

import (
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newExplainCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explain RUN_ID",
		Short: "Explain why a saved plan run came out the way it did",
		Long: `Explains the run's priorities, outcome and remaining issues, with
suggested input changes. Uses the local model when STUDYPLANNER_LLM_ENABLED
is set and falls back to a deterministic explanation otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Explaining run...")
			}
			explanation, err := app.Explain.ExplainRun(cmd.Context(), args[0])
			stop()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatExplanation(explanation))
			return nil
		},
	}
}
