package cli

import (
	"time"

	"github.com/alexanderramin/studyplanner/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans   service.PlanService
	History service.HistoryService
	Explain service.ExplainService

	// IsInteractive reports whether stdin is a terminal. Nil means never,
	// which disables --interactive and --browse.
	IsInteractive func() bool

	// Now overrides the clock for tests.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "studyplanner" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "studyplanner",
		Short:         "Exam study schedule planner with spaced repetition",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
		newCheckCmd(app),
		newHistoryCmd(app),
		newShowCmd(app),
		newExplainCmd(app),
		newDeleteCmd(app),
	)

	return root
}
