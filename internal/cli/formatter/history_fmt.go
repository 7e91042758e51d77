package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

// FormatRunList renders stored runs newest first.
func FormatRunList(runs []*domain.RunSummary, now time.Time) string {
	if len(runs) == 0 {
		return Dim("No plan runs recorded yet. Run `studyplanner plan --input <file>` to create one.") + "\n"
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		issues := Dim("none")
		if r.Errors > 0 || r.Warnings > 0 {
			var parts []string
			if r.Errors > 0 {
				parts = append(parts, StyleRed.Render(fmt.Sprintf("%dE", r.Errors)))
			}
			if r.Warnings > 0 {
				parts = append(parts, StyleYellow.Render(fmt.Sprintf("%dW", r.Warnings)))
			}
			issues = strings.Join(parts, " ")
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			HumanTimestamp(r.CreatedAt, now),
			OutcomePill(r.Outcome),
			fmt.Sprintf("%d/%d", r.Iterations, r.MaxIterations),
			domain.FormatDate(r.StartDate),
			fmt.Sprintf("%d", r.Sessions),
			FormatHours(r.TotalHours),
			issues,
		})
	}

	return RenderAlignedTable(
		[]string{"ID", "CREATED", "OUTCOME", "ITER", "START", "SESSIONS", "HOURS", "ISSUES"},
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignRight, AlignRight},
		rows,
	)
}
