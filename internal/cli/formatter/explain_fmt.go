package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplanner/internal/intelligence"
)

// FormatExplanation renders a run explanation for terminal output.
func FormatExplanation(e *intelligence.Explanation) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s\n\n", StyleBold.Render(e.SummaryShort)))

	if e.SummaryDetailed != "" && e.SummaryDetailed != e.SummaryShort {
		b.WriteString(fmt.Sprintf("  %s\n\n", e.SummaryDetailed))
	}

	if len(e.Factors) > 0 {
		b.WriteString(Header("Factors"))
		b.WriteString("\n")
		for _, f := range e.Factors {
			icon := "+"
			style := StyleGreen
			if f.Direction == intelligence.DirectionAgainst {
				icon = "-"
				style = StyleRed
			}
			impact := Dim(fmt.Sprintf("[%s]", f.Impact))
			b.WriteString(fmt.Sprintf("  %s %s %s\n", style.Render(icon), f.Name, impact))
			b.WriteString(fmt.Sprintf("    %s\n", Dim(f.Summary)))
		}
		b.WriteString("\n")
	}

	if len(e.Suggestions) > 0 {
		b.WriteString(Header("Try"))
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			b.WriteString(fmt.Sprintf("  %s %s\n", StyleYellow.Render("→"), s))
		}
		b.WriteString("\n")
	}

	b.WriteString(Dim(fmt.Sprintf("  Confidence: %.0f%%\n", e.Confidence*100)))
	return RenderBox("Explanation", b.String())
}
