package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityColor returns the style for a validation severity.
func SeverityColor(sev domain.Severity) lipgloss.Style {
	switch sev {
	case domain.SeverityError:
		return StyleRed
	case domain.SeverityWarning:
		return StyleYellow
	default:
		return StyleDim
	}
}

// SeverityBadge returns a colored severity marker such as "● ERROR".
func SeverityBadge(sev domain.Severity) string {
	switch sev {
	case domain.SeverityError:
		return StyleRed.Render("● ERROR")
	case domain.SeverityWarning:
		return StyleYellow.Render("▲ WARN")
	default:
		return StyleDim.Render("● " + strings.ToUpper(string(sev)))
	}
}

// OutcomePill returns a colored indicator for a feedback loop state.
func OutcomePill(state domain.LoopState) string {
	switch state {
	case domain.StateAccepted:
		return StyleGreen.Render("✔ Accepted")
	case domain.StateExhausted:
		return StyleRed.Render("✖ Exhausted")
	default:
		return StyleDim.Render("○ " + string(state))
	}
}

// SessionTypeColor returns the style for a session type.
func SessionTypeColor(t domain.SessionType) lipgloss.Style {
	switch t {
	case domain.SessionLearning:
		return StyleBlue
	case domain.SessionReview1:
		return StylePurple
	case domain.SessionReview2:
		return StyleGreen
	default:
		return StyleDim
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
