package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// FormatHours renders a fractional hour count with at most two decimals
// and no trailing zeros: 2 → "2h", 1.5 → "1.5h", 0.25 → "0.25h".
func FormatHours(h float64) string {
	rounded := math.Round(h*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + "h"
}

// DayLabel renders a date as "Mon 2025-03-03".
func DayLabel(d time.Time) string {
	return d.Format("Mon 2006-01-02")
}

// RelativeDays describes the distance from today to d in whole days.
func RelativeDays(today, d time.Time) string {
	days := int(math.Round(d.Sub(today).Hours() / 24))
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 0:
		return fmt.Sprintf("in %dd", days)
	default:
		return fmt.Sprintf("%dd ago", -days)
	}
}

// HumanTimestamp renders a run timestamp relative to now.
func HumanTimestamp(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006 15:04")
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 2006 15:04")
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HoursBar renders a fixed-width usage bar for used out of capacity hours.
// The bar turns yellow at capacity and red above the hard limit.
func HoursBar(used, capacity, hardLimit float64, width int) string {
	if width <= 0 || capacity <= 0 {
		return ""
	}
	filled := int(math.Round(math.Min(used/capacity, 1) * float64(width)))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case used > hardLimit:
		return StyleRed.Render(bar)
	case used > capacity:
		return StyleYellow.Render(bar)
	default:
		return StyleGreen.Render(bar)
	}
}
