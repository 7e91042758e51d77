package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/importer"
	"github.com/charmbracelet/huh"
)

var weekdayOptions = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// preferenceValues holds the string-typed form state for study preferences.
type preferenceValues struct {
	MaxHours  string
	Weekdays  []string
	RestDates string
	Style     string
}

// preferenceValuesFrom splits existing preferences into form fields.
// Rest markers that are not weekday names are treated as dates.
func preferenceValuesFrom(p importer.PreferencesInput) preferenceValues {
	v := preferenceValues{Style: p.StudyStyle}
	if p.MaxHoursPerDay > 0 {
		v.MaxHours = strconv.FormatFloat(p.MaxHoursPerDay, 'f', -1, 64)
	}
	if v.Style == "" {
		v.Style = string(domain.StyleBalanced)
	}
	var dates []string
	for _, m := range p.RestDays {
		if wd, ok := weekdayByName(m); ok {
			v.Weekdays = append(v.Weekdays, strings.ToLower(wd.String()))
			continue
		}
		dates = append(dates, strings.TrimSpace(m))
	}
	v.RestDates = strings.Join(dates, ", ")
	return v
}

// apply writes the form state back into p. Inputs were validated by the
// form, so parse failures leave the field unchanged.
func (v preferenceValues) apply(p *importer.PreferencesInput) {
	if h, err := strconv.ParseFloat(strings.TrimSpace(v.MaxHours), 64); err == nil {
		p.MaxHoursPerDay = h
	}
	markers := append([]string(nil), v.Weekdays...)
	markers = append(markers, splitList(v.RestDates)...)
	p.RestDays = markers
	p.StudyStyle = v.Style
}

func weekdayByName(s string) (time.Weekday, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, wd := range weekdayOptions {
		if strings.ToLower(wd.String()) == name {
			return wd, true
		}
	}
	return 0, false
}

// preferenceForm returns a themed Form for editing study preferences.
func preferenceForm(v *preferenceValues) *huh.Form {
	days := make([]huh.Option[string], 0, len(weekdayOptions))
	for _, wd := range weekdayOptions {
		days = append(days, huh.NewOption(wd.String(), strings.ToLower(wd.String())))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Max study hours per day").
				Placeholder("4").
				Value(&v.MaxHours).
				Validate(validateHoursPerDay),
			huh.NewSelect[string]().
				Title("Study style").
				Options(
					huh.NewOption("Balanced (even pace up to each exam)", string(domain.StyleBalanced)),
					huh.NewOption("Intensive (front-load every day)", string(domain.StyleIntensive)),
					huh.NewOption("Spaced repetition", string(domain.StyleSpacedRepetition)),
				).
				Value(&v.Style),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Rest weekdays").
				Options(days...).
				Value(&v.Weekdays),
			huh.NewInput().
				Title("Rest dates (YYYY-MM-DD, comma separated)").
				Placeholder("2025-03-14, 2025-03-21").
				Value(&v.RestDates).
				Validate(validateDateList),
		),
	).WithTheme(plannerHuhTheme()).WithShowHelp(false)
}
