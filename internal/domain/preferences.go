package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Preferences are the user's planning constraints. They are fixed for the
// duration of one planning run.
type Preferences struct {
	MaxHoursPerDay float64 // planned in half-hour steps, rounded down
	RestDays       RestDays
	StudyStyle     StudyStyle
}

func (p Preferences) Validate() error {
	if p.MaxHoursPerDay < 0 {
		return &InvalidInputError{Message: fmt.Sprintf("max_hours_per_day %.1f must not be negative", p.MaxHoursPerDay)}
	}
	if p.MaxHoursPerDay > 0 && p.MaxHoursPerDay < MinSessionHours {
		return &InvalidInputError{Message: fmt.Sprintf("max_hours_per_day %g is below the %gh session granularity", p.MaxHoursPerDay, MinSessionHours)}
	}
	return nil
}

// RestDays is a set of weekday and calendar-date markers on which no
// session may be scheduled.
type RestDays struct {
	weekdays map[time.Weekday]bool
	dates    map[string]bool
}

var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseRestDays accepts weekday names (full or three-letter, any case) and
// YYYY-MM-DD dates.
func ParseRestDays(markers []string) (RestDays, error) {
	var r RestDays
	for _, m := range markers {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if wd, ok := weekdayNames[strings.ToLower(m)]; ok {
			r = r.WithWeekday(wd)
			continue
		}
		d, err := ParseDate(m)
		if err != nil {
			return RestDays{}, fmt.Errorf("rest day %q is neither a weekday nor a YYYY-MM-DD date", m)
		}
		r = r.WithDate(d)
	}
	return r, nil
}

// WithWeekday returns a copy of r that also rests on wd.
func (r RestDays) WithWeekday(wd time.Weekday) RestDays {
	out := r.clone()
	if out.weekdays == nil {
		out.weekdays = make(map[time.Weekday]bool)
	}
	out.weekdays[wd] = true
	return out
}

// WithDate returns a copy of r that also rests on the given calendar date.
func (r RestDays) WithDate(d time.Time) RestDays {
	out := r.clone()
	if out.dates == nil {
		out.dates = make(map[string]bool)
	}
	out.dates[FormatDate(d)] = true
	return out
}

func (r RestDays) clone() RestDays {
	var out RestDays
	if r.weekdays != nil {
		out.weekdays = make(map[time.Weekday]bool, len(r.weekdays))
		for k, v := range r.weekdays {
			out.weekdays[k] = v
		}
	}
	if r.dates != nil {
		out.dates = make(map[string]bool, len(r.dates))
		for k, v := range r.dates {
			out.dates[k] = v
		}
	}
	return out
}

// Contains reports whether d is a rest day.
func (r RestDays) Contains(d time.Time) bool {
	return r.weekdays[d.Weekday()] || r.dates[FormatDate(d)]
}

// Empty reports whether no rest days are declared.
func (r RestDays) Empty() bool {
	return len(r.weekdays) == 0 && len(r.dates) == 0
}

// Markers renders the set back into a sorted marker list: weekdays in
// Sunday-first order followed by dates ascending.
func (r RestDays) Markers() []string {
	var out []string
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if r.weekdays[wd] {
			out = append(out, wd.String())
		}
	}
	dates := make([]string, 0, len(r.dates))
	for d := range r.dates {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return append(out, dates...)
}
