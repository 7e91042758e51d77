package validation

import (
	"fmt"

	"github.com/alexanderramin/studyplanner/internal/domain"
)

func checkReferences(v *view) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, s := range v.all {
		c, ok := v.index[s.CourseID]
		switch {
		case !ok:
			issues = append(issues, domain.ValidationIssue{
				Severity: domain.SeverityError,
				Code:     domain.IssueUnknownCourse,
				Message:  fmt.Sprintf("Session on %s references unknown course %q", domain.FormatDate(s.Date), s.CourseID),
				CourseID: s.CourseID,
				Date:     datePtr(s.Date),
			})
		case !c.HasTopic(s.TopicName):
			issues = append(issues, domain.ValidationIssue{
				Severity:  domain.SeverityError,
				Code:      domain.IssueUnknownTopic,
				Message:   fmt.Sprintf("Course %s has no topic %q", s.CourseID, s.TopicName),
				CourseID:  s.CourseID,
				TopicName: s.TopicName,
				Date:      datePtr(s.Date),
			})
		}
		if s.Hours <= 0 || s.Hours > 24 {
			issues = append(issues, domain.ValidationIssue{
				Severity:  domain.SeverityError,
				Code:      domain.IssueInvalidHours,
				Message:   fmt.Sprintf("Session on %s has invalid duration %gh", domain.FormatDate(s.Date), s.Hours),
				CourseID:  s.CourseID,
				TopicName: s.TopicName,
				Date:      datePtr(s.Date),
			})
		}
		if !domain.ValidSessionTypes[string(s.Type)] {
			issues = append(issues, domain.ValidationIssue{
				Severity:  domain.SeverityError,
				Code:      domain.IssueInvalidType,
				Message:   fmt.Sprintf("Session on %s has unknown type %q", domain.FormatDate(s.Date), s.Type),
				CourseID:  s.CourseID,
				TopicName: s.TopicName,
				Date:      datePtr(s.Date),
			})
		}
	}
	return issues
}

func checkDailyOverload(v *view) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, d := range v.dates {
		h := v.hours[domain.FormatDate(d)]
		if h > domain.HardDailyLimitHours {
			issues = append(issues, domain.ValidationIssue{
				Severity: domain.SeverityError,
				Code:     domain.IssueOverload,
				Message:  fmt.Sprintf("%gh scheduled on %s exceeds the %gh daily limit", h, domain.FormatDate(d), domain.HardDailyLimitHours),
				Date:     datePtr(d),
			})
		}
	}
	return issues
}

func checkPreferenceOverload(v *view) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, d := range v.dates {
		h := v.hours[domain.FormatDate(d)]
		if h > v.prefs.MaxHoursPerDay {
			issues = append(issues, domain.ValidationIssue{
				Severity: domain.SeverityWarning,
				Code:     domain.IssuePreferenceOverload,
				Message:  fmt.Sprintf("%gh scheduled on %s exceeds the preferred %gh per day", h, domain.FormatDate(d), v.prefs.MaxHoursPerDay),
				Date:     datePtr(d),
			})
		}
	}
	return issues
}

func checkTopicCoverage(v *view) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, c := range v.courses {
		for _, t := range c.Topics {
			if len(v.topic(c.ID, t.Name).learning) == 0 {
				issues = append(issues, domain.ValidationIssue{
					Severity:  domain.SeverityError,
					Code:      domain.IssueMissingTopic,
					Message:   fmt.Sprintf("Topic %q of %s has no learning session", t.Name, c.ID),
					CourseID:  c.ID,
					TopicName: t.Name,
				})
			}
		}
	}
	return issues
}

func checkTemporalValidity(v *view) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, s := range v.sessions {
		exam := domain.DateOf(v.index[s.CourseID].ExamDate)
		if !s.Date.Before(exam) {
			issues = append(issues, domain.ValidationIssue{
				Severity:  domain.SeverityError,
				Code:      domain.IssuePastExam,
				Message:   fmt.Sprintf("%s session for %q on %s is not before the exam on %s", s.Type, s.TopicName, domain.FormatDate(s.Date), domain.FormatDate(exam)),
				CourseID:  s.CourseID,
				TopicName: s.TopicName,
				Date:      datePtr(s.Date),
			})
		}
	}
	return issues
}

func checkRestDays(v *view) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, s := range v.all {
		if v.prefs.RestDays.Contains(s.Date) {
			issues = append(issues, domain.ValidationIssue{
				Severity:  domain.SeverityError,
				Code:      domain.IssueRestDay,
				Message:   fmt.Sprintf("Session for %q falls on rest day %s", s.TopicName, domain.FormatDate(s.Date)),
				CourseID:  s.CourseID,
				TopicName: s.TopicName,
				Date:      datePtr(s.Date),
			})
		}
	}
	return issues
}

// checkRepetition flags missing reviews only when a study day existed
// between the topic's last learning session and the exam.
func checkRepetition(v *view) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, c := range v.courses {
		exam := domain.DateOf(c.ExamDate)
		for _, t := range c.Topics {
			ts := v.topic(c.ID, t.Name)
			last, ok := ts.lastLearning()
			if !ok || !v.availableBetween(last, exam) {
				continue
			}
			if len(ts.review1) == 0 {
				issues = append(issues, missingReview(c.ID, t.Name, domain.SessionReview1))
			}
			if len(ts.review2) == 0 {
				issues = append(issues, missingReview(c.ID, t.Name, domain.SessionReview2))
			}
		}
	}
	return issues
}

func missingReview(courseID, topic string, typ domain.SessionType) domain.ValidationIssue {
	return domain.ValidationIssue{
		Severity:  domain.SeverityWarning,
		Code:      domain.IssueMissingRepetition,
		Message:   fmt.Sprintf("Topic %q of %s has no %s session", topic, courseID, typ),
		CourseID:  courseID,
		TopicName: topic,
	}
}

func checkReviewOrder(v *view) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, c := range v.courses {
		for _, t := range c.Topics {
			ts := v.topic(c.ID, t.Name)
			last, ok := ts.lastLearning()
			if !ok {
				continue
			}
			for _, r := range append(append([]domain.DaySession{}, ts.review1...), ts.review2...) {
				if r.Date.Before(last) {
					issues = append(issues, domain.ValidationIssue{
						Severity:  domain.SeverityWarning,
						Code:      domain.IssueReviewOrder,
						Message:   fmt.Sprintf("%s of %q on %s precedes its learning on %s", r.Type, t.Name, domain.FormatDate(r.Date), domain.FormatDate(last)),
						CourseID:  c.ID,
						TopicName: t.Name,
						Date:      datePtr(r.Date),
					})
				}
			}
			if len(ts.review1) > 0 && len(ts.review2) > 0 && ts.review2[0].Date.Before(ts.review1[0].Date) {
				issues = append(issues, domain.ValidationIssue{
					Severity:  domain.SeverityWarning,
					Code:      domain.IssueReviewOrder,
					Message:   fmt.Sprintf("review_2 of %q is scheduled before review_1", t.Name),
					CourseID:  c.ID,
					TopicName: t.Name,
					Date:      datePtr(ts.review2[0].Date),
				})
			}
		}
	}
	return issues
}

func checkReviewSpacing(v *view) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, c := range v.courses {
		exam := domain.DateOf(c.ExamDate)
		for _, t := range c.Topics {
			ts := v.topic(c.ID, t.Name)
			if len(ts.review2) > 0 {
				r2 := ts.review2[0].Date
				if r2.Before(exam) && v.availableDaysBetween(r2, exam) >= domain.Review2WindowDays {
					issues = append(issues, domain.ValidationIssue{
						Severity:  domain.SeverityWarning,
						Code:      domain.IssueReviewSpacing,
						Message:   fmt.Sprintf("review_2 of %q on %s is not within the last %d study days before the exam", t.Name, domain.FormatDate(r2), domain.Review2WindowDays),
						CourseID:  c.ID,
						TopicName: t.Name,
						Date:      datePtr(r2),
					})
				}
			}
			last, ok := ts.lastLearning()
			if !ok || len(ts.review1) == 0 {
				continue
			}
			r1 := ts.review1[0].Date
			gap := domain.DaysBetween(last, r1)
			if gap < 0 {
				continue // reported as review_order
			}
			if gap < domain.Review1MinGapDays || gap > domain.Review1MaxGapDays {
				issues = append(issues, domain.ValidationIssue{
					Severity:  domain.SeverityWarning,
					Code:      domain.IssueReviewSpacing,
					Message:   fmt.Sprintf("review_1 of %q is %d days after learning (expected %d-%d)", t.Name, gap, domain.Review1MinGapDays, domain.Review1MaxGapDays),
					CourseID:  c.ID,
					TopicName: t.Name,
					Date:      datePtr(r1),
				})
			}
		}
	}
	return issues
}

func checkExamGap(v *view) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, c := range v.courses {
		exam := domain.DateOf(c.ExamDate)
		var last *domain.DaySession
		for i := range v.sessions {
			s := &v.sessions[i]
			if s.CourseID == c.ID && s.Date.Before(exam) {
				last = s
			}
		}
		if last == nil {
			continue
		}
		if gap := domain.DaysBetween(last.Date, exam); gap > domain.ExamGapWarnDays {
			issues = append(issues, domain.ValidationIssue{
				Severity: domain.SeverityWarning,
				Code:     domain.IssueExamGap,
				Message:  fmt.Sprintf("Last session for %s is %d days before the exam", c.ID, gap),
				CourseID: c.ID,
				Date:     datePtr(last.Date),
			})
		}
	}
	return issues
}

func checkDuplicateLearning(v *view) []domain.ValidationIssue {
	var issues []domain.ValidationIssue
	for _, c := range v.courses {
		for _, t := range c.Topics {
			perDate := make(map[string]int)
			for _, s := range v.topic(c.ID, t.Name).learning {
				perDate[domain.FormatDate(s.Date)]++
			}
			for _, date := range sortedKeys(perDate) {
				if perDate[date] < 2 {
					continue
				}
				d, _ := domain.ParseDate(date)
				issues = append(issues, domain.ValidationIssue{
					Severity:  domain.SeverityWarning,
					Code:      domain.IssueDuplicateLearning,
					Message:   fmt.Sprintf("Topic %q has %d learning sessions on %s", t.Name, perDate[date], date),
					CourseID:  c.ID,
					TopicName: t.Name,
					Date:      &d,
				})
			}
		}
	}
	return issues
}
