package domain

// Study policy constants shared by the generator and the validator.
const (
	// HardDailyLimitHours is the absolute ceiling of study hours on one date.
	HardDailyLimitHours = 8.0

	// Review1MinGapDays and Review1MaxGapDays bound the distance between a
	// topic's last learning session and its first review.
	Review1MinGapDays = 3
	Review1MaxGapDays = 5

	// Review2WindowDays is the number of available days before the exam
	// in which the final review belongs.
	Review2WindowDays = 3

	// ExamGapWarnDays is the largest tolerated distance between a course's
	// last session and its exam.
	ExamGapWarnDays = 3

	// MinSessionHours is the scheduling granularity.
	MinSessionHours = 0.5
)
