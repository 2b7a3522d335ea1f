package booking

import (
	"time"

	"github.com/google/uuid"
)

// Rule describes how a booking regenerates. Interval is the number of
// frequency units between occurrences; EndDate, when set, is an inclusive
// bound on the next start.
type Rule struct {
	ID        uuid.UUID
	Frequency Frequency
	Interval  int
	StartDate time.Time
	EndDate   *time.Time
	CreatedAt time.Time
}

func NewRule(frequency Frequency, interval int, startDate time.Time, endDate *time.Time) *Rule {
	return &Rule{
		ID:        uuid.New(),
		Frequency: frequency,
		Interval:  interval,
		StartDate: startDate,
		EndDate:   endDate,
	}
}

// NextOccurrence advances both endpoints of the current occurrence by the
// rule's stride, preserving the original duration exactly. It returns false
// when the rule is exhausted (next start past the inclusive end date) or the
// frequency is unrecognized; the latter is deliberately a no-op, not an error.
func NextOccurrence(rule Rule, currentStart, currentEnd time.Time) (time.Time, time.Time, bool) {
	var days int
	switch rule.Frequency {
	case FrequencyDaily:
		days = rule.Interval
	case FrequencyWeekly:
		days = rule.Interval * 7
	default:
		return time.Time{}, time.Time{}, false
	}

	nextStart := currentStart.AddDate(0, 0, days)
	if rule.EndDate != nil && nextStart.After(*rule.EndDate) {
		return time.Time{}, time.Time{}, false
	}

	nextEnd := nextStart.Add(currentEnd.Sub(currentStart))
	return nextStart, nextEnd, true
}
