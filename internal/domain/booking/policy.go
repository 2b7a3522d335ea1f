package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrOutsideWorkingHours = errors.New("booking must fall within working hours")
	ErrDurationTooShort    = errors.New("booking duration below minimum")
	ErrDurationTooLong     = errors.New("booking duration above maximum")
)

// Policy is the pre-engine validation contract: working-hours window plus
// duration bounds. The lifecycle engine trusts that every slot it receives
// already passed these checks.
type Policy struct {
	workStart   int // minutes since midnight
	workEnd     int
	minDuration time.Duration
	maxDuration time.Duration
}

func NewPolicy(workdayStart, workdayEnd string, minMinutes, maxMinutes int) (Policy, error) {
	start, err := parseClock(workdayStart)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid workday start %q: %w", workdayStart, err)
	}
	end, err := parseClock(workdayEnd)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid workday end %q: %w", workdayEnd, err)
	}
	if start >= end {
		return Policy{}, fmt.Errorf("workday start %q must precede end %q", workdayStart, workdayEnd)
	}
	return Policy{
		workStart:   start,
		workEnd:     end,
		minDuration: time.Duration(minMinutes) * time.Minute,
		maxDuration: time.Duration(maxMinutes) * time.Minute,
	}, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// WindowOn returns the working-hours window on the given calendar day, in
// that day's location.
func (p Policy) WindowOn(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return midnight.Add(time.Duration(p.workStart) * time.Minute),
		midnight.Add(time.Duration(p.workEnd) * time.Minute)
}

// ValidateSlot checks the slot against the working-hours window (local clock
// time of the endpoints) and the duration bounds.
func (p Policy) ValidateSlot(slot TimeSlot) error {
	startMin := slot.Start().Hour()*60 + slot.Start().Minute()
	endMin := slot.End().Hour()*60 + slot.End().Minute()
	if startMin < p.workStart || endMin > p.workEnd {
		return ErrOutsideWorkingHours
	}

	d := slot.Duration()
	if d < p.minDuration {
		return ErrDurationTooShort
	}
	if d > p.maxDuration {
		return ErrDurationTooLong
	}
	return nil
}
