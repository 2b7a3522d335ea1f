package booking

// Status is the lifecycle state of a booking. Only active bookings hold the
// room; pending bookings are queued demand and may overlap freely.
type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusComplete  Status = "complete"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCancelled, StatusComplete:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusComplete
}

// WaitingStatus tracks whether a queued booking has been promoted yet.
type WaitingStatus string

const (
	WaitingPending   WaitingStatus = "pending"
	WaitingConverted WaitingStatus = "converted"
)

// HistoryAction tags an audit-trail record.
type HistoryAction string

const (
	ActionCreated        HistoryAction = "created"
	ActionCreatedPending HistoryAction = "created-pending"
	ActionUpdated        HistoryAction = "updated"
	ActionCancelled      HistoryAction = "cancelled"
	ActionCompleted      HistoryAction = "status-changed-to-complete"
	ActionPromoted       HistoryAction = "promoted-from-waiting"
	ActionFromRecurrence HistoryAction = "created-from-recurrence"
)

// Frequency of a recurrence rule. Only daily and weekly are defined; anything
// else produces no occurrences.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func (f Frequency) IsValid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}
