package domain

import "time"

// ActivityAction names a change to an event's attendance.
type ActivityAction string

const (
	ActivityRegistered ActivityAction = "registered"
	ActivityCancelled  ActivityAction = "cancelled"
	ActivityRemoved    ActivityAction = "removed"
)

// Activity is an audit entry describing one attendance change.
type Activity struct {
	EventID     string
	Participant string
	Action      ActivityAction
	// Source is who initiated the change: "participant" or "organizer".
	Source string
	At     time.Time
}
