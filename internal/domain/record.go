package domain

import "time"

// Status is the lifecycle state shared by all address book records. The
// zero value is ACTIVE, so a record created without an explicit status is
// live immediately.
type Status int

const (
	StatusActive Status = iota
	StatusNew
	StatusDisabled
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusActive:
		return "active"
	case StatusDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Record carries the fields common to every address book entry.
type Record struct {
	ID      uint      `json:"id"`
	Status  Status    `json:"status"`
	Created time.Time `json:"created"`
}

// DeriveMemberStatus computes a member's status from the statuses of the
// organisation and the person it joins. NEW on either side dominates, then
// DISABLED; both ACTIVE gives ACTIVE. Any other combination keeps the
// current value, which the caller passes back unchanged.
func DeriveMemberStatus(organisation, person, current Status) Status {
	switch {
	case organisation == StatusNew || person == StatusNew:
		return StatusNew
	case organisation == StatusDisabled || person == StatusDisabled:
		return StatusDisabled
	case organisation == StatusActive && person == StatusActive:
		return StatusActive
	}
	return current
}
