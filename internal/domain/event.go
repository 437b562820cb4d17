package domain

import "time"

// Player links a person to an administrative user account.
type Player struct {
	Record
	PersonID uint   `json:"personId"`
	UserName string `json:"userName"`
}

// Event is a fair-scoped programme entry. Repeated events share a master:
// the master pointer is one level deep, an event either is a master or
// points at one.
type Event struct {
	Record
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	OwnerID        uint       `json:"ownerId"`
	FairID         *uint      `json:"fairId,omitempty"`
	MasterID       *uint      `json:"masterId,omitempty"`
	OrganisationID *uint      `json:"organisationId,omitempty"`
	Date           time.Time  `json:"date"`
	Time           *time.Time `json:"time,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	EndTime        *time.Time `json:"endTime,omitempty"`
	Location       string     `json:"location,omitempty"`
}

// MainID is the identity shared by all occurrences of a repeated event.
func (e Event) MainID() uint {
	if e.MasterID != nil {
		return *e.MasterID
	}
	return e.ID
}

// Actor is one person's involvement in an event's team.
type Actor struct {
	Record
	PersonID uint   `json:"personId"`
	EventID  uint   `json:"eventId"`
	Role     string `json:"role,omitempty"`
}

// EventComment is a remark left by a player on an event.
type EventComment struct {
	Record
	AuthorID uint   `json:"authorId"` // player id
	EventID  uint   `json:"eventId"`
	Text     string `json:"text"`
}

// ShortText is the truncated comment body used in listings.
func (c EventComment) ShortText() string {
	return FirstWords(c.Text, 24)
}

// ApplicationStatus is the review state of an event application.
type ApplicationStatus int

const (
	ApplicationPending ApplicationStatus = iota
	ApplicationAccepted
	ApplicationRejected
)

func (s ApplicationStatus) String() string {
	switch s {
	case ApplicationPending:
		return "Pending"
	case ApplicationAccepted:
		return "Accepted"
	case ApplicationRejected:
		return "Rejected"
	default:
		return "unknown"
	}
}

// EventApplication is a person's request to take part in an event.
type EventApplication struct {
	ID       uint              `json:"id"`
	PersonID uint              `json:"personId"`
	EventID  uint              `json:"eventId"`
	Status   ApplicationStatus `json:"status"`
	Created  time.Time         `json:"created"`
}
