package domain

import "time"

// InvoiceStatus is the billing state of an invoice.
type InvoiceStatus int

const (
	InvoiceNew InvoiceStatus = iota
	InvoiceSent
	InvoicePaid
	InvoiceCancelled
	InvoiceBanked
)

func (s InvoiceStatus) String() string {
	switch s {
	case InvoiceNew:
		return "New"
	case InvoiceSent:
		return "Sent"
	case InvoicePaid:
		return "Paid"
	case InvoiceCancelled:
		return "Cancelled"
	case InvoiceBanked:
		return "Banked"
	default:
		return "unknown"
	}
}

// invoiceTransitions is the forward-only transition table. Absent pairs are
// rejected; cancelled and banked are terminal.
var invoiceTransitions = map[InvoiceStatus][]InvoiceStatus{
	InvoiceNew:       {InvoiceSent, InvoiceCancelled},
	InvoiceSent:      {InvoicePaid, InvoiceCancelled},
	InvoicePaid:      {InvoiceBanked},
	InvoiceCancelled: {},
	InvoiceBanked:    {},
}

// Invoice tracks one bill raised against a person or organisation.
type Invoice struct {
	ID        uint          `json:"id"`
	Status    InvoiceStatus `json:"status"`
	Reference string        `json:"reference,omitempty"`
	Amount    int64         `json:"amount"` // pence
	Created   time.Time     `json:"created"`
	Sent      *time.Time    `json:"sent,omitempty"`
	Paid      *time.Time    `json:"paid,omitempty"`
	Cancelled *time.Time    `json:"cancelled,omitempty"`
	Banked    *time.Time    `json:"banked,omitempty"`
}

// NextStatuses lists the transitions allowed from the current status.
func (inv Invoice) NextStatuses() []InvoiceStatus {
	return invoiceTransitions[inv.Status]
}

// Transition moves the invoice to next per the transition table, stamping
// the matching timestamp with now. An out-of-table transition returns
// InvalidTransitionError and leaves the invoice unchanged.
func (inv *Invoice) Transition(next InvoiceStatus, now time.Time) error {
	allowed := false
	for _, s := range invoiceTransitions[inv.Status] {
		if s == next {
			allowed = true
			break
		}
	}
	if !allowed {
		return InvalidTransitionError{From: inv.Status, To: next}
	}
	inv.Status = next
	inv.stamp(next, now)
	return nil
}

// SetStatus assigns the status directly, bypassing the transition table.
// Raising stamps every timestamp up to the new status that is not yet set,
// skipping cancelled unless it is the target since it is a terminal branch,
// not a step on the way to banked. Lowering clears the timestamps of states
// at or above the new one.
func (inv *Invoice) SetStatus(next InvoiceStatus, now time.Time) {
	if next > inv.Status {
		for s := inv.Status + 1; s <= next; s++ {
			if s == InvoiceCancelled && next != InvoiceCancelled {
				continue
			}
			if inv.stampOf(s) == nil {
				inv.stamp(s, now)
			}
		}
	} else if next < inv.Status {
		for s := next; s <= inv.Status; s++ {
			inv.clear(s)
		}
	}
	inv.Status = next
}

func (inv *Invoice) stamp(s InvoiceStatus, now time.Time) {
	t := now
	switch s {
	case InvoiceSent:
		inv.Sent = &t
	case InvoicePaid:
		inv.Paid = &t
	case InvoiceCancelled:
		inv.Cancelled = &t
	case InvoiceBanked:
		inv.Banked = &t
	}
}

func (inv *Invoice) stampOf(s InvoiceStatus) *time.Time {
	switch s {
	case InvoiceSent:
		return inv.Sent
	case InvoicePaid:
		return inv.Paid
	case InvoiceCancelled:
		return inv.Cancelled
	case InvoiceBanked:
		return inv.Banked
	}
	return nil
}

func (inv *Invoice) clear(s InvoiceStatus) {
	switch s {
	case InvoiceSent:
		inv.Sent = nil
	case InvoicePaid:
		inv.Paid = nil
	case InvoiceCancelled:
		inv.Cancelled = nil
	case InvoiceBanked:
		inv.Banked = nil
	}
}
