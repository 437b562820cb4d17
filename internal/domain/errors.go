package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// InvalidTransitionError is returned when an invoice status change is not
// present in the transition table. The invoice is left untouched.
type InvalidTransitionError struct {
	From InvoiceStatus
	To   InvoiceStatus
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid invoice status transition: %s -> %s", e.From, e.To)
}

// Is enables errors.Is matching on InvalidTransitionError.
func (e InvalidTransitionError) Is(target error) bool {
	_, ok := target.(InvalidTransitionError)
	if ok {
		return true
	}
	_, ok = target.(*InvalidTransitionError)
	return ok
}

// ErrInvalidTransition is the sentinel error for rejected invoice transitions.
var ErrInvalidTransition = InvalidTransitionError{}

// BoardLockedError is returned when writing a pinned entity whose board is
// not open.
type BoardLockedError struct {
	Board string
}

func (e BoardLockedError) Error() string {
	if e.Board == "" {
		return "pin board not open"
	}
	return fmt.Sprintf("pin board %q not open", e.Board)
}

// Is enables errors.Is matching on BoardLockedError.
func (e BoardLockedError) Is(target error) bool {
	_, ok := target.(BoardLockedError)
	if ok {
		return true
	}
	_, ok = target.(*BoardLockedError)
	return ok
}

// ErrBoardLocked is the sentinel error for writes onto a locked board.
var ErrBoardLocked = BoardLockedError{}

// StructuralError reports a malformed pin version chain, either a cycle in
// the parent pointers or an ancestor with more than one forward child.
type StructuralError struct {
	Detail string
}

func (e StructuralError) Error() string {
	if e.Detail == "" {
		return "malformed version chain"
	}
	return fmt.Sprintf("malformed version chain: %s", e.Detail)
}

// Is enables errors.Is matching on StructuralError.
func (e StructuralError) Is(target error) bool {
	_, ok := target.(StructuralError)
	if ok {
		return true
	}
	_, ok = target.(*StructuralError)
	return ok
}

// ErrMalformedChain is the sentinel error for broken version chains.
var ErrMalformedChain = StructuralError{}
