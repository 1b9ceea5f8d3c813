package domain

import (
	"fmt"
	"time"
)

// RequestStatus is the lifecycle state of a BorrowRequest.
type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
	RequestCanceled RequestStatus = "CANCELED"
)

func (s RequestStatus) String() string {
	return string(s)
}

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected, RequestCanceled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s RequestStatus) Terminal() bool {
	return s == RequestApproved || s == RequestRejected || s == RequestCanceled
}

// CanTransition allows only PENDING -> {APPROVED, REJECTED, CANCELED}.
func CanTransition(from, to RequestStatus) bool {
	return from == RequestPending && to.Terminal()
}

// BorrowingStatus is the lifecycle state of a single loan.
type BorrowingStatus string

const (
	BorrowingBorrowed BorrowingStatus = "BORROWED"
	BorrowingReturned BorrowingStatus = "RETURNED"
	BorrowingOverdue  BorrowingStatus = "OVERDUE"
)

func (s BorrowingStatus) String() string {
	return string(s)
}

func (s BorrowingStatus) Valid() bool {
	switch s {
	case BorrowingBorrowed, BorrowingReturned, BorrowingOverdue:
		return true
	}
	return false
}

// Returnable is true for BORROWED and OVERDUE; a RETURNED record is immutable.
func (s BorrowingStatus) Returnable() bool {
	return s == BorrowingBorrowed || s == BorrowingOverdue
}

// RequestStatusChange is a confirm-then-apply command against one request.
type RequestStatusChange struct {
	RequestID int64
	Target    RequestStatus
}

// Validate checks the command against the request's current server state.
func (c RequestStatusChange) Validate(current *BorrowRequest) error {
	if !c.Target.Terminal() {
		return fmt.Errorf("%w: target %q", ErrInvalidTransition, c.Target)
	}
	if current.ID != c.RequestID {
		return fmt.Errorf("%w: request %d", ErrNotFound, c.RequestID)
	}
	if !CanTransition(current.Status, c.Target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, c.Target)
	}
	return nil
}

// Apply returns a copy of r with the new status. Call only after the server confirmed.
func (c RequestStatusChange) Apply(r BorrowRequest) BorrowRequest {
	r.Status = c.Target
	return r
}

// ReturnBorrowing is the confirm-then-apply command for marking a loan returned.
type ReturnBorrowing struct {
	BorrowingID int64
	Confirmed   bool
}

func (c ReturnBorrowing) Validate(current *Borrowing) error {
	if !c.Confirmed {
		return ErrConfirmationRequired
	}
	if current.ID != c.BorrowingID {
		return fmt.Errorf("%w: borrowing %d", ErrNotFound, c.BorrowingID)
	}
	if !current.Status.Returnable() {
		return fmt.Errorf("%w: borrowing %d is %s", ErrInvalidTransition, current.ID, current.Status)
	}
	return nil
}

func (c ReturnBorrowing) Apply(b Borrowing, at time.Time) Borrowing {
	b.Status = BorrowingReturned
	b.ReturnDate = &at
	return b
}
