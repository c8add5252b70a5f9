package domain

import "fmt"

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusDenied    RequestStatus = "denied"
	StatusCancelled RequestStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further status change is allowed
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusDenied || s == StatusCancelled
}

// CanTransitionTo implements pending -> {approved, denied, cancelled}.
// Terminal states have no outgoing transitions.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	return s == StatusPending && next.IsTerminal()
}

// ValidateTransition returns a *TransitionError when from -> to is not allowed
func ValidateTransition(from, to RequestStatus) error {
	if !from.CanTransitionTo(to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// StatusFilter selects requests by status. FilterAll matches everything.
type StatusFilter string

const FilterAll StatusFilter = "all"

// ParseStatusFilter accepts "all", "" (same as all) or a request status
func ParseStatusFilter(s string) (StatusFilter, error) {
	if s == "" || s == string(FilterAll) {
		return FilterAll, nil
	}
	if !RequestStatus(s).Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
	return StatusFilter(s), nil
}

func (f StatusFilter) Matches(s RequestStatus) bool {
	return f == "" || f == FilterAll || RequestStatus(f) == s
}
