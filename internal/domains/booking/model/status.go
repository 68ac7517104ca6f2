package model

import (
	"fmt"
	"slices"
)

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// MessageStatusChanged is returned when a guarded write finds the booking in another status than the one read.
const MessageStatusChanged = "booking was modified by another request, reload and try again"

// Transitions is the allowed status graph. Terminal states have no outgoing edge.
var Transitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change booking status from %s to %s", e.From, e.To)
}

func CanTransition(from, to string) bool {
	return slices.Contains(Transitions[from], to)
}

// Transition validates a status change and returns a *TransitionError when it is not allowed.
func Transition(from, to string) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}

	return nil
}

func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}
