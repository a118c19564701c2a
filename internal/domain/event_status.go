package domain

import "fmt"

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	StatusPlanning  EventStatus = "PLANNING"
	StatusConfirmed EventStatus = "CONFIRMED"
	StatusRunning   EventStatus = "RUNNING"
	StatusFinished  EventStatus = "FINISHED"
	StatusCancelled EventStatus = "CANCELLED"
)

// EventStatuses lists every status in transition-graph order.
var EventStatuses = []EventStatus{StatusPlanning, StatusConfirmed, StatusRunning, StatusFinished, StatusCancelled}

// operatorTransitions holds the moves an operator may request directly.
// CONFIRMED -> RUNNING and RUNNING -> FINISHED belong to the scheduler.
var operatorTransitions = map[EventStatus][]EventStatus{
	StatusPlanning:  {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
	StatusRunning:   {StatusCancelled},
}

// ParseEventStatus parses s into a known EventStatus.
func ParseEventStatus(s string) (EventStatus, error) {
	st := EventStatus(s)
	if !st.Valid() {
		return "", NewValidationError("status", fmt.Sprintf("unknown status %q", s))
	}
	return st, nil
}

func (s EventStatus) Valid() bool {
	switch s {
	case StatusPlanning, StatusConfirmed, StatusRunning, StatusFinished, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s is absorbing.
func (s EventStatus) IsTerminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// CheckOperatorTransition returns a TransitionError when an operator may not move
// an event from s to target. It does not check type requirements.
func (s EventStatus) CheckOperatorTransition(target EventStatus) error {
	if !target.Valid() {
		return &TransitionError{From: s, To: target, Reason: "unknown target status"}
	}
	switch {
	case s.IsTerminal():
		return &TransitionError{From: s, To: target, Reason: fmt.Sprintf("%s is a final status", s)}
	case s == target:
		return &TransitionError{From: s, To: target, Reason: "event already has this status"}
	case s == StatusConfirmed && target == StatusPlanning:
		return &TransitionError{From: s, To: target, Reason: "a confirmed event cannot return to planning"}
	case target == StatusRunning || target == StatusFinished:
		return &TransitionError{From: s, To: target, Reason: "status is set automatically from the event dates"}
	}
	for _, allowed := range operatorTransitions[s] {
		if allowed == target {
			return nil
		}
	}
	return &TransitionError{From: s, To: target, Reason: "transition not allowed"}
}
