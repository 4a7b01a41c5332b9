package markov

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotStarted is returned by walker operations that need a history before
// Start has been called.
var ErrNotStarted = errors.New("markov: walker has not been started")

// InvalidOrderError is returned when a chain is constructed with an order
// smaller than one.
type InvalidOrderError struct {
	Order int
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("markov: order must be greater than 0, got %d", e.Order)
}

// DuplicateStateError is returned when a state name is registered twice.
type DuplicateStateError struct {
	Name string
}

func (e *DuplicateStateError) Error() string {
	return fmt.Sprintf("markov: state '%s' already exists", e.Name)
}

// UnknownStateError is returned when an operation references a state name
// that was never added to the chain.
type UnknownStateError struct {
	Name string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("markov: state '%s' does not exist", e.Name)
}

// NotTerminalError is returned when unmarking a state that is not terminal.
type NotTerminalError struct {
	Name string
}

func (e *NotTerminalError) Error() string {
	return fmt.Sprintf("markov: state '%s' is not a terminal state", e.Name)
}

// HistoryLengthError is returned when a history does not contain exactly
// `order` state names.
type HistoryLengthError struct {
	Want int
	Got  int
}

func (e *HistoryLengthError) Error() string {
	return fmt.Sprintf("markov: state history must have size %d, got %d", e.Want, e.Got)
}

// NoTransitionError is returned when a walk reaches a history for which no
// transitions have been registered.
type NoTransitionError struct {
	History []string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("markov: no transitions registered for history [%s]", strings.Join(e.History, ", "))
}

// InvalidWeightError is returned when a transition weight is negative, NaN or
// infinite.
type InvalidWeightError struct {
	Weight float64
}

func (e *InvalidWeightError) Error() string {
	return fmt.Sprintf("markov: transition weight must be a finite non-negative number, got %v", e.Weight)
}

// IsInvalidOrderError reports whether err wraps an *InvalidOrderError.
func IsInvalidOrderError(err error) bool {
	var e *InvalidOrderError
	return errors.As(err, &e)
}

// IsDuplicateStateError reports whether err wraps a *DuplicateStateError.
func IsDuplicateStateError(err error) bool {
	var e *DuplicateStateError
	return errors.As(err, &e)
}

// IsUnknownStateError reports whether err wraps an *UnknownStateError.
func IsUnknownStateError(err error) bool {
	var e *UnknownStateError
	return errors.As(err, &e)
}

// IsNotTerminalError reports whether err wraps a *NotTerminalError.
func IsNotTerminalError(err error) bool {
	var e *NotTerminalError
	return errors.As(err, &e)
}

// IsHistoryLengthError reports whether err wraps a *HistoryLengthError.
func IsHistoryLengthError(err error) bool {
	var e *HistoryLengthError
	return errors.As(err, &e)
}

// IsNoTransitionError reports whether err wraps a *NoTransitionError.
func IsNoTransitionError(err error) bool {
	var e *NoTransitionError
	return errors.As(err, &e)
}

// IsInvalidWeightError reports whether err wraps an *InvalidWeightError.
func IsInvalidWeightError(err error) bool {
	var e *InvalidWeightError
	return errors.As(err, &e)
}
