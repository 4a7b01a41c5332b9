package markov

import (
	"log/slog"
)

// Walker is a cursor over a Chain that tracks the last Order() visited state
// names. A walker is not safe for concurrent use; create one per goroutine.
type Walker[E any] struct {
	chain   *Chain[E]
	source  Source
	history []string
	started bool
	steps   int
}

// NewWalker returns a new, unstarted walker over c. A nil src uses the
// chain's source.
func (c *Chain[E]) NewWalker(src Source) *Walker[E] {
	if src == nil {
		src = c.source
	}
	return &Walker[E]{
		chain:   c,
		source:  src,
		history: make([]string, c.order),
	}
}

// Start prepares a new walk. The history is filled with `order` copies of
// first, as if the walk had been sitting on first since before it began.
func (w *Walker[E]) Start(first string) error {
	if !w.chain.HasState(first) {
		return &UnknownStateError{Name: first}
	}
	for i := range w.history {
		w.history[i] = first
	}
	w.started = true
	w.steps = 0
	return nil
}

// Step moves once along the chain and returns the payload of the state moved
// into. Stepping from a terminal state is allowed. If the current history has
// no transitions a NoTransitionError is returned and the walker is unchanged.
func (w *Walker[E]) Step() (E, error) {
	var zero E
	if !w.started {
		return zero, ErrNotStarted
	}

	c := w.chain
	var ts *TransitionSet
	if key, ok := c.keyOf(w.history); ok {
		ts = c.transitions[key]
	}
	var next string
	var ok bool
	if ts != nil {
		next, ok = ts.Sample(w.source)
	}
	if !ok {
		c.logger.Debug("Walk reached a dead end",
			slog.Any("history", w.history),
			slog.Int("steps", w.steps),
		)
		return zero, &NoTransitionError{History: w.History()}
	}

	copy(w.history, w.history[1:])
	w.history[len(w.history)-1] = next
	w.steps++
	return c.payloadOf(next), nil
}

// RunToTerminal steps until a terminal state is entered or maxSteps steps
// have been taken, and returns the payloads of the states moved into. The
// state the walk is sitting on when called is not checked, so at least one
// step is taken whenever maxSteps is positive. If a step fails, the payloads
// collected so far are returned with the error.
func (w *Walker[E]) RunToTerminal(maxSteps int) ([]E, error) {
	payloads := make([]E, 0)
	reachedTerminal := false
	for !reachedTerminal && len(payloads) < maxSteps {
		payload, err := w.Step()
		if err != nil {
			return payloads, err
		}
		payloads = append(payloads, payload)
		reachedTerminal = w.chain.IsTerminal(w.history[len(w.history)-1])
	}

	if reachedTerminal {
		w.chain.logger.Debug("Walk stopped at terminal state",
			slog.String("state", w.history[len(w.history)-1]),
			slog.Int("steps", len(payloads)),
		)
	} else {
		w.chain.logger.Debug("Walk stopped by reaching maxSteps",
			slog.Int("max_steps", maxSteps),
		)
	}
	return payloads, nil
}

// RunToTerminalDefault is RunToTerminal with DefaultMaxSteps.
func (w *Walker[E]) RunToTerminalDefault() ([]E, error) {
	return w.RunToTerminal(DefaultMaxSteps)
}

// RunToLength takes exactly length steps, ignoring terminal states, and
// returns the payloads of the states moved into.
func (w *Walker[E]) RunToLength(length int) ([]E, error) {
	payloads := make([]E, 0, max(length, 0))
	for len(payloads) < length {
		payload, err := w.Step()
		if err != nil {
			return payloads, err
		}
		payloads = append(payloads, payload)
	}
	return payloads, nil
}

// CurrentStateName returns the name of the most recently entered state.
func (w *Walker[E]) CurrentStateName() (string, error) {
	if !w.started {
		return "", ErrNotStarted
	}
	return w.history[len(w.history)-1], nil
}

// CurrentState returns the payload of the most recently entered state.
func (w *Walker[E]) CurrentState() (E, error) {
	name, err := w.CurrentStateName()
	if err != nil {
		var zero E
		return zero, err
	}
	return w.chain.payloadOf(name), nil
}

// IsCurrentStateTerminal reports whether the walker sits on a terminal state.
// It is false before Start.
func (w *Walker[E]) IsCurrentStateTerminal() bool {
	name, err := w.CurrentStateName()
	return err == nil && w.chain.IsTerminal(name)
}

// History returns a copy of the current history, oldest first. It is nil
// before Start.
func (w *Walker[E]) History() []string {
	if !w.started {
		return nil
	}
	history := make([]string, len(w.history))
	copy(history, w.history)
	return history
}

// Steps returns the number of steps taken since the last Start.
func (w *Walker[E]) Steps() int {
	return w.steps
}
