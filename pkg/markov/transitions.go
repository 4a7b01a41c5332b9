package markov

import (
	"log/slog"
	"math"
)

// TransitionSet is the weighted collection of possible next states for one
// history. Weights are accumulated, never overwritten, and are normalized only
// when sampling. Entries keep the order in which their names were first added.
type TransitionSet struct {
	next    []string
	weights []float64
	index   map[string]int
}

func newTransitionSet() *TransitionSet {
	return &TransitionSet{index: make(map[string]int)}
}

// add accumulates weight into the entry for next.
func (ts *TransitionSet) add(next string, weight float64) {
	if i, ok := ts.index[next]; ok {
		ts.weights[i] += weight
		return
	}
	ts.index[next] = len(ts.next)
	ts.next = append(ts.next, next)
	ts.weights = append(ts.weights, weight)
}

// Len returns the number of distinct next states.
func (ts *TransitionSet) Len() int {
	return len(ts.next)
}

// Weight returns the accumulated weight for next, or 0 if there is none.
func (ts *TransitionSet) Weight(next string) float64 {
	if i, ok := ts.index[next]; ok {
		return ts.weights[i]
	}
	return 0
}

// Total returns the sum of all weights in the set.
func (ts *TransitionSet) Total() float64 {
	var sum float64
	for _, w := range ts.weights {
		sum += w
	}
	return sum
}

// Next returns the candidate next-state names in iteration order.
func (ts *TransitionSet) Next() []string {
	names := make([]string, len(ts.next))
	copy(names, ts.next)
	return names
}

// Sample picks a next state in proportion to its weight. A uniform draw r in
// [0, 1) is compared against each normalized weight in turn; the first entry
// whose normalized weight exceeds what is left of r wins, otherwise its
// weight is subtracted from r. If rounding exhausts the entries without a
// winner, the last visited entry with a non-zero weight is returned.
// Sample reports false when the set carries no positive weight.
func (ts *TransitionSet) Sample(src Source) (string, bool) {
	sum := ts.Total()
	if !(sum > 0) {
		return "", false
	}

	rng := src.Float64()
	var next string
	for i, w := range ts.weights {
		if w == 0 {
			continue
		}
		normWeight := w / sum
		next = ts.next[i]
		if normWeight > rng {
			return next, true
		}
		rng -= normWeight
	}
	// floating point error
	return next, true
}

// AddTransition adds weight to the transition from the given history to next.
// The history lists exactly Order() state names, oldest first: {"B", "A", "C"}
// is a transition out of C when it was preceded by A, which was preceded by B.
// Every history name must be registered; next is not checked against the
// registry. Adding the same (history, next) pair again sums the weights.
func (c *Chain[E]) AddTransition(history []string, next string, weight float64) error {
	if err := c.checkHistory(history); err != nil {
		return err
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return &InvalidWeightError{Weight: weight}
	}

	key, _ := c.keyOf(history)
	ts, ok := c.transitions[key]
	if !ok {
		ts = newTransitionSet()
		c.transitions[key] = ts
	}
	ts.add(next, weight)

	if !c.HasState(next) {
		c.logger.Debug("Transition targets an unregistered state",
			slog.String("next_state", next),
			slog.Any("history", history),
		)
	}
	return nil
}

// AddTransition1 is shorthand for AddTransition with a one-state history.
func (c *Chain[E]) AddTransition1(prev, next string, weight float64) error {
	return c.AddTransition([]string{prev}, next, weight)
}

// AddTransition2 is shorthand for AddTransition with a two-state history.
func (c *Chain[E]) AddTransition2(prev1, prev2, next string, weight float64) error {
	return c.AddTransition([]string{prev1, prev2}, next, weight)
}

// Transitions returns the transition set registered for history. It fails
// like AddTransition for malformed histories and with a NoTransitionError when
// the history is valid but has no transitions.
func (c *Chain[E]) Transitions(history []string) (*TransitionSet, error) {
	if err := c.checkHistory(history); err != nil {
		return nil, err
	}
	key, _ := c.keyOf(history)
	ts, ok := c.transitions[key]
	if !ok {
		return nil, &NoTransitionError{History: append([]string(nil), history...)}
	}
	return ts, nil
}
