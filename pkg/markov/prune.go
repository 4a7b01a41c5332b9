package markov

import (
	"log/slog"
)

// Prune removes every transition whose accumulated weight is less than or
// equal to minWeight, and drops histories left without transitions. It
// returns the number of transitions removed. This is useful for trimming
// rare, noisy links out of a chain built by Train.
func (c *Chain[E]) Prune(minWeight float64) int {
	removed := 0
	histories := 0
	for key, ts := range c.transitions {
		kept := newTransitionSet()
		for i, next := range ts.next {
			if ts.weights[i] <= minWeight {
				removed++
				continue
			}
			kept.add(next, ts.weights[i])
		}
		if kept.Len() == 0 {
			delete(c.transitions, key)
			histories++
			continue
		}
		c.transitions[key] = kept
	}

	c.logger.Info("Chain pruned",
		slog.Float64("min_weight", minWeight),
		slog.Int("transitions_removed", removed),
		slog.Int("histories_removed", histories),
	)
	return removed
}
