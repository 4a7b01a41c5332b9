package markov

// Stats holds aggregated counts for a chain definition.
type Stats struct {
	States         int     // The number of registered states
	TerminalStates int     // The number of states currently marked terminal
	Histories      int     // The number of histories with at least one transition
	Transitions    int     // The number of unique history->next links
	TotalWeight    float64 // The sum of all link weights
}

// Stats returns a snapshot of the chain's size.
func (c *Chain[E]) Stats() Stats {
	stats := Stats{
		States:    len(c.states),
		Histories: len(c.transitions),
	}
	for _, s := range c.states {
		if s.terminal {
			stats.TerminalStates++
		}
	}
	for _, ts := range c.transitions {
		stats.Transitions += ts.Len()
		stats.TotalWeight += ts.Total()
	}
	return stats
}
