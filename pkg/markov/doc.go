/*
Package markov implements a generic, order-N Markov chain engine.

A Chain holds named states carrying an opaque payload of any type, the weighted
transitions out of every history of the last N visited states, and a set of
terminal states. Walkers simulate random walks over a chain one step at a
time, until a terminal state is entered, or for a fixed number of steps.
Randomness comes from an injectable Source, so walks can be made reproducible
by passing a seeded *rand.Rand.

	c := markov.MustNewChain[string](1)
	_ = c.AddState("Start", "")
	_ = c.AddState("A", "Alice")
	_ = c.AddTerminalState("F", "Frank")
	_ = c.AddTransition1("Start", "A", 1)
	_ = c.AddTransition1("A", "F", 1)
	_ = c.Start("Start")
	names, _ := c.RunToTerminal(10) // ["Alice", "Frank"]

Train and Generate build and walk word-level chains from text.
*/
package markov
