package main

import (
	"fmt"

	"github.com/CTAG07/Bramble/pkg/markov"
)

// link is one weighted transition of a demo chain.
type link struct {
	history []string
	next    string
	weight  float64
}

// demoStates are the states shared by both scenarios, in registration order.
var demoStates = []struct {
	name, payload string
	terminal      bool
}{
	{"Start", "", false},
	{"A", "Alice", false},
	{"B", "Bob", false},
	{"C", "Carol", false},
	{"D", "Dan", false},
	{"E", "Eve", false},
	{"F", "Frank", true},
}

func h(names ...string) []string { return names }

var firstOrderLinks = []link{
	{h("Start"), "A", .1}, {h("Start"), "B", .3}, {h("Start"), "C", .1}, {h("Start"), "D", .1}, {h("Start"), "E", .3},
	{h("A"), "B", .25}, {h("A"), "D", .65}, {h("A"), "F", .1},
	{h("B"), "A", .3}, {h("B"), "C", .7},
	{h("C"), "B", .25}, {h("C"), "D", .65}, {h("C"), "F", .1},
	{h("D"), "A", .3}, {h("D"), "C", .7},
	{h("E"), "B", .25}, {h("E"), "D", .65}, {h("E"), "F", .1},
	{h("F"), "A", 1}, {h("F"), "C", 1}, {h("F"), "E", 1},
}

var secondOrderLinks = []link{
	{h("Start", "Start"), "A", .1}, {h("Start", "Start"), "B", .3}, {h("Start", "Start"), "C", .1},

	{h("Start", "A"), "D", .25},
	{h("D", "A"), "B", .25}, {h("D", "A"), "D", .25}, {h("D", "A"), "F", .25},
	{h("B", "A"), "D", .25}, {h("B", "A"), "B", .25},
	{h("C", "A"), "B", .5}, {h("C", "A"), "C", .2},
	{h("F", "A"), "C", .2},

	{h("Start", "B"), "A", .3}, {h("Start", "B"), "B", .1}, {h("Start", "B"), "C", .3}, {h("Start", "B"), "D", .7},
	{h("A", "B"), "C", .3},
	{h("B", "B"), "C", .3}, {h("B", "B"), "A", .3},
	{h("C", "B"), "C", .4}, {h("C", "B"), "F", .1},
	{h("F", "B"), "F", .1},

	{h("Start", "C"), "B", .25},
	{h("A", "C"), "F", .25},
	{h("B", "C"), "D", .25}, {h("B", "C"), "A", .25},
	{h("D", "C"), "B", .25}, {h("D", "C"), "F", .25},
	{h("F", "C"), "F", .25},

	{h("A", "D"), "A", .3}, {h("A", "D"), "C", .3}, {h("A", "D"), "F", .1},
	{h("B", "D"), "C", .3}, {h("B", "D"), "F", .1},
	{h("C", "D"), "A", .3}, {h("C", "D"), "F", .1},
	{h("F", "D"), "A", .1},

	{h("A", "F"), "A", 1}, {h("B", "F"), "B", 1}, {h("C", "F"), "C", 1}, {h("D", "F"), "D", 1},
}

// buildScenario constructs one of the demonstration chains.
func buildScenario(name string, opts ...markov.ChainOption) (*markov.Chain[string], error) {
	var order int
	var links []link
	switch name {
	case scenarioFirstOrder:
		order, links = 1, firstOrderLinks
	case scenarioSecondOrder:
		order, links = 2, secondOrderLinks
	default:
		return nil, fmt.Errorf("unknown scenario %q", name)
	}

	chain, err := markov.NewChain[string](order, opts...)
	if err != nil {
		return nil, err
	}
	for _, s := range demoStates {
		if s.terminal {
			err = chain.AddTerminalState(s.name, s.payload)
		} else {
			err = chain.AddState(s.name, s.payload)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to add state %s: %w", s.name, err)
		}
	}
	for _, l := range links {
		if err = chain.AddTransition(l.history, l.next, l.weight); err != nil {
			return nil, fmt.Errorf("failed to add transition %v -> %s: %w", l.history, l.next, err)
		}
	}
	return chain, nil
}
