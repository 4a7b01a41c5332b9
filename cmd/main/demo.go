package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"text/tabwriter"

	"github.com/CTAG07/Bramble/pkg/markov"
	"github.com/CTAG07/Bramble/pkg/tally"
)

// startState is where every demonstration walk begins.
const startState = "Start"

// Demo drives the demonstration walks over one scenario chain.
type Demo struct {
	config *Config
	chain  *markov.Chain[string]
	store  *tally.Store
	logger *slog.Logger
	out    io.Writer
}

// newSource returns a seeded source, or nil to use the global one.
func newSource(seed uint64) markov.Source {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// NewDemo builds the configured scenario chain.
func NewDemo(config *Config, store *tally.Store, logger *slog.Logger, out io.Writer) (*Demo, error) {
	chain, err := buildScenario(config.Scenario, markov.WithSource(newSource(config.Seed)), markov.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build scenario: %w", err)
	}
	return &Demo{
		config: config,
		chain:  chain,
		store:  store,
		logger: logger,
		out:    out,
	}, nil
}

// Run performs the terminal walk, the fixed-length walk, and the first-step
// frequency check, printing each to the demo output.
func (d *Demo) Run(ctx context.Context) error {
	if err := d.runToTerminal(); err != nil {
		return err
	}
	if err := d.runToLength(); err != nil {
		return err
	}
	return d.checkFrequencies(ctx)
}

func (d *Demo) runToTerminal() error {
	_, _ = fmt.Fprintln(d.out, "Running to Terminal")
	if err := d.chain.Start(startState); err != nil {
		return err
	}
	payloads, err := d.chain.RunToTerminal(d.config.MaxSteps)
	d.printPayloads(payloads)
	if err != nil {
		d.logger.Warn("Walk to terminal ended early", "steps", len(payloads), "error", err)
	}
	return nil
}

func (d *Demo) runToLength() error {
	_, _ = fmt.Fprintf(d.out, "Running to Length (%d)\n", d.config.RunLength)
	if err := d.chain.Start(startState); err != nil {
		return err
	}
	payloads, err := d.chain.RunToLength(d.config.RunLength)
	d.printPayloads(payloads)
	if err != nil {
		d.logger.Warn("Walk to length ended early", "steps", len(payloads), "error", err)
	}
	return nil
}

func (d *Demo) printPayloads(payloads []string) {
	for _, p := range payloads {
		_, _ = fmt.Fprintln(d.out, p)
	}
}

// startHistory is the history every walk begins with.
func (d *Demo) startHistory() []string {
	history := make([]string, d.chain.Order())
	for i := range history {
		history[i] = startState
	}
	return history
}

// checkFrequencies takes one step from the start many times, records every
// outcome in the tally store and prints observed against expected shares.
func (d *Demo) checkFrequencies(ctx context.Context) error {
	history := d.startHistory()
	_, _ = fmt.Fprintf(d.out, "Checking %s -> ? probabilities\n", strings.Join(history, " "))

	run := d.config.Scenario
	if err := d.store.Reset(ctx, run); err != nil {
		return err
	}

	outcomes := make([]string, 0, d.config.Trials)
	for i := 0; i < d.config.Trials; i++ {
		if err := d.chain.Start(startState); err != nil {
			return err
		}
		payload, err := d.chain.Step()
		if err != nil {
			return fmt.Errorf("frequency trial %d failed: %w", i, err)
		}
		outcomes = append(outcomes, payload)
	}
	if err := d.store.RecordAll(ctx, run, outcomes); err != nil {
		return err
	}

	counts, err := d.store.Counts(ctx, run)
	if err != nil {
		return err
	}

	expected := make(map[string]float64)
	if ts, err := d.chain.Transitions(history); err == nil {
		for _, next := range ts.Next() {
			payload, _ := d.chain.State(next)
			expected[payload] += ts.Weight(next) / ts.Total()
		}
	}

	tw := tabwriter.NewWriter(d.out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "outcome\thits\tobserved\texpected")
	for _, c := range counts {
		observed := float64(c.Hits) / float64(max(d.config.Trials, 1))
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\n", c.Outcome, c.Hits, observed, expected[c.Outcome])
	}
	if err = tw.Flush(); err != nil {
		return err
	}

	d.logger.Info("Frequency check complete",
		slog.String("scenario", run),
		slog.Int("trials", d.config.Trials),
		slog.Int("distinct_outcomes", len(counts)),
	)
	return nil
}

// printTally writes the stored counts for every run, or for the given runs.
func printTally(ctx context.Context, store *tally.Store, out io.Writer, runs []string) error {
	if len(runs) == 0 {
		var err error
		if runs, err = store.Runs(ctx); err != nil {
			return err
		}
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "run\toutcome\thits")
	for _, run := range runs {
		counts, err := store.Counts(ctx, run)
		if err != nil {
			return fmt.Errorf("failed to read tally for run %q: %w", run, err)
		}
		for _, c := range counts {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\n", run, c.Outcome, c.Hits)
		}
	}
	return tw.Flush()
}
