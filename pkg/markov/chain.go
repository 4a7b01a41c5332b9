package markov

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"strconv"
)

// DefaultMaxSteps is the step limit used by RunToTerminalDefault.
const DefaultMaxSteps = 1000

// Source is the random number source used when sampling transitions.
// Float64 must return a value in [0, 1). *rand.Rand from math/rand/v2
// satisfies it.
type Source interface {
	Float64() float64
}

// globalSource draws from the math/rand/v2 top-level generator.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// state is a single registered entry of the state registry.
type state[E any] struct {
	id       int
	payload  E
	terminal bool
}

// historyKey is the immutable lookup key for a history window. It holds the
// registry ids of the window's names, oldest first, separated by spaces.
type historyKey string

// chainOptions holds the settings that ChainOption functions configure.
type chainOptions struct {
	source Source
	logger *slog.Logger
}

// ChainOption is a function that configures a Chain at construction time.
type ChainOption func(*chainOptions)

// WithSource sets the random source used by the chain's default walker and
// by any walker created with a nil source.
func WithSource(src Source) ChainOption {
	return func(o *chainOptions) { o.source = src }
}

// WithLogger sets the logger used by the chain. Equivalent to calling SetLogger.
func WithLogger(logger *slog.Logger) ChainOption {
	return func(o *chainOptions) { o.logger = logger }
}

// Chain is an order-N Markov chain over named states carrying payloads of
// type E. It holds the state registry, the history-keyed transition table and
// one default Walker. The definition may be shared by several walkers created
// with NewWalker once building is complete; it must not be mutated while any
// of them is walking.
type Chain[E any] struct {
	order       int
	states      map[string]*state[E]
	names       []string
	transitions map[historyKey]*TransitionSet
	source      Source
	logger      *slog.Logger
	walker      *Walker[E]
}

// NewChain creates an empty chain of the given order. The order is the number
// of most recent states used to pick the next one and must be at least 1.
func NewChain[E any](order int, opts ...ChainOption) (*Chain[E], error) {
	if order < 1 {
		return nil, &InvalidOrderError{Order: order}
	}

	options := &chainOptions{
		source: globalSource{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.source == nil {
		options.source = globalSource{}
	}

	c := &Chain[E]{
		order:       order,
		states:      make(map[string]*state[E]),
		transitions: make(map[historyKey]*TransitionSet),
		source:      options.source,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	c.SetLogger(options.logger)
	c.walker = c.NewWalker(nil)
	return c, nil
}

// MustNewChain is like NewChain but panics on an invalid order.
func MustNewChain[E any](order int, opts ...ChainOption) *Chain[E] {
	c, err := NewChain[E](order, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// SetLogger sets the logger for the chain. By default, all logs are discarded.
func (c *Chain[E]) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Order returns the number of states that make up a history.
func (c *Chain[E]) Order() int {
	return c.order
}

// AddState registers a new non-terminal state.
func (c *Chain[E]) AddState(name string, payload E) error {
	if _, ok := c.states[name]; ok {
		return &DuplicateStateError{Name: name}
	}
	c.states[name] = &state[E]{id: len(c.names), payload: payload}
	c.names = append(c.names, name)
	return nil
}

// AddTerminalState registers a new state and marks it terminal.
func (c *Chain[E]) AddTerminalState(name string, payload E) error {
	if err := c.AddState(name, payload); err != nil {
		return err
	}
	c.states[name].terminal = true
	return nil
}

// ChangeState replaces the payload of an existing state. The terminal flag is
// left untouched.
func (c *Chain[E]) ChangeState(name string, payload E) error {
	s, ok := c.states[name]
	if !ok {
		return &UnknownStateError{Name: name}
	}
	s.payload = payload
	return nil
}

// MakeStateTerminal marks an existing state as terminal.
func (c *Chain[E]) MakeStateTerminal(name string) error {
	s, ok := c.states[name]
	if !ok {
		return &UnknownStateError{Name: name}
	}
	s.terminal = true
	return nil
}

// MakeStateNonterminal clears the terminal flag of a terminal state.
func (c *Chain[E]) MakeStateNonterminal(name string) error {
	s, ok := c.states[name]
	if !ok || !s.terminal {
		return &NotTerminalError{Name: name}
	}
	s.terminal = false
	return nil
}

// IsTerminal reports whether name is a registered terminal state. Unknown
// names are never terminal.
func (c *Chain[E]) IsTerminal(name string) bool {
	s, ok := c.states[name]
	return ok && s.terminal
}

// HasState reports whether name has been registered.
func (c *Chain[E]) HasState(name string) bool {
	_, ok := c.states[name]
	return ok
}

// State returns the payload stored for name.
func (c *Chain[E]) State(name string) (E, bool) {
	s, ok := c.states[name]
	if !ok {
		var zero E
		return zero, false
	}
	return s.payload, true
}

// States returns the registered state names in registration order.
func (c *Chain[E]) States() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// payloadOf returns the payload for name, or the zero value when the name was
// never registered (a transition target is not required to exist).
func (c *Chain[E]) payloadOf(name string) E {
	if s, ok := c.states[name]; ok {
		return s.payload
	}
	var zero E
	return zero
}

// checkHistory validates the length and membership of a history window.
func (c *Chain[E]) checkHistory(history []string) error {
	if len(history) != c.order {
		return &HistoryLengthError{Want: c.order, Got: len(history)}
	}
	for _, name := range history {
		if _, ok := c.states[name]; !ok {
			return &UnknownStateError{Name: name}
		}
	}
	return nil
}

// keyOf builds the lookup key for a history window. It reports false if any
// name in the window is not registered, in which case no key can exist.
func (c *Chain[E]) keyOf(history []string) (historyKey, bool) {
	var keyBuf []byte
	for j, name := range history {
		s, ok := c.states[name]
		if !ok {
			return "", false
		}
		if j > 0 {
			keyBuf = append(keyBuf, ' ')
		}
		keyBuf = strconv.AppendInt(keyBuf, int64(s.id), 10)
	}
	return historyKey(keyBuf), true
}

// Start resets the chain's default walker. See Walker.Start.
func (c *Chain[E]) Start(first string) error {
	return c.walker.Start(first)
}

// Step advances the chain's default walker. See Walker.Step.
func (c *Chain[E]) Step() (E, error) {
	return c.walker.Step()
}

// RunToTerminal drives the chain's default walker. See Walker.RunToTerminal.
func (c *Chain[E]) RunToTerminal(maxSteps int) ([]E, error) {
	return c.walker.RunToTerminal(maxSteps)
}

// RunToTerminalDefault drives the default walker for at most DefaultMaxSteps.
func (c *Chain[E]) RunToTerminalDefault() ([]E, error) {
	return c.walker.RunToTerminal(DefaultMaxSteps)
}

// RunToLength drives the chain's default walker. See Walker.RunToLength.
func (c *Chain[E]) RunToLength(length int) ([]E, error) {
	return c.walker.RunToLength(length)
}

// CurrentStateName returns the most recent state of the default walker.
func (c *Chain[E]) CurrentStateName() (string, error) {
	return c.walker.CurrentStateName()
}

// CurrentState returns the payload of the default walker's most recent state.
func (c *Chain[E]) CurrentState() (E, error) {
	return c.walker.CurrentState()
}

// IsCurrentStateTerminal reports whether the default walker sits on a
// terminal state.
func (c *Chain[E]) IsCurrentStateTerminal() bool {
	return c.walker.IsCurrentStateTerminal()
}
