package markov

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewChainOrder(t *testing.T) {
	for _, order := range []int{0, -1, -8} {
		_, err := NewChain[int](order)
		if !IsInvalidOrderError(err) {
			t.Errorf("NewChain(%d): expected InvalidOrderError, got %v", order, err)
		}
	}

	c, err := NewChain[int](3)
	if err != nil {
		t.Fatalf("NewChain(3) failed: %v", err)
	}
	if c.Order() != 3 {
		t.Errorf("expected order 3, got %d", c.Order())
	}

	defer func() {
		if recover() == nil {
			t.Error("MustNewChain(0) should panic")
		}
	}()
	MustNewChain[int](0)
}

func TestStateRegistry(t *testing.T) {
	c := MustNewChain[string](1)

	if err := c.AddState("A", "Alice"); err != nil {
		t.Fatalf("AddState failed: %v", err)
	}
	if err := c.AddTerminalState("F", "Frank"); err != nil {
		t.Fatalf("AddTerminalState failed: %v", err)
	}

	// Duplicate names are rejected, terminal or not.
	var dup *DuplicateStateError
	if err := c.AddState("A", "Again"); !errors.As(err, &dup) || dup.Name != "A" {
		t.Errorf("expected DuplicateStateError for 'A', got %v", err)
	}
	if err := c.AddTerminalState("A", "Again"); !IsDuplicateStateError(err) {
		t.Errorf("expected DuplicateStateError from AddTerminalState, got %v", err)
	}
	if payload, _ := c.State("A"); payload != "Alice" {
		t.Errorf("duplicate add must not change payload, got %q", payload)
	}

	if err := c.ChangeState("A", "Alicia"); err != nil {
		t.Fatalf("ChangeState failed: %v", err)
	}
	if payload, ok := c.State("A"); !ok || payload != "Alicia" {
		t.Errorf("expected payload 'Alicia', got %q (ok=%v)", payload, ok)
	}
	if err := c.ChangeState("Z", "Zed"); !IsUnknownStateError(err) {
		t.Errorf("expected UnknownStateError from ChangeState, got %v", err)
	}

	// ChangeState leaves the terminal flag alone.
	if err := c.ChangeState("F", "Frankie"); err != nil {
		t.Fatalf("ChangeState failed: %v", err)
	}
	if !c.IsTerminal("F") {
		t.Error("ChangeState must not clear the terminal flag")
	}

	if got := c.States(); !cmp.Equal(got, []string{"A", "F"}) {
		t.Errorf("States() diff (-want +got):\n%s", cmp.Diff([]string{"A", "F"}, got))
	}
	if _, ok := c.State("Z"); ok {
		t.Error("State('Z') should report false")
	}
}

func TestTerminalFlags(t *testing.T) {
	c := MustNewChain[int](1)
	mustDo(t, c.AddState("A", 1))

	if c.IsTerminal("A") {
		t.Error("new state should not be terminal")
	}
	if c.IsTerminal("missing") {
		t.Error("unknown names are never terminal")
	}

	if err := c.MakeStateTerminal("missing"); !IsUnknownStateError(err) {
		t.Errorf("expected UnknownStateError, got %v", err)
	}
	if err := c.MakeStateNonterminal("A"); !IsNotTerminalError(err) {
		t.Errorf("expected NotTerminalError for non-terminal state, got %v", err)
	}
	if err := c.MakeStateNonterminal("missing"); !IsNotTerminalError(err) {
		t.Errorf("expected NotTerminalError for unknown state, got %v", err)
	}

	// Toggle any number of times.
	for i := 0; i < 3; i++ {
		if err := c.MakeStateTerminal("A"); err != nil {
			t.Fatalf("MakeStateTerminal failed: %v", err)
		}
		if !c.IsTerminal("A") {
			t.Fatal("expected 'A' to be terminal")
		}
		if err := c.MakeStateNonterminal("A"); err != nil {
			t.Fatalf("MakeStateNonterminal failed: %v", err)
		}
		if c.IsTerminal("A") {
			t.Fatal("expected 'A' to be non-terminal")
		}
	}
}

func TestStats(t *testing.T) {
	c := newFirstOrderChain(t, 1)
	stats := c.Stats()

	if math.Abs(stats.TotalWeight-8.9) > 1e-9 {
		t.Errorf("expected total weight 8.9, got %v", stats.TotalWeight)
	}
	stats.TotalWeight = 0
	want := Stats{States: 7, TerminalStates: 1, Histories: 7, Transitions: 21}
	if stats != want {
		t.Errorf("unexpected stats: got %+v, want %+v", stats, want)
	}
}
