package markov

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestStream(t *testing.T) {
	t.Run("Stops at terminal state", func(t *testing.T) {
		c := newFirstOrderChain(t, 21)
		w := c.NewWalker(nil)
		mustDo(t, w.Start("Start"))

		var payloads []string
		for payload := range w.Stream(context.Background(), 1000) {
			payloads = append(payloads, payload)
		}
		if len(payloads) == 0 || payloads[len(payloads)-1] != "Frank" {
			t.Errorf("expected the stream to end with Frank, got %v", payloads)
		}
		if w.Steps() != len(payloads) {
			t.Errorf("Steps() = %d, streamed %d", w.Steps(), len(payloads))
		}
	})

	t.Run("Dead end is told apart after close", func(t *testing.T) {
		c := MustNewChain[string](1)
		mustDo(t, c.AddState("Start", ""))
		mustDo(t, c.AddState("Edge", "edge"))
		mustDo(t, c.AddTransition1("Start", "Edge", 1))
		w := c.NewWalker(nil)
		mustDo(t, w.Start("Start"))

		var payloads []string
		for payload := range w.Stream(context.Background(), 10) {
			payloads = append(payloads, payload)
		}
		if diff := cmp.Diff([]string{"edge"}, payloads); diff != "" {
			t.Errorf("payloads mismatch (-want +got):\n%s", diff)
		}
		if w.IsCurrentStateTerminal() || w.Steps() != 1 {
			t.Errorf("expected a non-terminal stop after 1 step, got terminal=%v steps=%d", w.IsCurrentStateTerminal(), w.Steps())
		}
		if _, err := c.Transitions(w.History()); !IsNoTransitionError(err) {
			t.Errorf("expected the final history to be a dead end, got %v", err)
		}
	})

	t.Run("Stops at maxSteps", func(t *testing.T) {
		c := MustNewChain[int](1)
		mustDo(t, c.AddState("Loop", 1))
		mustDo(t, c.AddTransition1("Loop", "Loop", 1))
		w := c.NewWalker(nil)
		mustDo(t, w.Start("Loop"))

		var payloads []int
		for payload := range w.Stream(context.Background(), 5) {
			payloads = append(payloads, payload)
		}
		if diff := cmp.Diff([]int{1, 1, 1, 1, 1}, payloads); diff != "" {
			t.Errorf("stream mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Stops on unstarted walker", func(t *testing.T) {
		c := newFirstOrderChain(t, 1)
		count := 0
		for range c.NewWalker(nil).Stream(context.Background(), 10) {
			count++
		}
		if count != 0 {
			t.Errorf("unstarted walker streamed %d payloads", count)
		}
	})

	t.Run("Stream cancellation", func(t *testing.T) {
		c := MustNewChain[int](1)
		mustDo(t, c.AddState("Loop", 1))
		mustDo(t, c.AddTransition1("Loop", "Loop", 1))
		w := c.NewWalker(nil)
		mustDo(t, w.Start("Loop"))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		stream := w.Stream(ctx, 1_000_000)

		// Read one payload, then cancel
		<-stream
		cancel()

		// The channel should now close quickly
		timeout := time.After(time.Second)
		for {
			select {
			case _, ok := <-stream:
				if !ok {
					return
				}
			case <-timeout:
				t.Fatal("timed out waiting for stream channel to close after cancellation")
			}
		}
	})
}
