package markov

import (
	"context"
	"log/slog"
)

// Stream walks the chain in a separate goroutine and sends the payload of each
// state moved into on the returned channel. The walk stops after a terminal
// state is entered, after maxSteps steps, on a step error (which is logged),
// or when ctx is cancelled; the channel is closed in every case. The walker
// must be started and must not be used by anyone else until the channel is
// closed. The channel does not say why the walk ended; once it is closed,
// IsCurrentStateTerminal, Steps and History tell a terminal stop from a dead
// end or the step limit.
func (w *Walker[E]) Stream(ctx context.Context, maxSteps int) <-chan E {
	payloadChan := make(chan E)

	go func() {
		defer close(payloadChan)

		for taken := 0; taken < maxSteps; taken++ {
			select {
			case <-ctx.Done():
				w.chain.logger.DebugContext(ctx, "Walk stream cancelled by context")
				return
			default:
				// continue
			}

			payload, err := w.Step()
			if err != nil {
				w.chain.logger.ErrorContext(ctx, "Walk stream stopped",
					slog.Int("steps", taken),
					slog.Any("error", err),
				)
				return
			}

			select {
			case <-ctx.Done():
				return
			case payloadChan <- payload:
			}

			if w.IsCurrentStateTerminal() {
				return
			}
		}
	}()

	return payloadChan
}
