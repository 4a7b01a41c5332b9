package markov

import (
	"fmt"
	"io"
	"log/slog"
)

// Train reads the sentences tok finds in data and adds their transitions to
// c. Every state name a sentence introduces is registered with its own text
// as the payload. Each sentence is walked with a window of c.Order() states,
// starting from a history of SOCState and ending with a transition into the
// terminal EOCState; every window adds weight 1 to its transition, so
// repeated n-grams accumulate. SOCState and EOCState are registered on first
// use.
func Train(c *Chain[string], tok Tokenizer, data io.Reader) error {
	if !c.HasState(SOCState) {
		if err := c.AddState(SOCState, SOCState); err != nil {
			return err
		}
	}
	if !c.HasState(EOCState) {
		if err := c.AddTerminalState(EOCState, EOCState); err != nil {
			return err
		}
	} else if err := c.MakeStateTerminal(EOCState); err != nil {
		return err
	}

	var sentenceCount int64
	for sentence, err := range tok.Sentences(data) {
		if err != nil {
			return fmt.Errorf("tokenizer error: %w", err)
		}
		if len(sentence) == 0 {
			continue
		}
		if err = trainSentence(c, sentence); err != nil {
			return fmt.Errorf("sentence %d: %w", sentenceCount+1, err)
		}
		sentenceCount++
	}

	c.logger.Info("Training completed",
		slog.Int("order", c.order),
		slog.Int64("sentences_processed", sentenceCount),
		slog.Int("states", len(c.states)),
	)
	return nil
}

// trainSentence registers the sentence's states and adds one weight for
// every window of the SOC-padded sentence.
func trainSentence(c *Chain[string], sentence []string) error {
	for _, name := range sentence {
		if !c.HasState(name) {
			if err := c.AddState(name, name); err != nil {
				return err
			}
		}
	}

	window := make([]string, c.order, c.order+len(sentence)+1)
	for i := range window {
		window[i] = SOCState
	}
	window = append(window, sentence...)
	if sentence[len(sentence)-1] != EOCState {
		window = append(window, EOCState)
	}

	for i := 0; i+c.order < len(window); i++ {
		if err := c.AddTransition(window[i:i+c.order], window[i+c.order], 1); err != nil {
			return err
		}
	}
	return nil
}
