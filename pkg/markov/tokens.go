package markov

import (
	"io"
	"iter"
)

const (
	// SOCState is the reserved Start-Of-Chain state that Train seeds every
	// sentence history with.
	SOCState = "<SOC>"
	// EOCState is the reserved terminal End-Of-Chain state that closes every
	// sentence.
	EOCState = "<EOC>"
)

// Tokenizer maps text to state names and back. Train consumes its sentences
// and Generate renders walks with it.
type Tokenizer interface {
	// Sentences yields every sentence of r as a fresh slice of state names
	// ending with EOCState. A read error is yielded once and ends the sequence.
	Sentences(r io.Reader) iter.Seq2[[]string, error]
	// Render turns the state names of one walk into text. Names after
	// EOCState are ignored.
	Render(names []string) string
}
