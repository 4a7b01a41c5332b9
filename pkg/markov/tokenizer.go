package markov

import (
	"bufio"
	"io"
	"iter"
	"strings"
	"unicode/utf8"
)

// WordTokenizer splits text on white space. Punctuation marks are split off
// into states of their own, and a terminator mark also ends the sentence it
// follows. Sentences may span lines.
type WordTokenizer struct {
	terminators string
	marks       string
	maxWords    int
}

// WordOption configures a WordTokenizer.
type WordOption func(*WordTokenizer)

// WithTerminators sets the marks that end a sentence. The first one closes
// rendered text that stopped before a terminator. Default: ".!?"
func WithTerminators(marks string) WordOption {
	return func(t *WordTokenizer) {
		if marks != "" {
			t.terminators = marks
		}
	}
}

// WithMarks sets the punctuation that is split off words but does not end a
// sentence. Default: ",;:"
func WithMarks(marks string) WordOption {
	return func(t *WordTokenizer) { t.marks = marks }
}

// WithMaxWords caps the states kept per sentence; the rest of an overlong
// sentence is skipped up to its terminator. Default: 4096
func WithMaxWords(n int) WordOption {
	return func(t *WordTokenizer) {
		if n > 0 {
			t.maxWords = n
		}
	}
}

// NewWordTokenizer returns a WordTokenizer with defaults overridden by opts.
func NewWordTokenizer(opts ...WordOption) *WordTokenizer {
	t := &WordTokenizer{
		terminators: ".!?",
		marks:       ",;:",
		maxWords:    4096,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Sentences yields the sentences of r, each closed by EOCState.
func (t *WordTokenizer) Sentences(r io.Reader) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Split(bufio.ScanWords)

		var sentence []string
		for scanner.Scan() {
			for _, piece := range t.split(scanner.Text()) {
				end := t.isTerminator(piece)
				if end && len(sentence) == 0 {
					continue
				}
				if end || len(sentence) < t.maxWords {
					sentence = append(sentence, piece)
				}
				if end {
					if !yield(append(sentence, EOCState), nil) {
						return
					}
					sentence = nil
				}
			}
		}
		if err := scanner.Err(); err != nil {
			yield(nil, err)
			return
		}
		if len(sentence) > 0 {
			yield(append(sentence, EOCState), nil)
		}
	}
}

// Render joins names with single spaces, attaching marks and terminators to
// the word before them. Text that does not end in a terminator is closed with
// the first one.
func (t *WordTokenizer) Render(names []string) string {
	var builder strings.Builder
	last := ""
	for _, name := range names {
		if name == EOCState {
			break
		}
		if builder.Len() > 0 && !t.isMark(name) && !t.isTerminator(name) {
			builder.WriteByte(' ')
		}
		builder.WriteString(name)
		last = name
	}
	if last == "" || t.isTerminator(last) {
		return builder.String()
	}
	_, size := utf8.DecodeRuneInString(t.terminators)
	text := builder.String()
	if t.isMark(last) {
		// A dangling mark is replaced by the terminator.
		text = text[:len(text)-len(last)]
	}
	return text + t.terminators[:size]
}

// split cuts a white-space free field into words and single-rune marks.
func (t *WordTokenizer) split(field string) []string {
	var pieces []string
	start := 0
	for i, r := range field {
		if !strings.ContainsRune(t.terminators, r) && !strings.ContainsRune(t.marks, r) {
			continue
		}
		if start < i {
			pieces = append(pieces, field[start:i])
		}
		start = i + utf8.RuneLen(r)
		pieces = append(pieces, field[i:start])
	}
	if start < len(field) {
		pieces = append(pieces, field[start:])
	}
	return pieces
}

func (t *WordTokenizer) isTerminator(name string) bool {
	return isRune(name) && strings.Contains(t.terminators, name)
}

func (t *WordTokenizer) isMark(name string) bool {
	return isRune(name) && strings.Contains(t.marks, name)
}

func isRune(s string) bool {
	return s != "" && utf8.RuneCountInString(s) == 1
}
