package markov

import (
	"go/build"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// newTestSource returns a deterministic random source.
func newTestSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// fixedSource always returns the same draw. Values at or above 1 force the
// sampling fallback.
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

// mustDo fails the test immediately on a build error.
func mustDo(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("chain setup failed: %v", err)
	}
}

// newFirstOrderChain builds the first-order acceptance chain.
func newFirstOrderChain(t testing.TB, seed uint64) *Chain[string] {
	t.Helper()
	c, err := NewChain[string](1, WithSource(newTestSource(seed)))
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	mustDo(t, c.AddState("Start", ""))
	mustDo(t, c.AddState("A", "Alice"))
	mustDo(t, c.AddState("B", "Bob"))
	mustDo(t, c.AddState("C", "Carol"))
	mustDo(t, c.AddState("D", "Dan"))
	mustDo(t, c.AddState("E", "Eve"))
	mustDo(t, c.AddTerminalState("F", "Frank"))

	links := []struct {
		from, to string
		weight   float64
	}{
		{"Start", "A", .1}, {"Start", "B", .3}, {"Start", "C", .1}, {"Start", "D", .1}, {"Start", "E", .3},
		{"A", "B", .25}, {"A", "D", .65}, {"A", "F", .1},
		{"B", "A", .3}, {"B", "C", .7},
		{"C", "B", .25}, {"C", "D", .65}, {"C", "F", .1},
		{"D", "A", .3}, {"D", "C", .7},
		{"E", "B", .25}, {"E", "D", .65}, {"E", "F", .1},
		{"F", "A", 1}, {"F", "C", 1}, {"F", "E", 1},
	}
	for _, l := range links {
		mustDo(t, c.AddTransition1(l.from, l.to, l.weight))
	}
	return c
}

// newSecondOrderChain builds a second-order chain with the acceptance
// weights out of ["Start", "Start"] and a few follow-up histories.
func newSecondOrderChain(t testing.TB, seed uint64) *Chain[string] {
	t.Helper()
	c, err := NewChain[string](2, WithSource(newTestSource(seed)))
	if err != nil {
		t.Fatalf("NewChain() error = %v", err)
	}

	mustDo(t, c.AddState("Start", ""))
	mustDo(t, c.AddState("A", "Alice"))
	mustDo(t, c.AddState("B", "Bob"))
	mustDo(t, c.AddState("C", "Carol"))
	mustDo(t, c.AddState("D", "Dan"))
	mustDo(t, c.AddTerminalState("F", "Frank"))

	mustDo(t, c.AddTransition2("Start", "Start", "A", .1))
	mustDo(t, c.AddTransition2("Start", "Start", "B", .3))
	mustDo(t, c.AddTransition2("Start", "Start", "C", .1))
	mustDo(t, c.AddTransition2("Start", "A", "D", .25))
	mustDo(t, c.AddTransition2("Start", "B", "F", 1))
	mustDo(t, c.AddTransition2("Start", "C", "F", 1))
	mustDo(t, c.AddTransition2("A", "D", "F", 1))
	return c
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
