// Package generator builds adversarial platform string candidates as gopter
// generators: primitive atoms, recursively nested fragment trees flattened
// by concatenation, and candidates of 0-5 fragments joined by the platform
// separator. No filtering happens here; rejecting bad candidates is the
// oracle's job, so the generator stays maximally adversarial.
package generator

import (
	"reflect"
	"strings"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	"platcheck/pkg/platform"
)

// Defaults for the structural bounds. Branching and fragment count are
// capped so tree flattening terminates in bounded time even at maximal
// depth.
const (
	DefaultMaxDepth     = 4
	DefaultMaxChildren  = 4
	DefaultMaxFragments = 5
)

// Generator produces candidate platform strings.
type Generator struct {
	vocab        Vocabulary
	maxDepth     int
	maxChildren  int
	maxFragments int
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithVocabulary replaces the default token vocabulary.
func WithVocabulary(v Vocabulary) Option {
	return func(g *Generator) {
		g.vocab = v
	}
}

// WithMaxDepth bounds the nesting depth of fragment trees.
func WithMaxDepth(depth int) Option {
	return func(g *Generator) {
		g.maxDepth = depth
	}
}

// WithMaxFragments bounds how many fragments are joined into a candidate.
func WithMaxFragments(n int) Option {
	return func(g *Generator) {
		g.maxFragments = n
	}
}

// New creates a Generator with the default adversarial vocabulary.
func New(opts ...Option) *Generator {
	g := &Generator{
		vocab:        DefaultVocabulary(),
		maxDepth:     DefaultMaxDepth,
		maxChildren:  DefaultMaxChildren,
		maxFragments: DefaultMaxFragments,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Vocabulary returns the token corpus in use.
func (g *Generator) Vocabulary() Vocabulary {
	return g.vocab
}

// Atom generates one primitive token. Empty/zero tokens are drawn more
// often than their share of the vocabulary would suggest, because they are
// the degenerate cases the parser has to survive.
func (g *Generator) Atom() gopter.Gen {
	return gen.Weighted([]gen.WeightedGen{
		{Weight: 2, Gen: gen.OneConstOf(constValues([]string{"", "0"})...)},
		{Weight: 3, Gen: gen.OneConstOf(constValues(g.vocab.CPUs)...)},
		{Weight: 3, Gen: gen.OneConstOf(constValues(g.vocab.OSes)...)},
		{Weight: 3, Gen: gen.OneConstOf(constValues(g.vocab.Versions)...)},
	})
}

// Fragment generates one fragment tree flattened to a string. Every node
// holds 0-4 children; leaves are atoms; flattening is plain concatenation
// with no injected separators, so the result is deterministic given the
// tree's leaves.
func (g *Generator) Fragment() gopter.Gen {
	return g.fragment(g.maxDepth)
}

func (g *Generator) fragment(depth int) gopter.Gen {
	if depth <= 0 {
		return g.Atom()
	}
	branch := gen.IntRange(0, g.maxChildren).FlatMap(func(v interface{}) gopter.Gen {
		n := v.(int)
		if n == 0 {
			return gen.Const("")
		}
		return gen.SliceOfN(n, g.fragment(depth-1)).Map(func(parts []string) string {
			return strings.Join(parts, "")
		})
	}, reflect.TypeOf(""))

	// Leaves outweigh branches so depth decays geometrically and trials
	// stay fast.
	return gen.Weighted([]gen.WeightedGen{
		{Weight: 2, Gen: g.Atom()},
		{Weight: 1, Gen: branch},
	})
}

// Candidate generates one full platform string candidate: 0-5 fragments
// joined with the platform field separator.
func (g *Generator) Candidate() gopter.Gen {
	return gen.IntRange(0, g.maxFragments).FlatMap(func(v interface{}) gopter.Gen {
		n := v.(int)
		if n == 0 {
			return gen.Const("")
		}
		return gen.SliceOfN(n, g.Fragment()).Map(func(fragments []string) string {
			return strings.Join(fragments, platform.Separator)
		})
	}, reflect.TypeOf(""))
}

func constValues(tokens []string) []interface{} {
	values := make([]interface{}, len(tokens))
	for i, t := range tokens {
		values[i] = t
	}
	return values
}
