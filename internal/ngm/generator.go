//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ngm

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

//
// TEXT GENERATION
//

// ErrUnknownContext - the model never saw this context; no smoothing means no fallback
var ErrUnknownContext = errors.New("context absent from transition table")

// cdf - a cumulative distribution over the continuations of one context; the keys are
// sorted so that a fixed seed always walks the candidates in the same order (map
// iteration order would randomize the output even with a fixed seed)
type cdf struct {
	tokens []string
	cum    []float64
}

func newcdf(probs map[string]float64) *cdf {
	tokens := make([]string, 0, len(probs))
	for t := range probs {
		tokens = append(tokens, t)
	}
	sort.Strings(tokens)

	cum := make([]float64, len(tokens))
	running := 0.0
	for i, t := range tokens {
		running += probs[t]
		cum[i] = running
	}
	return &cdf{tokens: tokens, cum: cum}
}

func (c *cdf) draw(r float64) string {
	i := sort.SearchFloat64s(c.cum, r)
	if i >= len(c.tokens) {
		// the final cumulative value can land a hair under 1.0
		i = len(c.tokens) - 1
	}
	return c.tokens[i]
}

// Generator - a stateful sampler over a TransitionTable; create with NewGenerator,
// then call Next() until satisfied: the window stays valid between calls, so the
// caller may stop at any point and resume later
type Generator struct {
	tt     *TransitionTable
	rng    *rand.Rand
	window []string
	dists  map[string]*cdf
}

// NewGenerator - seed a Generator with exactly N-1 context tokens; the *rand.Rand is
// caller-supplied so that runs are reproducible
func NewGenerator(tt *TransitionTable, seed []string, rng *rand.Rand) (*Generator, error) {
	const (
		FAIL1 = "seed must hold exactly %d token(s) for an order-%d model: got %d"
	)

	if len(seed) != tt.Order-1 {
		return nil, fmt.Errorf(FAIL1, tt.Order-1, tt.Order, len(seed))
	}

	if _, ok := tt.Continuations(seed); !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownContext, ContextKey(seed))
	}

	w := make([]string, len(seed))
	copy(w, seed)

	return &Generator{
		tt:     tt,
		rng:    rng,
		window: w,
		dists:  make(map[string]*cdf),
	}, nil
}

// Next - draw one token from the current context's distribution and slide the window
func (g *Generator) Next() (string, error) {
	key := ContextKey(g.window)

	probs, ok := g.tt.Table[key]
	if !ok {
		return "", fmt.Errorf("%w: '%s'", ErrUnknownContext, key)
	}

	dist, ok := g.dists[key]
	if !ok {
		dist = newcdf(probs)
		g.dists[key] = dist
	}

	next := dist.draw(g.rng.Float64())

	if g.tt.Order > 1 {
		g.window = append(g.window[1:], next)
	}

	return next, nil
}

// Window - the current N-1 token context (a copy; the sampler's own window is private)
func (g *Generator) Window() []string {
	w := make([]string, len(g.window))
	copy(w, g.window)
	return w
}

// GenerateFixed - produce exactly n tokens, the seed included; fails if the walk
// reaches a context the model never saw
func GenerateFixed(tt *TransitionTable, seed []string, n int, rng *rand.Rand) ([]string, error) {
	const (
		FAIL1 = "requested %d token(s) but the seed already holds %d"
	)

	if n < len(seed) {
		return nil, fmt.Errorf(FAIL1, n, len(seed))
	}

	g, err := NewGenerator(tt, seed, rng)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, n)
	out = append(out, seed...)

	for len(out) < n {
		next, err := g.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, next)
	}

	return out, nil
}
