//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ngm

import (
	"encoding/json"
	"fmt"
	"strings"
)

//
// N-GRAM TRANSITION TABLES
//

// a table of order N maps each context (the previous N-1 tokens) onto the observed
// continuations and their probabilities: P(next|context) = count(context+next)/count(context).
// no smoothing: a continuation that never occurred is absent, and an unseen context
// is an error at sampling time, not a uniform guess.

// CTXJOIN - tokens contain only ASCII letters, so a space can never collide with token text
const CTXJOIN = " "

// TransitionTable - an immutable n-gram model; build it once, sample from it forever
type TransitionTable struct {
	Order int                           `json:"order"`
	Table map[string]map[string]float64 `json:"table"`
}

// ContextKey - canonical map key for a window of N-1 tokens
func ContextKey(window []string) string {
	return strings.Join(window, CTXJOIN)
}

// Build - derive a TransitionTable of the given order from tokenized documents
// spandocs governs whether contexts may cross document boundaries: when true the
// documents are treated as one concatenated stream (cheap, but the tail of one
// document bleeds into the head of the next); when false each document is counted separately
func Build(docs [][]string, order int, spandocs bool) (*TransitionTable, error) {
	const (
		FAIL1 = "n-gram order must be >= 1: got %d"
		FAIL2 = "corpus has no n-grams of order %d"
	)

	if order < 1 {
		return nil, fmt.Errorf(FAIL1, order)
	}

	counts := make(map[string]map[string]int)

	countstream := func(stream []string) {
		if len(stream) < order {
			return
		}
		for i := 0; i+order <= len(stream); i++ {
			ctx := ContextKey(stream[i : i+order-1])
			next := stream[i+order-1]
			if _, ok := counts[ctx]; !ok {
				counts[ctx] = make(map[string]int)
			}
			counts[ctx][next]++
		}
	}

	if spandocs {
		total := 0
		for i := range docs {
			total += len(docs[i])
		}
		stream := make([]string, 0, total)
		for i := range docs {
			stream = append(stream, docs[i]...)
		}
		countstream(stream)
	} else {
		for i := range docs {
			countstream(docs[i])
		}
	}

	if len(counts) == 0 {
		return nil, fmt.Errorf(FAIL2, order)
	}

	// normalize: the denominator is the total count for this context, fixed before division
	table := make(map[string]map[string]float64, len(counts))
	for ctx, nexts := range counts {
		denom := 0
		for _, c := range nexts {
			denom += c
		}
		probs := make(map[string]float64, len(nexts))
		for next, c := range nexts {
			probs[next] = float64(c) / float64(denom)
		}
		table[ctx] = probs
	}

	return &TransitionTable{Order: order, Table: table}, nil
}

// Continuations - the stored distribution for a context window; ok is false for unseen contexts
func (tt *TransitionTable) Continuations(window []string) (map[string]float64, bool) {
	probs, ok := tt.Table[ContextKey(window)]
	return probs, ok
}

// Contexts - how many distinct contexts the table holds
func (tt *TransitionTable) Contexts() int {
	return len(tt.Table)
}

// MarshalJSON equivalent helpers: the table round-trips as a plain mapping of mappings
// so other tools (or a database column) can consume it without knowing this package

// ToJSON - serialize the table
func (tt *TransitionTable) ToJSON() ([]byte, error) {
	return json.Marshal(tt)
}

// FromJSON - deserialize a table produced by ToJSON
func FromJSON(data []byte) (*TransitionTable, error) {
	var tt TransitionTable
	if err := json.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("could not decode transition table: %w", err)
	}
	return &tt, nil
}
