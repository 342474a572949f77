//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ngm

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func corpus(ss ...string) [][]string {
	docs := make([][]string, len(ss))
	for i, s := range ss {
		docs[i] = strings.Fields(s)
	}
	return docs
}

func TestBuildProbabilities(t *testing.T) {
	docs := corpus("must pass must pass must pass must fail")

	tt, err := Build(docs, 2, true)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	probs, ok := tt.Continuations([]string{"must"})
	if !ok {
		t.Fatal("context 'must' missing from table")
	}

	if got := probs["pass"]; math.Abs(got-0.75) > 1e-9 {
		t.Errorf("P(pass|must) = %v; want 0.75", got)
	}
	if got := probs["fail"]; math.Abs(got-0.25) > 1e-9 {
		t.Errorf("P(fail|must) = %v; want 0.25", got)
	}
	if len(probs) != 2 {
		t.Errorf("'must' has %d continuations; want 2", len(probs))
	}
}

func TestBuildDistributionsSumToOne(t *testing.T) {
	docs := corpus(
		"the people of the united states have the right",
		"the congress of the united states shall make no law",
	)

	for order := 1; order <= 4; order++ {
		tt, err := Build(docs, order, true)
		if err != nil {
			t.Fatalf("Build(order=%d) error: %v", order, err)
		}
		for ctx, probs := range tt.Table {
			sum := 0.0
			for _, p := range probs {
				sum += p
			}
			if math.Abs(sum-1.0) > 1e-9 {
				t.Errorf("order %d context '%s' sums to %v; want 1.0", order, ctx, sum)
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	docs := corpus(
		"we hold these truths to be self evident",
		"we mutually pledge to each other our lives",
	)

	a, err := Build(docs, 3, true)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(docs, 3, true)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("two builds over the same corpus differ")
	}
}

func TestBuildUnigram(t *testing.T) {
	docs := corpus("a b a b a a")

	tt, err := Build(docs, 1, true)
	if err != nil {
		t.Fatal(err)
	}

	probs, ok := tt.Continuations([]string{})
	if !ok {
		t.Fatal("unigram model lacks the empty context")
	}
	if tt.Contexts() != 1 {
		t.Errorf("unigram model holds %d contexts; want 1", tt.Contexts())
	}
	if got := probs["a"]; math.Abs(got-4.0/6.0) > 1e-9 {
		t.Errorf("P(a) = %v; want %v", got, 4.0/6.0)
	}
	if got := probs["b"]; math.Abs(got-2.0/6.0) > 1e-9 {
		t.Errorf("P(b) = %v; want %v", got, 2.0/6.0)
	}
}

func TestBuildDocumentBoundaries(t *testing.T) {
	docs := corpus("a b", "c d")

	spanning, err := Build(docs, 2, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := spanning.Continuations([]string{"b"}); !ok {
		t.Error("spanning build lost the cross-document context 'b'")
	}

	separate, err := Build(docs, 2, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := separate.Continuations([]string{"b"}); ok {
		t.Error("per-document build invented the cross-document context 'b'")
	}
	if _, ok := separate.Continuations([]string{"a"}); !ok {
		t.Error("per-document build lost the in-document context 'a'")
	}
}

func TestBuildShortDocuments(t *testing.T) {
	// a document shorter than the order contributes nothing but breaks nothing
	docs := corpus("x", "a b c d")

	tt, err := Build(docs, 3, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tt.Continuations([]string{"a", "b"}); !ok {
		t.Error("lost context 'a b'")
	}

	// and a corpus with nothing long enough is an error
	if _, err := Build(corpus("x", "y"), 3, false); err == nil {
		t.Error("Build() over an all-too-short corpus returned nil error")
	}
}

func TestBuildRejectsBadOrder(t *testing.T) {
	if _, err := Build(corpus("a b c"), 0, true); err == nil {
		t.Error("Build(order=0) returned nil error")
	}
}

func TestTableJSONRoundTrip(t *testing.T) {
	tt, err := Build(corpus("a b a c a b"), 2, true)
	if err != nil {
		t.Fatal(err)
	}

	data, err := tt.ToJSON()
	if err != nil {
		t.Fatal(err)
	}

	back, err := FromJSON(data)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(tt, back) {
		t.Error("table changed across a JSON round trip")
	}
}
