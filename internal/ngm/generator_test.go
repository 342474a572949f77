//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ngm

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func TestGenerateFixedLength(t *testing.T) {
	docs := corpus("the people of the union and the people of the states")
	tt, err := Build(docs, 2, true)
	if err != nil {
		t.Fatal(err)
	}

	for _, n := range []int{1, 5, 40} {
		out, err := GenerateFixed(tt, []string{"the"}, n, rand.New(rand.NewSource(42)))
		if err != nil {
			t.Fatalf("GenerateFixed(n=%d) error: %v", n, err)
		}
		if len(out) != n {
			t.Errorf("GenerateFixed(n=%d) returned %d tokens", n, len(out))
		}
		if out[0] != "the" {
			t.Errorf("output does not start with the seed: %v", out[:1])
		}
	}
}

func TestGenerateReproducible(t *testing.T) {
	docs := corpus(
		"we the people of the united states in order to form a more perfect union",
		"we the people demand that the states respect the union",
	)
	tt, err := Build(docs, 3, true)
	if err != nil {
		t.Fatal(err)
	}

	seed := []string{"we", "the"}

	a, err := GenerateFixed(tt, seed, 30, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateFixed(tt, seed, 30, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed, different output:\n%v\n%v", a, b)
	}
}

func TestGenerateUnknownContext(t *testing.T) {
	tt, err := Build(corpus("a b c"), 2, true)
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewGenerator(tt, []string{"zebra"}, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrUnknownContext) {
		t.Errorf("NewGenerator() error = %v; want ErrUnknownContext", err)
	}

	_, err = GenerateFixed(tt, []string{"zebra"}, 10, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrUnknownContext) {
		t.Errorf("GenerateFixed() error = %v; want ErrUnknownContext", err)
	}
}

func TestGeneratorSeedValidation(t *testing.T) {
	tt, err := Build(corpus("a b c d"), 3, true)
	if err != nil {
		t.Fatal(err)
	}

	// order 3 wants exactly 2 seed tokens
	if _, err := NewGenerator(tt, []string{"a"}, rand.New(rand.NewSource(1))); err == nil {
		t.Error("short seed accepted")
	}
	if _, err := NewGenerator(tt, []string{"a", "b", "c"}, rand.New(rand.NewSource(1))); err == nil {
		t.Error("long seed accepted")
	}
}

func TestGeneratorOpenEnded(t *testing.T) {
	// "a b a b a b ..." forever: every draw must respect the observed transitions
	tt, err := Build(corpus("a b a b a b a b a"), 2, true)
	if err != nil {
		t.Fatal(err)
	}

	g, err := NewGenerator(tt, []string{"a"}, rand.New(rand.NewSource(99)))
	if err != nil {
		t.Fatal(err)
	}

	prev := "a"
	for i := 0; i < 200; i++ {
		next, err := g.Next()
		if err != nil {
			t.Fatalf("Next() failed at step %d: %v", i, err)
		}
		probs, ok := tt.Continuations([]string{prev})
		if !ok {
			t.Fatalf("window invalid at step %d", i)
		}
		if _, ok := probs[next]; !ok {
			t.Fatalf("step %d drew '%s', never observed after '%s'", i, next, prev)
		}
		prev = next
	}

	// the window is still a live context: the caller can always resume
	if _, ok := tt.Continuations(g.Window()); !ok {
		t.Error("generator window drifted to an unknown context")
	}
}

func TestGeneratorDegenerateContext(t *testing.T) {
	// 'b' is only ever followed by 'c': sampling must keep returning 'c'
	tt, err := Build(corpus("b c b c b c"), 2, true)
	if err != nil {
		t.Fatal(err)
	}

	g, err := NewGenerator(tt, []string{"b"}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	next, err := g.Next()
	if err != nil {
		t.Fatal(err)
	}
	if next != "c" {
		t.Errorf("single-continuation context drew '%s'; want 'c'", next)
	}
}

func TestGeneratorUnigram(t *testing.T) {
	tt, err := Build(corpus("x y x y x x"), 1, true)
	if err != nil {
		t.Fatal(err)
	}

	out, err := GenerateFixed(tt, []string{}, 25, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 25 {
		t.Fatalf("got %d tokens; want 25", len(out))
	}
	for _, tok := range out {
		if tok != "x" && tok != "y" {
			t.Errorf("unigram draw produced unseen token '%s'", tok)
		}
	}
}

func TestGenerateFixedRejectsShortRequest(t *testing.T) {
	tt, err := Build(corpus("a b c d"), 3, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := GenerateFixed(tt, []string{"a", "b"}, 1, rand.New(rand.NewSource(1))); err == nil {
		t.Error("GenerateFixed() accepted n smaller than the seed")
	}
}
