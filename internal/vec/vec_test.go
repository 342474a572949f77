//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"math/rand"
	"testing"

	"github.com/e-gun/OratioGoServer/internal/str"
	"gonum.org/v1/gonum/mat"
)

func TestBuildBagsAndStops(t *testing.T) {
	docs := []str.Document{
		{ID: "sotu_1945", Year: 1945, Tokens: []string{"the", "war", "and", "the", "peace"}},
		{ID: "sotu_1962", Year: 1962, Tokens: []string{"we", "choose", "progress"}},
	}

	bags := BuildBags(docs)
	if len(bags) != 2 {
		t.Fatalf("BuildBags() made %d bags; want 2", len(bags))
	}
	if bags[0].Bag != "the war and the peace" {
		t.Errorf("bag 0 = %q", bags[0].Bag)
	}

	bags = DropStopwords(bags)
	if bags[0].Bag != "war peace" {
		t.Errorf("stopped bag 0 = %q; want \"war peace\"", bags[0].Bag)
	}
	if bags[1].Bag != "choose progress" {
		t.Errorf("stopped bag 1 = %q; want \"choose progress\"", bags[1].Bag)
	}

	cc := Corpus(bags)
	if len(cc) != 2 || cc[0] != "war peace" {
		t.Errorf("Corpus() = %v", cc)
	}
}

func TestStopSetKeepsTheKeepers(t *testing.T) {
	set := StopSet()
	if _, ok := set["the"]; !ok {
		t.Error("'the' missing from the stop set")
	}
	for _, keep := range EnglishKeep {
		if _, ok := set[keep]; ok {
			t.Errorf("keeper '%s' leaked into the stop set", keep)
		}
	}
}

func TestDominantTopics(t *testing.T) {
	// 3 topics x 4 docs
	dot := mat.NewDense(3, 4, []float64{
		0.8, 0.1, 0.1, 0.2,
		0.1, 0.7, 0.2, 0.3,
		0.1, 0.2, 0.7, 0.5,
	})

	winners := DominantTopics(dot)
	want := []int{0, 1, 2, 2}
	for i := range want {
		if winners[i] != want[i] {
			t.Errorf("doc %d dominant topic = %d; want %d", i, winners[i], want[i])
		}
	}

	per := DocsPerTopic(3, dot)
	if per[0] != 1 || per[1] != 1 || per[2] != 2 {
		t.Errorf("DocsPerTopic() = %v; want [1 1 2]", per)
	}

	top := TopDocPerTopic(dot)
	if top[0] != 0 || top[1] != 1 || top[2] != 2 {
		t.Errorf("TopDocPerTopic() = %v; want [0 1 2]", top)
	}
}

func TestKMeansSeparatesObviousClusters(t *testing.T) {
	// 2 terms x 6 docs: three docs near (1,0), three near (0,1)
	m := mat.NewDense(2, 6, []float64{
		1.0, 0.9, 1.1, 0.0, 0.1, 0.0,
		0.0, 0.1, 0.0, 1.0, 0.9, 1.1,
	})

	assign, err := KMeans(m, 2, 50, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatal(err)
	}

	if assign[0] != assign[1] || assign[1] != assign[2] {
		t.Errorf("first group split: %v", assign)
	}
	if assign[3] != assign[4] || assign[4] != assign[5] {
		t.Errorf("second group split: %v", assign)
	}
	if assign[0] == assign[3] {
		t.Errorf("groups merged: %v", assign)
	}
}

func TestKMeansRejectsBadK(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	if _, err := KMeans(m, 0, 10, rand.New(rand.NewSource(1))); err == nil {
		t.Error("KMeans(k=0) returned nil error")
	}
	if _, err := KMeans(m, 4, 10, rand.New(rand.NewSource(1))); err == nil {
		t.Error("KMeans(k>docs) returned nil error")
	}
}
