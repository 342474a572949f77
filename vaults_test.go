//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"testing"

	"github.com/e-gun/OratioGoServer/internal/ngm"
	"github.com/e-gun/OratioGoServer/internal/str"
)

func TestCorpusVault(t *testing.T) {
	cv := &CorpusVault{corpora: make(map[string][]str.Document)}

	if _, ok := cv.Get("sotu"); ok {
		t.Fatal("Get() on an empty vault reported a corpus")
	}

	cv.Set("sotu", []str.Document{{ID: "sotu_1986", Corpus: "sotu", Year: 1986}})
	cv.Set("federalist", []str.Document{{ID: "federalist-10", Corpus: "federalist"}})

	docs, ok := cv.Get("sotu")
	if !ok || len(docs) != 1 {
		t.Fatalf("Get(sotu) = (%v, %v); wanted one document", docs, ok)
	}

	nn := cv.Names()
	if len(nn) != 2 || nn[0] != "federalist" || nn[1] != "sotu" {
		t.Fatalf("Names() = %v; wanted sorted [federalist sotu]", nn)
	}
}

func TestModelVaultDrop(t *testing.T) {
	mv := &ModelVault{models: make(map[string]*ngm.TransitionTable)}

	tt := &ngm.TransitionTable{Order: 2, Table: map[string]map[string]float64{"a": {"b": 1}}}

	mv.Set("sotu", 2, true, tt)
	mv.Set("sotu", 3, true, tt)
	mv.Set("sotuX", 2, true, tt)

	mv.Drop("sotu")

	if _, ok := mv.Get("sotu", 2, true); ok {
		t.Fatal("Drop(sotu) left a sotu model behind")
	}
	if _, ok := mv.Get("sotu", 3, true); ok {
		t.Fatal("Drop(sotu) left a sotu model behind")
	}
	if _, ok := mv.Get("sotuX", 2, true); !ok {
		t.Fatal("Drop(sotu) deleted a model belonging to another corpus")
	}
}

func TestModelVaultSpanKeying(t *testing.T) {
	mv := &ModelVault{models: make(map[string]*ngm.TransitionTable)}

	spanned := &ngm.TransitionTable{Order: 2, Table: map[string]map[string]float64{"a": {"b": 1}}}
	bounded := &ngm.TransitionTable{Order: 2, Table: map[string]map[string]float64{"c": {"d": 1}}}

	mv.Set("sotu", 2, true, spanned)
	mv.Set("sotu", 2, false, bounded)

	got, ok := mv.Get("sotu", 2, false)
	if !ok || got != bounded {
		t.Fatal("document-bounded and document-spanning models share a cache slot")
	}
}
