//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"sort"
	"sync"

	"github.com/e-gun/OratioGoServer/internal/ngm"
	"github.com/e-gun/OratioGoServer/internal/str"
)

//
// THREAD-SAFE IN-MEMORY HOLDINGS
//

// CorpusVault - the loaded corpora; routes read, ingestion writes
type CorpusVault struct {
	corpora map[string][]str.Document
	mtx     sync.RWMutex
}

func (cv *CorpusVault) Set(name string, docs []str.Document) {
	cv.mtx.Lock()
	defer cv.mtx.Unlock()
	cv.corpora[name] = docs
}

func (cv *CorpusVault) Get(name string) ([]str.Document, bool) {
	cv.mtx.RLock()
	defer cv.mtx.RUnlock()
	docs, ok := cv.corpora[name]
	return docs, ok
}

func (cv *CorpusVault) Names() []string {
	cv.mtx.RLock()
	defer cv.mtx.RUnlock()
	var nn []string
	for n := range cv.corpora {
		nn = append(nn, n)
	}
	sort.Strings(nn)
	return nn
}

// ModelVault - built transition tables; a table for a given (corpus, order, span) is
// deterministic, so caching one is always safe
type ModelVault struct {
	models map[string]*ngm.TransitionTable
	mtx    sync.RWMutex
}

func modelkey(corpus string, order int, span bool) string {
	return fmt.Sprintf("%s/%d/%t", corpus, order, span)
}

func (mv *ModelVault) Get(corpus string, order int, span bool) (*ngm.TransitionTable, bool) {
	mv.mtx.RLock()
	defer mv.mtx.RUnlock()
	tt, ok := mv.models[modelkey(corpus, order, span)]
	return tt, ok
}

func (mv *ModelVault) Set(corpus string, order int, span bool, tt *ngm.TransitionTable) {
	mv.mtx.Lock()
	defer mv.mtx.Unlock()
	mv.models[modelkey(corpus, order, span)] = tt
}

// Drop - forget every cached model for a corpus (after re-ingestion)
func (mv *ModelVault) Drop(corpus string) {
	mv.mtx.Lock()
	defer mv.mtx.Unlock()
	for k := range mv.models {
		if len(k) > len(corpus) && k[:len(corpus)+1] == corpus+"/" {
			delete(mv.models, k)
		}
	}
}

var (
	AllCorpora = &CorpusVault{corpora: make(map[string][]str.Document)}
	AllModels  = &ModelVault{models: make(map[string]*ngm.TransitionTable)}
)
