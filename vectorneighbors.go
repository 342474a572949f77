//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/e-gun/OratioGoServer/internal/str"
	"github.com/e-gun/OratioGoServer/internal/vec"
	"github.com/e-gun/OratioGoServer/internal/vv"
	"github.com/e-gun/wego/pkg/embedding"
	"github.com/e-gun/wego/pkg/model/modelutil/vector"
	"github.com/e-gun/wego/pkg/model/word2vec"
	"github.com/e-gun/wego/pkg/search"
)

//
// WORD2VEC NEIGHBORS
//
// FLOW:
//	neighborsdata() which means you need to...
//		corpusembeddings() which relies upon...
//		generateembeddings() with help of...
//		corpustextblock() data
//

// DefaultW2VVectors - wego's defaults adjusted for corpora of speeches and essays
var DefaultW2VVectors = word2vec.Options{
	BatchSize:          1024,
	Dim:                vv.VECTORDIMENSIONS,
	DocInMemory:        true,
	Goroutines:         20,
	Initlr:             0.025,
	Iter:               vv.VECTORITERATIONS,
	LogBatch:           100000,
	MaxCount:           -1,
	MaxDepth:           150,
	MinCount:           vv.VECTORMINCOUNT,
	MinLR:              0.0000025,
	ModelType:          "skipgram",
	NegativeSampleSize: 5,
	OptimizerType:      "hs",
	SubsampleThreshold: 0.001,
	ToLower:            false,
	UpdateLRBatch:      100000,
	Verbose:            false,
	Window:             vv.VECTORWINDOW,
}

// EmbeddingsVault - per-corpus cache of trained embeddings
type EmbeddingsVault struct {
	embs map[string]embedding.Embeddings
	mtx  sync.RWMutex
}

func (ev *EmbeddingsVault) Get(corpus string) (embedding.Embeddings, bool) {
	ev.mtx.RLock()
	defer ev.mtx.RUnlock()
	e, ok := ev.embs[corpus]
	return e, ok
}

func (ev *EmbeddingsVault) Set(corpus string, e embedding.Embeddings) {
	ev.mtx.Lock()
	defer ev.mtx.Unlock()
	ev.embs[corpus] = e
}

var AllEmbeddings = &EmbeddingsVault{embs: make(map[string]embedding.Embeddings)}

// neighborsdata - the word, its neighbors, and the neighbors of those neighbors
func neighborsdata(corpus string, docs []str.Document, word string, ncount int) (map[string]search.Neighbors, error) {
	const (
		FAIL1 = "no word2vec model could be built for '%s': %v"
		FAIL2 = "'%s' is not in the vocabulary of '%s': %v"
		FAIL3 = "neighborsdata() could not find neighbors of a neighbor: '%s' neighbors (via '%s')"
	)

	embs, err := corpusembeddings(corpus, docs)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, corpus, err)
	}

	searcher, err := search.New(embs...)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, corpus, err)
	}

	if ncount < vv.VECTORNEIGHBORSMIN || ncount > vv.VECTORNEIGHBORSMAX {
		ncount = vv.VECTORNEIGHBORS
	}

	nn := make(map[string]search.Neighbors)
	neighbors, err := searcher.SearchInternal(word, ncount)
	if err != nil {
		return nil, fmt.Errorf(FAIL2, word, corpus, err)
	}

	nn[word] = neighbors
	for _, n := range neighbors {
		meta, e := searcher.SearchInternal(n.Word, ncount)
		if e != nil {
			Msg.FYI(fmt.Sprintf(FAIL3, n.Word, word))
		} else {
			nn[n.Word] = meta
		}
	}

	return nn, nil
}

// corpusembeddings - cached embeddings for a corpus; train and stash them on a miss
func corpusembeddings(corpus string, docs []str.Document) (embedding.Embeddings, error) {
	const (
		MSG1 = "trained a word2vec model for '%s'"
		MSG2 = "loaded stored word2vec model for '%s'"
	)

	if e, ok := AllEmbeddings.Get(corpus); ok {
		return e, nil
	}

	// a model from an earlier run may be sitting on disk
	fn := filepath.Join(Config.CorpusDir, fmt.Sprintf(vv.VECTORFILENN, corpus))
	if f, err := os.Open(fn); err == nil {
		embs, lerr := embedding.Load(f)
		_ = f.Close()
		if lerr == nil && len(embs) != 0 {
			AllEmbeddings.Set(corpus, embs)
			Msg.PEEK(fmt.Sprintf(MSG2, corpus))
			return embs, nil
		}
	}

	start := time.Now()

	embs, raw, err := generateembeddings(corpustextblock(docs))
	if err != nil {
		return nil, err
	}

	AllEmbeddings.Set(corpus, embs)
	Msg.Timer("W", fmt.Sprintf(MSG1, corpus), start, start)

	// leave a copy on disk for the next launch
	go func() {
		if werr := os.WriteFile(fn, raw, vv.WRITEPERMS); werr != nil {
			Msg.TMI(fmt.Sprintf("could not store the model at '%s': %v", fn, werr))
		}
	}()

	return embs, nil
}

// generateembeddings - turn a text block into a collection of semantic vector embeddings;
// the raw saved model bytes come back too so the caller can stash them
func generateembeddings(thetext string) (embedding.Embeddings, []byte, error) {
	const (
		FAIL1 = "model initialization failed: %w"
		FAIL2 = "failed to train vector embeddings: %w"
		FAIL3 = "failed to save vector embeddings: %w"
		FAIL4 = "failed to load vector embeddings: %w"
	)

	cfg := DefaultW2VVectors
	cfg.Goroutines = runtime.NumCPU()
	if vv.VECTORTHREADS > 0 {
		cfg.Goroutines = vv.VECTORTHREADS
	}

	vmodel, err := word2vec.NewForOptions(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf(FAIL1, err)
	}

	// input for word2vec.Train() is 'io.ReadSeeker'
	b := bytes.NewReader([]byte(thetext))
	if err = vmodel.Train(b); err != nil {
		return nil, nil, fmt.Errorf(FAIL2, err)
	}

	// use buffers; skip the disk
	var buf bytes.Buffer
	w := io.Writer(&buf)
	if err = vmodel.Save(w, vector.Agg); err != nil {
		return nil, nil, fmt.Errorf(FAIL3, err)
	}

	raw := buf.Bytes()

	r := io.Reader(bytes.NewReader(raw))
	embs, err := embedding.Load(r)
	if err != nil {
		return nil, nil, fmt.Errorf(FAIL4, err)
	}

	return embs, raw, nil
}

// corpustextblock - every document's tokens as a single long string, stopwords dropped
func corpustextblock(docs []str.Document) string {
	const (
		CHARSPERTOKEN = 7
	)

	stops := vec.StopSet()

	var sb strings.Builder
	sb.Grow(CHARSPERTOKEN * str.TokenCount(docs))
	for i := 0; i < len(docs); i++ {
		for _, t := range docs[i].Tokens {
			if _, skip := stops[t]; skip {
				continue
			}
			sb.WriteString(t)
			sb.WriteString(" ")
		}
	}

	return strings.TrimSpace(sb.String())
}
