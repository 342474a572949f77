//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/e-gun/OratioGoServer/internal/gen"
	"github.com/e-gun/OratioGoServer/internal/str"
	"github.com/e-gun/OratioGoServer/internal/tok"
	"github.com/e-gun/OratioGoServer/internal/vv"
)

//
// DIRECTORY INGESTION
//

// MetaRule - derive a document id and year from a file path; corpora name their
// files differently, so the rule is injected rather than assumed
type MetaRule func(path string) (id string, year int, err error)

// FilenameMeta - the default rule: "sotu_1945.txt" --> ("sotu_1945", 1945);
// a name with no plausible year yields year 0
func FilenameMeta(path string) (string, int, error) {
	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	if id == "" {
		return "", 0, fmt.Errorf("could not derive a document id from '%s'", path)
	}

	year := 0
	if i := strings.LastIndexAny(id, "_-"); i >= 0 && i+1 < len(id) {
		if y, err := strconv.Atoi(id[i+1:]); err == nil && y >= vv.MINDOCYEAR && y <= vv.MAXDOCYEAR {
			year = y
		}
	}

	return id, year, nil
}

// IngestDirectory - tokenize every *.txt file under dir into Documents; the reads run
// in parallel, and one unreadable file costs you that file, not the whole corpus: its
// error lands in the second return value while the rest of the directory loads
func IngestDirectory(corpus string, dir string, tk *tok.Tokenizer, rule MetaRule, workers int) ([]str.Document, []error) {
	const (
		FAIL1 = "could not read corpus directory '%s': %w"
		MSG1  = "IngestDirectory() found %d file(s) in '%s'"
	)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []error{fmt.Errorf(FAIL1, dir, err)}
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}

	Msg.PEEK(fmt.Sprintf(MSG1, len(paths), dir))

	if workers < 1 {
		workers = 1
	}

	// deal each worker its own pile of files up front
	chunksize := (len(paths) + workers - 1) / workers
	if chunksize < 1 {
		chunksize = 1
	}
	batches := gen.ChunkSlice(paths, chunksize)

	docch := make(chan str.Document, len(paths))
	errch := make(chan error, len(paths))

	var wg sync.WaitGroup
	for _, batch := range batches {
		wg.Add(1)
		go func(batch []string) {
			defer wg.Done()
			for _, p := range batch {
				id, year, err := rule(p)
				if err != nil {
					errch <- err
					continue
				}
				tokens, err := tk.SplitFile(p)
				if err != nil {
					errch <- err
					continue
				}
				docch <- str.Document{
					ID:     id,
					Corpus: corpus,
					Year:   year,
					Tokens: tokens,
				}
			}
		}(batch)
	}

	wg.Wait()
	close(docch)
	close(errch)

	var docs []str.Document
	for d := range docch {
		docs = append(docs, d)
	}

	// workers finish in arbitrary order; a model built from this corpus has to see
	// the documents in the same order every run
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	var errs []error
	for e := range errch {
		errs = append(errs, e)
	}

	return docs, errs
}
