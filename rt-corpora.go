//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/e-gun/OratioGoServer/internal/db"
	"github.com/e-gun/OratioGoServer/internal/str"
	"github.com/e-gun/OratioGoServer/internal/tok"
	"github.com/e-gun/OratioGoServer/internal/vv"
	"github.com/labstack/echo/v4"
)

//
// CORPUS ROUTES
//

type CorpusSummaryJSON struct {
	Corpus    string `json:"corpus"`
	Documents int    `json:"documents"`
	Tokens    int    `json:"tokens"`
	FirstYear int    `json:"firstyear,omitempty"`
	LastYear  int    `json:"lastyear,omitempty"`
}

// RtCorporaList - report the loaded corpora
func RtCorporaList(c echo.Context) error {
	c.Response().After(func() { SelfStats("RtCorporaList()") })

	var out []CorpusSummaryJSON
	for _, n := range AllCorpora.Names() {
		docs, _ := AllCorpora.Get(n)
		s := CorpusSummaryJSON{Corpus: n, Documents: len(docs), Tokens: str.TokenCount(docs)}
		for _, d := range docs {
			if d.Year == 0 {
				continue
			}
			if s.FirstYear == 0 || d.Year < s.FirstYear {
				s.FirstYear = d.Year
			}
			if d.Year > s.LastYear {
				s.LastYear = d.Year
			}
		}
		out = append(out, s)
	}

	return c.JSONPretty(http.StatusOK, out, vv.JSONINDENT)
}

type IngestResultJSON struct {
	Corpus    string   `json:"corpus"`
	Documents int      `json:"documents"`
	Tokens    int      `json:"tokens"`
	Skipped   []string `json:"skipped,omitempty"`
}

// RtCorporaLoad - (re)ingest a corpus directory; per-document failures are reported, not fatal
func RtCorporaLoad(c echo.Context) error {
	const (
		FAIL1 = "no documents found for corpus '%s' under '%s'"
		FAIL2 = "could not persist corpus '%s': %v"
	)

	c.Response().After(func() { SelfStats("RtCorporaLoad()") })

	corpus := c.Param("corpus")
	dir := filepath.Join(Config.CorpusDir, corpus)

	tk := tok.NewTokenizer(Config.LowerCase)
	docs, errs := db.IngestDirectory(corpus, dir, tk, db.FilenameMeta, Config.WorkerCount)

	var skipped []string
	for _, e := range errs {
		skipped = append(skipped, e.Error())
	}

	if len(docs) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf(FAIL1, corpus, dir))
	}

	if err := Storage.SaveDocuments(context.Background(), docs); err != nil {
		Msg.WARN(fmt.Sprintf(FAIL2, corpus, err))
	}

	AllCorpora.Set(corpus, docs)
	AllModels.Drop(corpus)

	out := IngestResultJSON{
		Corpus:    corpus,
		Documents: len(docs),
		Tokens:    str.TokenCount(docs),
		Skipped:   skipped,
	}

	return c.JSONPretty(http.StatusOK, out, vv.JSONINDENT)
}

// corpusfromcontext - fetch the documents for the corpus named in the url
func corpusfromcontext(c echo.Context) ([]str.Document, string, error) {
	const (
		FAIL1 = "corpus '%s' is not loaded; see '/corpora' for what is"
	)

	corpus := c.Param("corpus")
	docs, ok := AllCorpora.Get(corpus)
	if !ok || len(docs) == 0 {
		return nil, corpus, echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf(FAIL1, corpus))
	}
	return docs, corpus, nil
}
