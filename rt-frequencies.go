//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/e-gun/OratioGoServer/internal/frq"
	"github.com/e-gun/OratioGoServer/internal/gen"
	"github.com/e-gun/OratioGoServer/internal/str"
	"github.com/e-gun/OratioGoServer/internal/vv"
	"github.com/labstack/echo/v4"
)

//
// FREQUENCY ROUTES
//

type FrequencyReportJSON struct {
	Corpus    string          `json:"corpus"`
	Documents int             `json:"documents"`
	Tokens    int             `json:"tokens"`
	Distinct  int             `json:"distinct"`
	ZipfSlope float64         `json:"zipfslope"`
	Table     []frq.WordCount `json:"table"`
}

// RtFrequencies - rank/frequency table plus the fitted Zipf slope
func RtFrequencies(c echo.Context) error {
	c.Response().After(func() { SelfStats("RtFrequencies()") })

	docs, corpus, err := corpusfromcontext(c)
	if err != nil {
		return err
	}

	docs = yearfiltered(c, docs)
	if len(docs) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "the year filter excluded every document")
	}

	max := intparam(c, "max", vv.FREQTABLEMAX)

	table := frq.Ranked(frq.Count(flattokens(docs)))

	slope := 0.0
	if s, _, e := frq.ZipfSlope(table, vv.ZIPFMAXRANKS); e == nil {
		slope = s
	}

	distinct := len(table)
	if max > 0 && max < len(table) {
		table = table[:max]
	}

	out := FrequencyReportJSON{
		Corpus:    corpus,
		Documents: len(docs),
		Tokens:    str.TokenCount(docs),
		Distinct:  distinct,
		ZipfSlope: slope,
		Table:     table,
	}

	return c.JSONPretty(http.StatusOK, out, vv.JSONINDENT)
}

// RtZipfChart - log-log scatter of the rank/frequency table with the fitted line
func RtZipfChart(c echo.Context) error {
	const (
		FAIL1 = "could not fit a zipf curve for '%s': %v"
	)

	c.Response().After(func() { SelfStats("RtZipfChart()") })

	docs, corpus, err := corpusfromcontext(c)
	if err != nil {
		return err
	}

	docs = yearfiltered(c, docs)
	if len(docs) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "the year filter excluded every document")
	}

	table := frq.Ranked(frq.Count(flattokens(docs)))

	slope, intercept, err := frq.ZipfSlope(table, vv.ZIPFMAXRANKS)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf(FAIL1, corpus, err))
	}

	htmlandjs := zipfscatter(corpus, table, slope, intercept)

	return c.HTML(http.StatusOK, chartpage("Zipf: "+corpus, htmlandjs))
}

//
// SHARED ROUTE HELPERS
//

// flattokens - concatenate every document's tokens in stable (sorted) document order
func flattokens(docs []str.Document) []string {
	return gen.FlattenSlices(tokenslices(docs))
}

// yearfiltered - apply ?from= and ?to= to the documents
func yearfiltered(c echo.Context, docs []str.Document) []str.Document {
	from := intparam(c, "from", 0)
	to := intparam(c, "to", 0)
	if from == 0 && to == 0 {
		return docs
	}
	return frq.YearFilter(docs, from, to)
}

// intparam - a numeric query parameter with a fallback
func intparam(c echo.Context, name string, dflt int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return dflt
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return dflt
	}
	return v
}
