//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package frq

import (
	"fmt"
	"math"
	"sort"

	"github.com/e-gun/OratioGoServer/internal/str"
	"gonum.org/v1/gonum/stat"
)

//
// WORD FREQUENCIES AND ZIPF CURVES
//

// WordCount - one row of a rank/frequency table
type WordCount struct {
	Rank  int    `json:"rank"`
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Count - raw token counts
func Count(tokens []string) map[string]int {
	counts := make(map[string]int)
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}

// Ranked - counts as a descending rank table; ties break alphabetically so the
// table is stable across runs
func Ranked(counts map[string]int) []WordCount {
	table := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		table = append(table, WordCount{Word: w, Count: c})
	}

	sort.Slice(table, func(i, j int) bool {
		if table[i].Count != table[j].Count {
			return table[i].Count > table[j].Count
		}
		return table[i].Word < table[j].Word
	})

	for i := range table {
		table[i].Rank = i + 1
	}

	return table
}

// YearFilter - keep only the documents inside [from, to]; zero bounds mean "no bound"
func YearFilter(docs []str.Document, from int, to int) []str.Document {
	var keep []str.Document
	for _, d := range docs {
		if from != 0 && d.Year < from {
			continue
		}
		if to != 0 && d.Year > to {
			continue
		}
		keep = append(keep, d)
	}
	return keep
}

// ZipfSlope - least-squares slope of log10(count) against log10(rank); a corpus that
// obeys Zipf's law sits near -1. maxranks of 0 fits every rank.
func ZipfSlope(table []WordCount, maxranks int) (slope float64, intercept float64, err error) {
	const (
		FAIL1 = "zipf fit needs at least 2 ranks: have %d"
	)

	n := len(table)
	if maxranks > 0 && maxranks < n {
		n = maxranks
	}
	if n < 2 {
		return 0, 0, fmt.Errorf(FAIL1, n)
	}

	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i] = math.Log10(float64(table[i].Rank))
		ys[i] = math.Log10(float64(table[i].Count))
	}

	intercept, slope = stat.LinearRegression(xs, ys, nil, false)
	return slope, intercept, nil
}
