//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package frq

import (
	"math"
	"strings"
	"testing"

	"github.com/e-gun/OratioGoServer/internal/str"
)

func TestCountAndRanked(t *testing.T) {
	tokens := strings.Fields("the union the states the union of states")

	counts := Count(tokens)
	if counts["the"] != 3 || counts["union"] != 2 || counts["of"] != 1 {
		t.Errorf("Count() = %v", counts)
	}

	table := Ranked(counts)
	if table[0].Word != "the" || table[0].Rank != 1 || table[0].Count != 3 {
		t.Errorf("rank 1 = %+v; want the/3", table[0])
	}
	// 'states' and 'union' both count 2: alphabetical tie-break
	if table[1].Word != "states" || table[2].Word != "union" {
		t.Errorf("tie-break broken: %+v then %+v", table[1], table[2])
	}
	if table[3].Word != "of" || table[3].Rank != 4 {
		t.Errorf("rank 4 = %+v; want of/1", table[3])
	}
}

func TestYearFilter(t *testing.T) {
	docs := []str.Document{
		{ID: "sotu_1941", Year: 1941},
		{ID: "sotu_1945", Year: 1945},
		{ID: "sotu_1962", Year: 1962},
	}

	got := YearFilter(docs, 1945, 0)
	if len(got) != 2 || got[0].ID != "sotu_1945" {
		t.Errorf("YearFilter(1945,0) = %v", got)
	}

	got = YearFilter(docs, 0, 1944)
	if len(got) != 1 || got[0].ID != "sotu_1941" {
		t.Errorf("YearFilter(0,1944) = %v", got)
	}

	got = YearFilter(docs, 0, 0)
	if len(got) != 3 {
		t.Errorf("unbounded YearFilter dropped documents: %v", got)
	}
}

func TestZipfSlope(t *testing.T) {
	// an exact zipfian table: count = 1000 / rank
	var table []WordCount
	for r := 1; r <= 100; r++ {
		table = append(table, WordCount{Rank: r, Word: "w", Count: 1000 / r})
	}

	slope, _, err := ZipfSlope(table, 10)
	if err != nil {
		t.Fatal(err)
	}
	// integer truncation perturbs the fit a little
	if math.Abs(slope-(-1.0)) > 0.05 {
		t.Errorf("slope = %v; want about -1", slope)
	}

	if _, _, err := ZipfSlope(table[:1], 0); err == nil {
		t.Error("ZipfSlope() on one rank returned nil error")
	}
}
