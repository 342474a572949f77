//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package gen

import (
	"reflect"
	"sort"
	"testing"
)

func TestUnique(t *testing.T) {
	// non-consecutive repeats are the point: slices.Compact would miss the trailing "a"
	in := []string{"a", "a", "b", "a", "c", "b"}

	out := Unique(in)
	sort.Strings(out)

	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Unique(%v) = %v; wanted %v", in, out, want)
	}
}

func TestChunkSlice(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6, 7}

	chunks := ChunkSlice(in, 3)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}

	if !reflect.DeepEqual(gatherints(chunks), in) {
		t.Errorf("chunking reordered or dropped items: %v", chunks)
	}

	if len(chunks[2]) != 1 || chunks[2][0] != 7 {
		t.Errorf("the short tail chunk should be [7], got %v", chunks[2])
	}

	// a chunk size at or past the end yields a single chunk
	whole := ChunkSlice(in, len(in))
	if len(whole) != 1 || len(whole[0]) != len(in) {
		t.Errorf("oversized chunk request should return the slice whole, got %v", whole)
	}
}

func TestSortedMapKeys(t *testing.T) {
	mp := map[string]int{"gamma": 3, "alpha": 1, "beta": 2}

	want := []string{"alpha", "beta", "gamma"}
	for i := 0; i < 10; i++ {
		if got := SortedMapKeys(mp); !reflect.DeepEqual(got, want) {
			t.Fatalf("SortedMapKeys returned %v; wanted %v", got, want)
		}
	}
}

func gatherints(chunks [][]int) []int {
	return FlattenSlices(chunks)
}
