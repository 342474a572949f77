//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package tok

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitApostrophes(t *testing.T) {
	tk := NewTokenizer(false)
	got := tk.Split("Don't stop")
	want := []string{"Don", "t", "stop"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split(\"Don't stop\") = %v; want %v", got, want)
	}
}

func TestSplitMixedBoundaries(t *testing.T) {
	tk := NewTokenizer(false)
	got := tk.Split("In 1789, Washington spoke; twice-over.")
	want := []string{"In", "Washington", "spoke", "twice", "over"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split() = %v; want %v", got, want)
	}
}

func TestSplitCaseFolding(t *testing.T) {
	folded := NewTokenizer(true)
	got := folded.Split("The THE the")
	want := []string{"the", "the", "the"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("folding Split() = %v; want %v", got, want)
	}

	unfolded := NewTokenizer(false)
	got = unfolded.Split("The THE the")
	want = []string{"The", "THE", "the"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("non-folding Split() = %v; want %v", got, want)
	}
}

func TestSplitEmpty(t *testing.T) {
	tk := NewTokenizer(false)
	got := tk.Split("")
	if got == nil {
		t.Fatal("Split(\"\") returned nil; want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Split(\"\") = %v; want empty", got)
	}

	got = tk.Split("123 ... 456")
	if len(got) != 0 {
		t.Errorf("Split(\"123 ... 456\") = %v; want empty", got)
	}
}

func TestSplitFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "sotu_1945.txt")
	if err := os.WriteFile(p, []byte("the state of the union"), 0644); err != nil {
		t.Fatal(err)
	}

	tk := NewTokenizer(true)
	got, err := tk.SplitFile(p)
	if err != nil {
		t.Fatalf("SplitFile() error: %v", err)
	}
	want := []string{"the", "state", "of", "the", "union"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitFile() = %v; want %v", got, want)
	}

	_, err = tk.SplitFile(filepath.Join(dir, "no_such_file.txt"))
	if err == nil {
		t.Error("SplitFile() on a missing file returned nil error")
	}
}
