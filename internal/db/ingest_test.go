//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/e-gun/OratioGoServer/internal/tok"
)

func TestFilenameMeta(t *testing.T) {
	tests := []struct {
		path string
		id   string
		year int
	}{
		{"/corpora/sotu/sotu_1945.txt", "sotu_1945", 1945},
		{"federalist-10.txt", "federalist-10", 0}, // 10 is not a plausible year
		{"notes.txt", "notes", 0},
		{"essays_2001.txt", "essays_2001", 2001},
	}

	for _, tc := range tests {
		id, year, err := FilenameMeta(tc.path)
		if err != nil {
			t.Errorf("FilenameMeta(%q) error: %v", tc.path, err)
			continue
		}
		if id != tc.id || year != tc.year {
			t.Errorf("FilenameMeta(%q) = (%q, %d); want (%q, %d)", tc.path, id, year, tc.id, tc.year)
		}
	}
}

func TestIngestDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"sotu_1945.txt": "the war is won",
		"sotu_1946.txt": "the peace must be kept",
		"sotu_1947.txt": "",
		"README.md":     "not a corpus file",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tk := tok.NewTokenizer(true)
	docs, errs := IngestDirectory("sotu", dir, tk, FilenameMeta, 4)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(docs) != 3 {
		t.Fatalf("ingested %d documents; want 3", len(docs))
	}

	// sorted by id regardless of worker completion order
	if docs[0].ID != "sotu_1945" || docs[1].ID != "sotu_1946" || docs[2].ID != "sotu_1947" {
		t.Errorf("document order: %s, %s, %s", docs[0].ID, docs[1].ID, docs[2].ID)
	}
	if docs[0].Year != 1945 || docs[0].Corpus != "sotu" {
		t.Errorf("metadata: %+v", docs[0])
	}
	if len(docs[0].Tokens) != 4 {
		t.Errorf("sotu_1945 tokens = %v", docs[0].Tokens)
	}
	// the empty file still arrives, with no tokens
	if len(docs[2].Tokens) != 0 {
		t.Errorf("sotu_1947 tokens = %v; want none", docs[2].Tokens)
	}
}

func TestIngestIsolatesBadDocuments(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"good_1900.txt", "bad_1901.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("some words here"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	boom := errors.New("metadata failure")
	rule := func(path string) (string, int, error) {
		if filepath.Base(path) == "bad_1901.txt" {
			return "", 0, boom
		}
		return FilenameMeta(path)
	}

	docs, errs := IngestDirectory("mixed", dir, tok.NewTokenizer(false), rule, 2)
	if len(docs) != 1 || docs[0].ID != "good_1900" {
		t.Errorf("good document lost: %v", docs)
	}
	if len(errs) != 1 || !errors.Is(errs[0], boom) {
		t.Errorf("errs = %v; want the metadata failure", errs)
	}
}

func TestIngestMissingDirectory(t *testing.T) {
	_, errs := IngestDirectory("none", "/no/such/dir", tok.NewTokenizer(false), FilenameMeta, 1)
	if len(errs) == 0 {
		t.Error("missing directory produced no error")
	}
}
