//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/e-gun/OratioGoServer/internal/str"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()

	docs := []str.Document{
		{ID: "sotu_1946", Corpus: "sotu", Year: 1946, Tokens: []string{"peace", "at", "last"}},
		{ID: "sotu_1945", Corpus: "sotu", Year: 1945, Tokens: []string{"the", "war", "ends"}},
		{ID: "federalist_10", Corpus: "federalist", Year: 0, Tokens: []string{"faction"}},
	}
	if err := store.SaveDocuments(ctx, docs); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadCorpus(ctx, "sotu")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("loaded %d documents; want 2", len(got))
	}
	// ordered by year
	if got[0].ID != "sotu_1945" || got[1].ID != "sotu_1946" {
		t.Errorf("order: %s, %s", got[0].ID, got[1].ID)
	}
	if !reflect.DeepEqual(got[0].Tokens, []string{"the", "war", "ends"}) {
		t.Errorf("tokens: %v", got[0].Tokens)
	}

	cc, err := store.ListCorpora(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cc, []string{"federalist", "sotu"}) {
		t.Errorf("ListCorpora() = %v", cc)
	}

	// saving again must overwrite, not duplicate
	docs[0].Tokens = []string{"revised"}
	if err := store.SaveDocuments(ctx, docs[:1]); err != nil {
		t.Fatal(err)
	}
	got, err = store.LoadCorpus(ctx, "sotu")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || !reflect.DeepEqual(got[1].Tokens, []string{"revised"}) {
		t.Errorf("upsert failed: %v", got)
	}
}

func TestSQLiteStoreTables(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	ctx := context.Background()

	blob := []byte(`{"order":2,"table":{"a":{"b":1}}}`)
	if err := store.SaveTable(ctx, "sotu", 2, blob); err != nil {
		t.Fatal(err)
	}

	got, err := store.LoadTable(ctx, "sotu", 2)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, blob) {
		t.Errorf("LoadTable() = %s", got)
	}

	if _, err := store.LoadTable(ctx, "sotu", 5); err == nil {
		t.Error("LoadTable() for a missing order returned nil error")
	}
}
