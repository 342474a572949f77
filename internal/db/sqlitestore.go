//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/e-gun/OratioGoServer/internal/str"
	_ "modernc.org/sqlite"
)

//
// SQLITE BACKEND
//

// the cgo-free driver is plenty fast for corpora this size and keeps the binary
// self-contained: no postgres server to install for the classroom use case

const (
	sqliteschemadocs = `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		corpus TEXT NOT NULL,
		year INTEGER NOT NULL,
		tokens TEXT NOT NULL
	)`
	sqliteschematables = `
	CREATE TABLE IF NOT EXISTS transitiontables (
		corpus TEXT NOT NULL,
		tableorder INTEGER NOT NULL,
		data BLOB NOT NULL,
		PRIMARY KEY (corpus, tableorder)
	)`
)

type SQLiteStore struct {
	handle *sql.DB
}

// OpenSQLiteStore - open (or create) the database file and make sure the schema exists
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	const (
		FAIL1 = "could not open sqlite db at '%s': %w"
		FAIL2 = "could not initialize sqlite schema: %w"
	)

	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf(FAIL1, path, err)
	}

	for _, schema := range []string{sqliteschemadocs, sqliteschematables} {
		if _, err := handle.Exec(schema); err != nil {
			return nil, fmt.Errorf(FAIL2, err)
		}
	}

	return &SQLiteStore{handle: handle}, nil
}

func (s *SQLiteStore) SaveDocuments(ctx context.Context, docs []str.Document) error {
	const (
		UPSERT = `INSERT INTO documents (id, corpus, year, tokens) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET corpus=excluded.corpus, year=excluded.year, tokens=excluded.tokens`
	)

	tx, err := s.handle.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite transaction failed to start: %w", err)
	}

	for i := range docs {
		d := &docs[i]
		if _, err := tx.ExecContext(ctx, UPSERT, d.ID, d.Corpus, d.Year, strings.Join(d.Tokens, " ")); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("could not save document '%s': %w", d.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadCorpus(ctx context.Context, corpus string) ([]str.Document, error) {
	const (
		Q = `SELECT id, corpus, year, tokens FROM documents WHERE corpus = ? ORDER BY year, id`
	)

	rows, err := s.handle.QueryContext(ctx, Q, corpus)
	if err != nil {
		return nil, fmt.Errorf("could not load corpus '%s': %w", corpus, err)
	}
	defer rows.Close()

	var docs []str.Document
	for rows.Next() {
		var d str.Document
		var tokens string
		if err := rows.Scan(&d.ID, &d.Corpus, &d.Year, &tokens); err != nil {
			return nil, err
		}
		if tokens != "" {
			d.Tokens = strings.Split(tokens, " ")
		}
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

func (s *SQLiteStore) ListCorpora(ctx context.Context) ([]string, error) {
	const (
		Q = `SELECT DISTINCT corpus FROM documents ORDER BY corpus`
	)

	rows, err := s.handle.QueryContext(ctx, Q)
	if err != nil {
		return nil, fmt.Errorf("could not list corpora: %w", err)
	}
	defer rows.Close()

	var cc []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cc = append(cc, c)
	}

	return cc, rows.Err()
}

func (s *SQLiteStore) SaveTable(ctx context.Context, corpus string, order int, data []byte) error {
	const (
		UPSERT = `INSERT INTO transitiontables (corpus, tableorder, data) VALUES (?, ?, ?)
			ON CONFLICT(corpus, tableorder) DO UPDATE SET data=excluded.data`
	)

	if _, err := s.handle.ExecContext(ctx, UPSERT, corpus, order, data); err != nil {
		return fmt.Errorf("could not save order-%d table for '%s': %w", order, corpus, err)
	}
	return nil
}

func (s *SQLiteStore) LoadTable(ctx context.Context, corpus string, order int) ([]byte, error) {
	const (
		Q = `SELECT data FROM transitiontables WHERE corpus = ? AND tableorder = ?`
	)

	var data []byte
	err := s.handle.QueryRowContext(ctx, Q, corpus, order).Scan(&data)
	if err != nil {
		return nil, fmt.Errorf("no stored order-%d table for '%s': %w", order, corpus, err)
	}
	return data, nil
}

func (s *SQLiteStore) Close() {
	_ = s.handle.Close()
}
