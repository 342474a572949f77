//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/e-gun/OratioGoServer/internal/str"
	"github.com/jackc/pgx/v5/pgxpool"
)

//
// POSTGRES BACKEND
//

const (
	pgschemadocs = `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		corpus TEXT NOT NULL,
		year INTEGER NOT NULL,
		tokens TEXT NOT NULL
	)`
	pgschematables = `
	CREATE TABLE IF NOT EXISTS transitiontables (
		corpus TEXT NOT NULL,
		tableorder INTEGER NOT NULL,
		data BYTEA NOT NULL,
		PRIMARY KEY (corpus, tableorder)
	)`
)

type PGStore struct {
	pool *pgxpool.Pool
}

// FillPGConnectionPool - build the pgxpool the store will Acquire() from
func FillPGConnectionPool(cfg str.CurrentConfiguration) (*pgxpool.Pool, error) {
	// if min < WorkerCount, parallel ingestion will fight over idle connections

	const (
		UTPL    = "postgres://%s:%s@%s:%d/%s?pool_min_conns=%d&pool_max_conns=%d"
		FAIL1   = "configuration error: could not execute ParseConfig(url) via '%s': %w"
		FAIL2   = "could not connect to PostgreSQL: %w"
		ERRRUN  = `dial error`
		FAILRUN = `'%s': the PostgreSQL server cannot be found; check that it is running and serving on port %d`
	)

	mn := cfg.WorkerCount
	mx := 4 * cfg.WorkerCount

	pl := cfg.PGLogin
	url := fmt.Sprintf(UTPL, pl.User, pl.Pass, pl.Host, pl.Port, pl.DBName, mn, mx)

	config, e := pgxpool.ParseConfig(url)
	if e != nil {
		return nil, fmt.Errorf(FAIL1, url, e)
	}

	thepool, e := pgxpool.NewWithConfig(context.Background(), config)
	if e != nil {
		if strings.Contains(e.Error(), ERRRUN) {
			// a postgres backend that cannot be dialed means no launch at all
			Msg.MAND(fmt.Sprintf(FAILRUN, ERRRUN, pl.Port))
			Msg.EF(e, "FillPGConnectionPool()")
		}
		return nil, fmt.Errorf(FAIL2, e)
	}
	return thepool, nil
}

// OpenPGStore - connect and make sure the schema exists
func OpenPGStore(cfg str.CurrentConfiguration) (*PGStore, error) {
	pool, err := FillPGConnectionPool(cfg)
	if err != nil {
		return nil, err
	}

	for _, schema := range []string{pgschemadocs, pgschematables} {
		if _, err := pool.Exec(context.Background(), schema); err != nil {
			pool.Close()
			return nil, fmt.Errorf("could not initialize postgres schema: %w", err)
		}
	}

	return &PGStore{pool: pool}, nil
}

func (s *PGStore) SaveDocuments(ctx context.Context, docs []str.Document) error {
	const (
		UPSERT = `INSERT INTO documents (id, corpus, year, tokens) VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET corpus=excluded.corpus, year=excluded.year, tokens=excluded.tokens`
	)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres transaction failed to start: %w", err)
	}

	for i := range docs {
		d := &docs[i]
		if _, err := tx.Exec(ctx, UPSERT, d.ID, d.Corpus, d.Year, strings.Join(d.Tokens, " ")); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("could not save document '%s': %w", d.ID, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *PGStore) LoadCorpus(ctx context.Context, corpus string) ([]str.Document, error) {
	const (
		Q = `SELECT id, corpus, year, tokens FROM documents WHERE corpus = $1 ORDER BY year, id`
	)

	rows, err := s.pool.Query(ctx, Q, corpus)
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

func (s *PGStore) ListCorpora(ctx context.Context) ([]string, error) {
	const (
		Q = `SELECT DISTINCT corpus FROM documents ORDER BY corpus`
	)

	rows, err := s.pool.Query(ctx, Q)
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

func (s *PGStore) SaveTable(ctx context.Context, corpus string, order int, data []byte) error {
	const (
		UPSERT = `INSERT INTO transitiontables (corpus, tableorder, data) VALUES ($1, $2, $3)
			ON CONFLICT (corpus, tableorder) DO UPDATE SET data=excluded.data`
	)

	if _, err := s.pool.Exec(ctx, UPSERT, corpus, order, data); err != nil {
		return fmt.Errorf("could not save order-%d table for '%s': %w", order, corpus, err)
	}
	return nil
}

func (s *PGStore) LoadTable(ctx context.Context, corpus string, order int) ([]byte, error) {
	const (
		Q = `SELECT data FROM transitiontables WHERE corpus = $1 AND tableorder = $2`
	)

	var data []byte
	err := s.pool.QueryRow(ctx, Q, corpus, order).Scan(&data)
	if err != nil {
		return nil, fmt.Errorf("no stored order-%d table for '%s': %w", order, corpus, err)
	}
	return data, nil
}

func (s *PGStore) Close() {
	s.pool.Close()
}
