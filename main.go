//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/e-gun/OratioGoServer/internal/db"
	"github.com/e-gun/OratioGoServer/internal/lnch"
	"github.com/e-gun/OratioGoServer/internal/mm"
	"github.com/e-gun/OratioGoServer/internal/str"
	"github.com/e-gun/OratioGoServer/internal/tok"
	"github.com/e-gun/OratioGoServer/internal/vv"
	"github.com/pkg/profile"
)

var (
	Config  *str.CurrentConfiguration
	Msg     = lnch.Msg
	Storage db.CorpusStore
)

func main() {
	const (
		MSG1  = "%s (v%s) is ready to serve"
		FAIL1 = "could not open the %s storage backend"
		TICK  = 2 * time.Second
	)

	lnch.ConfigAtLaunch()
	Config = lnch.Config
	lnch.UpdateMessageMakerWithConfig()

	if !Config.QuietStart {
		lnch.PrintVersion(*Config)
		lnch.PrintBuildInfo(*Config)
		fmt.Println(Msg.Styled(Msg.Color(vv.TERMINALTEXT)))
	}

	// profiling: "-pc" and "-pm"
	if Config.ProfileCPU {
		defer profile.Start().Stop()
	} else if Config.ProfileMEM {
		defer profile.Start(profile.MemProfile).Stop()
	}

	go mm.PathInfoHub()

	if Config.TickerActive {
		Msg.ResetScreen()
		go Msg.Ticker(TICK)
	}

	// [a] attach the storage backend
	var err error
	switch Config.Backend {
	case vv.BACKENDPOSTGRES:
		Storage, err = db.OpenPGStore(*Config)
	default:
		Storage, err = db.OpenSQLiteStore(Config.SQLiteFile)
	}
	if err != nil {
		Msg.MAND(fmt.Sprintf(FAIL1, Config.Backend))
		Msg.Error(err)
	}

	// [b] load the corpora concurrently: from disk if present, from storage otherwise
	var awaiting sync.WaitGroup
	for _, corpus := range vv.ServableCorpora {
		awaiting.Add(1)
		go func(corpus string) {
			defer awaiting.Done()
			preloadcorpus(corpus)
		}(corpus)
	}
	awaiting.Wait()

	Msg.MAND(fmt.Sprintf(MSG1, vv.MYNAME, vv.VERSION))

	StartEchoServer()
}

// preloadcorpus - ingest a corpus directory if one exists; fall back to the storage backend
func preloadcorpus(corpus string) {
	const (
		MSG1  = "ingested corpus '%s': %d documents, %d tokens"
		MSG2  = "loaded corpus '%s' from storage: %d documents"
		MSG3  = "corpus '%s' is not available; ingest it later via '/corpora/ingest/%s'"
		FAIL1 = "corpus '%s' skipped document: %v"
		FAIL2 = "could not persist corpus '%s': %v"
	)

	start := time.Now()

	dir := filepath.Join(Config.CorpusDir, corpus)
	if _, err := os.Stat(dir); err == nil {
		tk := tok.NewTokenizer(Config.LowerCase)
		docs, errs := db.IngestDirectory(corpus, dir, tk, db.FilenameMeta, Config.WorkerCount)
		for _, e := range errs {
			Msg.WARN(fmt.Sprintf(FAIL1, corpus, e))
		}
		if len(docs) > 0 {
			if err := Storage.SaveDocuments(context.Background(), docs); err != nil {
				Msg.WARN(fmt.Sprintf(FAIL2, corpus, err))
			}
			AllCorpora.Set(corpus, docs)
			Msg.Timer("A", fmt.Sprintf(MSG1, corpus, len(docs), str.TokenCount(docs)), start, start)
			return
		}
	}

	docs, err := Storage.LoadCorpus(context.Background(), corpus)
	if err == nil && len(docs) > 0 {
		AllCorpora.Set(corpus, docs)
		Msg.Timer("A", fmt.Sprintf(MSG2, corpus, len(docs)), start, start)
		return
	}

	Msg.NOTE(fmt.Sprintf(MSG3, corpus, corpus))
}
