//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"context"

	"github.com/e-gun/OratioGoServer/internal/lnch"
	"github.com/e-gun/OratioGoServer/internal/str"
)

var Msg = lnch.Msg

//
// CORPUS PERSISTENCE
//

// CorpusStore - documents go in at ingestion time and come back out when a model,
// frequency table, or vector run wants them; built transition tables can be parked
// here too so a restart does not force a rebuild
type CorpusStore interface {
	SaveDocuments(ctx context.Context, docs []str.Document) error
	LoadCorpus(ctx context.Context, corpus string) ([]str.Document, error)
	ListCorpora(ctx context.Context) ([]string, error)
	SaveTable(ctx context.Context, corpus string, order int, data []byte) error
	LoadTable(ctx context.Context, corpus string, order int) ([]byte, error)
	Close()
}
