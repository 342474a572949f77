//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	MYNAME    = "OratioGoServer"
	SHORTNAME = "OGS"
	VERSION   = "1.0.0"
	PROJURL   = "https://github.com/e-gun/OratioGoServer"

	CONFIGLOCATION = "."
	CONFIGALTAPTH  = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC    = "ogs-conf.json"
	CONFIGPROLIX   = "ogs-prolix-conf.json"

	SOTUCORP       = "sotu"
	FEDERALISTCORP = "federalist"
	DEFAULTCORPUS  = SOTUCORP
	DEFAULTCORPDIR = "./corpora"

	BACKENDSQLITE   = "sqlite"
	BACKENDPOSTGRES = "postgres"
	DEFAULTBACKEND  = BACKENDSQLITE
	DEFAULTSQLITE   = "ogs-corpora.db"

	DEFAULTPSQLHOST = "127.0.0.1"
	DEFAULTPSQLUSER = "ogs_wr"
	DEFAULTPSQLPORT = 5432
	DEFAULTPSQLDB   = "oratioDB"

	DEFAULTECHOLOGLEVEL = 0
	DEFAULTGOLOGLEVEL   = 0
	SERVEDFROMHOST      = "127.0.0.1"
	SERVEDFROMPORT      = 8000

	MAXECHOREQPERSECONDPERIP = 60
	MAXFOUROHFOUR            = 10
	MAXFIVEHUNDRED           = 3
	TIMEOUTRD                = 15 * time.Second
	TIMEOUTWR                = 120 * time.Second
	USEGZIP                  = false
	BLACKANDWHITE            = false

	// n-gram modeling and generation
	DEFAULTNGRAMORDER = 3
	MINNGRAMORDER     = 1
	MAXNGRAMORDER     = 6
	DEFAULTGENLENGTH  = 50
	MAXGENLENGTH      = 2000
	WSGENTHROTTLE     = 25 * time.Millisecond // pause between streamed tokens so browsers can keep up

	// frequency reporting
	FREQTABLEMAX = 100
	ZIPFMAXRANKS = 500

	// vectorization
	LDATOPICS        = 5
	LDAITERATIONS    = 50
	TOPWORDSPERTOPIC = 8
	KMEANSCLUSTERS   = 4
	KMEANSMAXITER    = 50
	TSNEPERPLEXITY   = 30
	TSNELEARNINGRT   = 100
	TSNEMAXITER      = 300

	// sampling reproducibility: "-rs 0" means "seed from the clock"
	DEFAULTRANDOMSEED = 0

	AVGTOKENSPERDOC = 8000 // SOTUs run 1k-33k words; used only to preallocate
	JSONINDENT      = "  "
	WRITEPERMS      = 0644

	MINDOCYEAR = 1789 // Washington's first annual message
	MAXDOCYEAR = 2100
)

var (
	// ServableCorpora - the corpora the server will pre-load at launch if present on disk
	ServableCorpora = []string{SOTUCORP, FEDERALISTCORP}
)
