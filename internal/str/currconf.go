//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type CurrentConfiguration struct {
	Backend       string // "sqlite" or "postgres"
	BlackAndWhite bool
	CorpusDir     string
	DefCorp       string
	EchoLog       int // 0: "none", 1: "terse", 2: "prolix", 3: "prolix+remoteip"
	GenLength     int
	Gzip          bool
	HostIP        string
	HostPort      int
	KMeansK       int
	LdaGraph      bool
	LdaIterations int
	LdaTopics     int
	LogLevel      int
	LowerCase     bool
	NgramOrder    int
	PGLogin       PostgresLogin
	ProfileCPU    bool
	ProfileMEM    bool
	QuietStart    bool
	RandomSeed    int64 // 0: seed the generator from the clock
	SpanDocs      bool  // n-gram contexts may cross document boundaries
	SQLiteFile    string
	TickerActive  bool
	VectorNeighb  int
	WorkerCount   int
}
