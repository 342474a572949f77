//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"text/template"

	"github.com/e-gun/OratioGoServer/internal/mm"
	"github.com/e-gun/OratioGoServer/internal/str"
	"github.com/e-gun/OratioGoServer/internal/vv"
)

var (
	Config *str.CurrentConfiguration
	Msg    = mm.NewMessageMaker()
)

// ConfigAtLaunch - read the configuration values from JSON and/or command line
func ConfigAtLaunch() {
	const (
		FAIL1 = "Could not parse your information as a valid collection of credentials. Use the following template:"
		FAIL2 = `"{\"Pass\": \"YOURPASSWORDHERE\" ,\"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"oratioDB\" ,\"User\": \"ogs_wr\"}"`
		FAIL3 = `Could not parse the information in '%s'. Skipping and attempting to use built-in defaults instead.`
		FAIL5 = "Refusing to set a workercount greater than NumCPU: %d > %d ---> setting workercount value to NumCPU: %d"
		FAIL6 = "Could not open '%s'"
		FAIL7 = "ConfigAtLaunch() failed to execute help text template"
		FAIL8 = "Cannot find current working directory"
		FAIL9 = "Ignoring out of range n-gram order: %d; valid orders are %d-%d"
	)

	Config = BuildDefaultConfig()

	uh, _ := os.UserHomeDir()
	h := fmt.Sprintf(vv.CONFIGALTAPTH, uh)
	prolixcfg := fmt.Sprintf("%s/%s", h, vv.CONFIGPROLIX)

	loadedcfg, e := os.Open(prolixcfg)
	if e != nil {
		Msg.TMI(fmt.Sprintf(FAIL6, prolixcfg))
	}

	decoderc := json.NewDecoder(loadedcfg)
	confc := str.CurrentConfiguration{}
	errc := decoderc.Decode(&confc)
	_ = loadedcfg.Close()

	if errc == nil {
		Config = &confc
	} else if e == nil {
		Msg.CRIT(fmt.Sprintf(FAIL3, prolixcfg))
	}

	// an old CONFIGPROLIX might leave the following zeroed; that is very bad...
	if Config.NgramOrder == 0 {
		Config.NgramOrder = vv.DEFAULTNGRAMORDER
	}

	if Config.GenLength == 0 {
		Config.GenLength = vv.DEFAULTGENLENGTH
	}

	args := os.Args[1:len(os.Args)]

	help := func() {
		PrintVersion(*Config)
		PrintBuildInfo(*Config)
		cwd, err := os.Getwd()
		if err != nil {
			Msg.CRIT(FAIL8)
			cwd = "(unknown)"
		}

		m := map[string]interface{}{
			"backend":   Config.Backend,
			"conffile":  vv.CONFIGPROLIX,
			"corpdir":   Config.CorpusDir,
			"cpus":      runtime.NumCPU(),
			"cwd":       cwd,
			"defcorp":   Config.DefCorp,
			"echoll":    Config.EchoLog,
			"home":      h,
			"host":      Config.HostIP,
			"knowncorp": strings.Join(vv.ServableCorpora, "C0, C3"),
			"ldait":     Config.LdaIterations,
			"ldatopics": Config.LdaTopics,
			"minord":    vv.MINNGRAMORDER,
			"maxord":    vv.MAXNGRAMORDER,
			"ogsll":     Config.LogLevel,
			"order":     Config.NgramOrder,
			"port":      Config.HostPort,
			"projurl":   vv.PROJURL,
			"seed":      Config.RandomSeed,
			"sqfile":    Config.SQLiteFile,
			"workers":   Config.WorkerCount}

		t := template.Must(template.New("").Parse(vv.HELPTEXTTEMPLATE))

		var b bytes.Buffer
		if ee := t.Execute(&b, m); ee != nil {
			Msg.CRIT(FAIL7)
		}
		fmt.Println(Msg.Styled(Msg.Color(b.String())))

		os.Exit(0)
	}

	for i, a := range args {
		switch a {
		case "-vv":
			PrintVersion(*Config)
			PrintBuildInfo(*Config)
			os.Exit(1)
		case "-v":
			fmt.Println(vv.VERSION + VersSuppl)
			os.Exit(1)
		case "-be":
			Config.Backend = args[i+1]
		case "-bw":
			Config.BlackAndWhite = true
		case "-cd":
			Config.CorpusDir = args[i+1]
		case "-cp":
			Config.DefCorp = args[i+1]
		case "-el":
			ll, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.EchoLog = ll
		case "-gl":
			ll, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.LogLevel = ll
		case "-gz":
			Config.Gzip = true
		case "-h":
			help()
		case "-lc":
			Config.LowerCase = true
		case "-li":
			li, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.LdaIterations = li
		case "-lt":
			lt, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.LdaTopics = lt
		case "-nd":
			Config.SpanDocs = false
		case "-no":
			no, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			if no < vv.MINNGRAMORDER || no > vv.MAXNGRAMORDER {
				Msg.CRIT(fmt.Sprintf(FAIL9, no, vv.MINNGRAMORDER, vv.MAXNGRAMORDER))
			} else {
				Config.NgramOrder = no
			}
		case "-pc":
			Config.ProfileCPU = true
		case "-pg":
			js := args[i+1]
			var pl str.PostgresLogin
			err := json.Unmarshal([]byte(js), &pl)
			if err != nil {
				Msg.MAND(FAIL1)
				Msg.CRIT(FAIL2)
			}
			Config.PGLogin = pl
		case "-pm":
			Config.ProfileMEM = true
		case "-q":
			Config.QuietStart = true
		case "-rs":
			rs, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.RandomSeed = int64(rs)
		case "-sa":
			Config.HostIP = args[i+1]
		case "-sp":
			p, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.HostPort = p
		case "-sq":
			Config.SQLiteFile = args[i+1]
		case "-tk":
			Config.TickerActive = true
		case "-wc":
			wc, err := strconv.Atoi(args[i+1])
			Msg.EC(err)
			Config.WorkerCount = wc
		default:
			// do nothing
		}
	}

	y := ""
	if errc != nil {
		y = " *not*"
	}
	Msg.TMI(fmt.Sprintf("'%s%s'%s loaded", h, vv.CONFIGPROLIX, y))

	if Config.Backend == vv.BACKENDPOSTGRES {
		SetConfigPass(Config)
	}

	if Config.WorkerCount > runtime.NumCPU() {
		Msg.CRIT(fmt.Sprintf(FAIL5, Config.WorkerCount, runtime.NumCPU(), runtime.NumCPU()))
		Config.WorkerCount = runtime.NumCPU()
	}
}

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.Backend = vv.DEFAULTBACKEND
	c.BlackAndWhite = vv.BLACKANDWHITE
	c.CorpusDir = vv.DEFAULTCORPDIR
	c.DefCorp = vv.DEFAULTCORPUS
	c.EchoLog = vv.DEFAULTECHOLOGLEVEL
	c.GenLength = vv.DEFAULTGENLENGTH
	c.Gzip = vv.USEGZIP
	c.HostIP = vv.SERVEDFROMHOST
	c.HostPort = vv.SERVEDFROMPORT
	c.KMeansK = vv.KMEANSCLUSTERS
	c.LdaGraph = false
	c.LdaIterations = vv.LDAITERATIONS
	c.LdaTopics = vv.LDATOPICS
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.LowerCase = false
	c.NgramOrder = vv.DEFAULTNGRAMORDER
	c.ProfileCPU = false
	c.ProfileMEM = false
	c.QuietStart = false
	c.RandomSeed = vv.DEFAULTRANDOMSEED
	c.SpanDocs = true
	c.SQLiteFile = vv.DEFAULTSQLITE
	c.TickerActive = false
	c.VectorNeighb = vv.VECTORNEIGHBORS
	c.WorkerCount = runtime.NumCPU()

	pl := str.PostgresLogin{
		Host:   vv.DEFAULTPSQLHOST,
		Port:   vv.DEFAULTPSQLPORT,
		User:   vv.DEFAULTPSQLUSER,
		Pass:   "",
		DBName: vv.DEFAULTPSQLDB,
	}

	c.PGLogin = pl

	return &c
}

// SetConfigPass - make sure that Config.PGLogin.Pass != "" when the postgres backend was requested
func SetConfigPass(cfg *str.CurrentConfiguration) {
	const (
		FAIL3     = "FAILED to load database credentials from either '%s' or '%s'"
		FAIL4     = "At a minimum be sure that a '%s' file exists and that it has the following format:"
		FAIL6     = "Could not open '%s'"
		BLANKPASS = "PostgreSQLPassword is blank. Check your '%s' file.\n"
	)
	type ConfigFile struct {
		PostgreSQLPassword string
	}

	uh, _ := os.UserHomeDir()
	h := fmt.Sprintf(vv.CONFIGALTAPTH, uh)

	cf := fmt.Sprintf("%s/%s", vv.CONFIGLOCATION, vv.CONFIGBASIC)
	acf := fmt.Sprintf("%s%s", h, vv.CONFIGBASIC)

	if cfg.PGLogin.Pass == "" {
		cfa, ee := os.Open(cf)
		if ee != nil {
			Msg.TMI(fmt.Sprintf(FAIL6, cf))
		}
		cfb, ee := os.Open(acf)
		if ee != nil {
			Msg.TMI(fmt.Sprintf(FAIL6, acf))
		}

		defer func(cfa *os.File) {
			err := cfa.Close()
			if err != nil {
			} // the file was almost certainly not found in the first place...
		}(cfa)
		defer func(cfb *os.File) {
			err := cfb.Close()
			if err != nil {
			} // the file was almost certainly not found in the first place...
		}(cfb)

		decodera := json.NewDecoder(cfa)
		confa := ConfigFile{}
		erra := decodera.Decode(&confa)

		decoderb := json.NewDecoder(cfb)
		confb := ConfigFile{}
		errb := decoderb.Decode(&confb)

		if erra != nil && errb != nil {
			Msg.CRIT(fmt.Sprintf(FAIL3, cf, acf))
			Msg.CRIT(fmt.Sprintf(FAIL4, vv.CONFIGBASIC))
			fmt.Printf(vv.MINCONFIG)
			Msg.ExitOrHang(0)
		}

		thecfg := ConfigFile{}
		if erra == nil {
			thecfg = confa
		} else {
			thecfg = confb
		}

		if thecfg.PostgreSQLPassword == "" {
			Msg.MAND(fmt.Sprintf(BLANKPASS, vv.CONFIGBASIC))
		}

		cfg.PGLogin = str.PostgresLogin{
			Host:   vv.DEFAULTPSQLHOST,
			Port:   vv.DEFAULTPSQLPORT,
			User:   vv.DEFAULTPSQLUSER,
			DBName: vv.DEFAULTPSQLDB,
			Pass:   thecfg.PostgreSQLPassword,
		}
	}
}
