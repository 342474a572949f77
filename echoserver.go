//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/e-gun/OratioGoServer/internal/vv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var (
	EchoServerStats = NewEchoResponseStats()
)

// StartEchoServer - start serving; this blocks and does not return while the program remains alive
func StartEchoServer() {
	const (
		LLOGFMT = "r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
		RLOGFMT = "i: ${remote_ip}\t r: ${status}\tt: ${latency_human}\tu: ${uri}\n"
	)

	//
	// SETUP
	//

	e := echo.New()

	e.Server.ReadTimeout = vv.TIMEOUTRD
	e.Server.WriteTimeout = vv.TIMEOUTWR

	e.Use(EchoServerStats.PoliceResponse)

	if Config.EchoLog == 3 {
		e.Use(middleware.Logger())
	} else if Config.EchoLog == 2 {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: RLOGFMT}))
	} else if Config.EchoLog == 1 {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{Format: LLOGFMT}))
	}

	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(vv.MAXECHOREQPERSECONDPERIP)))

	e.Use(middleware.Recover())

	if Config.Gzip {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{Level: 5}))
	}

	//
	// ORATIO ROUTES
	//

	//
	// [a] frontpage ("rt-frontpage.go")
	//

	e.GET("/", RtFrontpage)

	//
	// [b] corpora ("rt-corpora.go")
	//

	e.GET("/corpora", RtCorporaList)                // "u: /corpora"
	e.GET("/corpora/ingest/:corpus", RtCorporaLoad) // "u: /corpora/ingest/sotu"

	//
	// [c] frequencies ("rt-frequencies.go")
	//

	e.GET("/freq/table/:corpus", RtFrequencies) // "u: /freq/table/sotu?max=50&from=1945"
	e.GET("/freq/zipf/:corpus", RtZipfChart)    // "u: /freq/zipf/sotu"

	//
	// [d] generation ("rt-generation.go")
	//

	e.GET("/gen/text/:corpus", RtGenerateText)      // "u: /gen/text/sotu?seed=the+union&n=50&order=3"
	e.GET("/gen/table/:corpus", RtTransitionTable)  // "u: /gen/table/sotu?order=2"
	e.GET("/ws/generate", RtWebsocketGenerate)      // open-ended streaming generation

	//
	// [e] vectors ("rt-vectors.go")
	//

	e.GET("/lda/topics/:corpus", RtLDATopics)        // "u: /lda/topics/sotu?k=5"
	e.GET("/lda/chart/:corpus", RtLDAChart)          // t-SNE scatter of the topic mixtures
	e.GET("/cluster/:corpus", RtClusters)            // "u: /cluster/sotu?k=4"
	e.GET("/neighbors/:corpus/:word", RtNeighbors)   // "u: /neighbors/sotu/liberty"

	e.HideBanner = true
	e.Logger.Fatal(e.Start(fmt.Sprintf("%s:%d", Config.HostIP, Config.HostPort)))
}

//
// SERVERSTATS
//

type EchoResponseStats struct {
	TwoHundred  uint64
	FourOhThree uint64
	FourOhFour  uint64
	FiveHundred uint64
	Scanners    map[string]int
	Hackers     map[string]int
	Blacklist   map[string]struct{}
	mutex       sync.RWMutex
}

func NewEchoResponseStats() *EchoResponseStats {
	return &EchoResponseStats{
		TwoHundred:  0,
		FourOhThree: 0,
		FourOhFour:  0,
		FiveHundred: 0,
		Scanners:    make(map[string]int),
		Hackers:     make(map[string]int),
		Blacklist:   make(map[string]struct{}),
		mutex:       sync.RWMutex{},
	}
}

// PoliceResponse - track response code counts and block repeat 404 offenders
func (ers *EchoResponseStats) PoliceResponse(nextechohandler echo.HandlerFunc) echo.HandlerFunc {
	const (
		BLACK0 = `IP address %s was blacklisted: too many previous response code errors`
		BLACK1 = `IP address %s was blacklisted: %d StatusNotFound errors`
		BLACK2 = `IP address %s was blacklisted: %d StatusInternalServerError errors`
		FYI200 = `StatusOK count is %d`
		FRQ200 = 1000
		FYI403 = `StatusForbidden count is %d. There are %d IPs currently on the blacklist.`
		FRQ403 = 100
		FYI404 = `StatusNotFound count is %d`
		FRQ404 = 50
		FYI500 = `StatusInternalServerError count is %d`
		FRQ500 = 25
	)

	return func(c echo.Context) error {
		ip := c.RealIP()

		ers.mutex.Lock()
		defer ers.mutex.Unlock()

		if _, yes := ers.Blacklist[ip]; yes {
			ers.FourOhThree++
			if ers.FourOhThree%FRQ403 == 0 {
				Msg.NOTE(fmt.Sprintf(FYI403, ers.FourOhThree, len(ers.Blacklist)))
			}

			e := echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf(BLACK0, c.RealIP()))
			return e
		}

		if err := nextechohandler(c); err != nil {
			c.Error(err)
		}

		switch c.Response().Status {
		case 200:
			ers.TwoHundred++
			if ers.TwoHundred%FRQ200 == 0 {
				Msg.NOTE(fmt.Sprintf(FYI200, ers.TwoHundred))
			}

		case 404:
			ers.FourOhFour++

			if _, ok := ers.Scanners[ip]; !ok {
				ers.Scanners[ip] = 1
			} else {
				ers.Scanners[ip]++
			}

			if ers.Scanners[ip] >= vv.MAXFOUROHFOUR {
				ers.Blacklist[ip] = struct{}{}
				Msg.WARN(fmt.Sprintf(BLACK1, c.RealIP(), ers.Scanners[ip]))
			}

			if ers.FourOhFour%FRQ404 == 0 {
				Msg.NOTE(fmt.Sprintf(FYI404, ers.FourOhFour))
			}

		case 500:
			ers.FiveHundred++

			if _, ok := ers.Hackers[ip]; !ok {
				ers.Hackers[ip] = 1
			} else {
				ers.Hackers[ip]++
			}

			if ers.Hackers[ip] >= vv.MAXFIVEHUNDRED {
				ers.Blacklist[ip] = struct{}{}
				Msg.WARN(fmt.Sprintf(BLACK2, c.RealIP(), ers.Hackers[ip]))
			}

			if ers.FiveHundred%FRQ500 == 0 {
				Msg.WARN(fmt.Sprintf(FYI500, ers.FiveHundred))
			}

		default:
			// do nothing; 101 from "/ws/generate" is the only other code one sees often
		}
		return nil
	}
}

// SelfStats - count a route hit after the response goes out
func SelfStats(fn string) {
	Msg.LogPaths(fn)
}
