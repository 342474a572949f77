//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/e-gun/OratioGoServer/internal/gen"
	"github.com/e-gun/OratioGoServer/internal/ngm"
	"github.com/e-gun/OratioGoServer/internal/str"
	"github.com/e-gun/OratioGoServer/internal/vv"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

//
// TEXT GENERATION ROUTES
//

type GenerationJSON struct {
	ID     string   `json:"id"`
	Corpus string   `json:"corpus"`
	Order  int      `json:"order"`
	Seed   []string `json:"seed"`
	RSeed  int64    `json:"randomseed"`
	Tokens []string `json:"tokens"`
	Text   string   `json:"text"`
}

// RtGenerateText - produce exactly n tokens from the corpus model
func RtGenerateText(c echo.Context) error {
	const (
		FAIL1 = "generation failed: %v"
	)

	c.Response().After(func() { SelfStats("RtGenerateText()") })

	docs, corpus, err := corpusfromcontext(c)
	if err != nil {
		return err
	}

	order := clampedorder(c)
	n := intparam(c, "n", Config.GenLength)
	if n > vv.MAXGENLENGTH {
		n = vv.MAXGENLENGTH
	}

	// a year-filtered model is ad hoc: it must not land in the (corpus, order, span) cache
	var tt *ngm.TransitionTable
	if filtered := yearfiltered(c, docs); len(filtered) != len(docs) {
		tt, err = ngm.Build(tokenslices(filtered), order, Config.SpanDocs)
	} else {
		tt, err = buildmodel(corpus, docs, order)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf(FAIL1, err))
	}

	rs := randomseed(c)
	rng := rand.New(rand.NewSource(rs))

	seed := seedfromquery(c)
	if len(seed) == 0 && order > 1 {
		seed = randomcontext(tt, rng)
	}

	tokens, err := ngm.GenerateFixed(tt, seed, n, rng)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if !errors.Is(err, ngm.ErrUnknownContext) {
			status = http.StatusBadRequest
		}
		return echo.NewHTTPError(status, fmt.Sprintf(FAIL1, err))
	}

	out := GenerationJSON{
		ID:     uuid.New().String(),
		Corpus: corpus,
		Order:  order,
		Seed:   seed,
		RSeed:  rs,
		Tokens: tokens,
		Text:   strings.Join(tokens, " "),
	}

	return c.JSONPretty(http.StatusOK, out, vv.JSONINDENT)
}

var wsupgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// RtWebsocketGenerate - stream an open-ended walk over the model, one token per message;
// the client closing the socket is the only way this generation ends
func RtWebsocketGenerate(c echo.Context) error {
	const (
		FAIL1 = "RtWebsocketGenerate() could not upgrade the connection: %v"
		MSG1  = "websocket generation over '%s' (order %d) ended after %d token(s)"
	)

	c.Response().After(func() { SelfStats("RtWebsocketGenerate()") })

	corpus := c.QueryParam("corpus")
	if corpus == "" {
		corpus = Config.DefCorp
	}
	docs, ok := AllCorpora.Get(corpus)
	if !ok || len(docs) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("corpus '%s' is not loaded", corpus))
	}

	order := clampedorder(c)

	tt, err := buildmodel(corpus, docs, order)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	rng := rand.New(rand.NewSource(randomseed(c)))

	seed := seedfromquery(c)
	if len(seed) == 0 && order > 1 {
		seed = randomcontext(tt, rng)
	}

	g, err := ngm.NewGenerator(tt, seed, rng)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ws, err := wsupgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		Msg.WARN(fmt.Sprintf(FAIL1, err))
		return nil
	}
	defer ws.Close()

	// send the seed first so the client sees the whole text
	for _, s := range seed {
		if err := ws.WriteMessage(websocket.TextMessage, []byte(s)); err != nil {
			return nil
		}
	}

	sent := len(seed)
	for {
		next, err := g.Next()
		if err != nil {
			// an unseen context can only mean a corrupted table; say so and stop
			_ = ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()))
			break
		}
		if err := ws.WriteMessage(websocket.TextMessage, []byte(next)); err != nil {
			// the client hung up; that is the normal way out
			break
		}
		sent++
		time.Sleep(vv.WSGENTHROTTLE)
	}

	Msg.PEEK(fmt.Sprintf(MSG1, corpus, order, sent))
	return nil
}

// RtTransitionTable - the serialized n-gram model itself; teaching tools consume this directly
func RtTransitionTable(c echo.Context) error {
	const (
		FAIL1 = "no order-%d table could be built for '%s': %v"
		FAIL2 = "corpus '%s' is not loaded and no stored table was found"
	)

	c.Response().After(func() { SelfStats("RtTransitionTable()") })

	corpus := c.Param("corpus")
	order := clampedorder(c)

	// a loaded corpus gets the live (possibly cached) model
	if docs, ok := AllCorpora.Get(corpus); ok && len(docs) > 0 {
		tt, err := buildmodel(corpus, docs, order)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf(FAIL1, order, corpus, err))
		}
		return c.JSONPretty(http.StatusOK, tt, vv.JSONINDENT)
	}

	// otherwise a table persisted by an earlier run will do
	data, err := Storage.LoadTable(context.Background(), corpus, order)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf(FAIL2, corpus))
	}

	return c.JSONBlob(http.StatusOK, data)
}

//
// MODEL PLUMBING
//

// buildmodel - fetch the cached transition table or build (and persist) a fresh one
func buildmodel(corpus string, docs []str.Document, order int) (*ngm.TransitionTable, error) {
	const (
		MSG1  = "built order-%d table for '%s': %d contexts"
		FAIL1 = "could not persist order-%d table for '%s': %v"
	)

	if tt, ok := AllModels.Get(corpus, order, Config.SpanDocs); ok {
		return tt, nil
	}

	start := time.Now()

	tt, err := ngm.Build(tokenslices(docs), order, Config.SpanDocs)
	if err != nil {
		return nil, err
	}

	AllModels.Set(corpus, order, Config.SpanDocs, tt)
	Msg.Timer("B", fmt.Sprintf(MSG1, order, corpus, tt.Contexts()), start, start)

	// stash the table so other tools can pick it up; losing the write costs nothing
	go func() {
		data, err := tt.ToJSON()
		if err == nil {
			err = Storage.SaveTable(context.Background(), corpus, order, data)
		}
		if err != nil {
			Msg.TMI(fmt.Sprintf(FAIL1, order, corpus, err))
		}
	}()

	return tt, nil
}

// tokenslices - each document's tokens, in corpus order
func tokenslices(docs []str.Document) [][]string {
	dd := make([][]string, len(docs))
	for i := range docs {
		dd[i] = docs[i].Tokens
	}
	return dd
}

// randomcontext - no seed supplied: draw a known context so generation can begin anywhere
func randomcontext(tt *ngm.TransitionTable, rng *rand.Rand) []string {
	keys := gen.SortedMapKeys(tt.Table)
	k := keys[rng.Intn(len(keys))]
	return strings.Split(k, ngm.CTXJOIN)
}

// clampedorder - ?order= with the configured default and hard bounds
func clampedorder(c echo.Context) int {
	order := intparam(c, "order", Config.NgramOrder)
	if order < vv.MINNGRAMORDER {
		order = vv.MINNGRAMORDER
	}
	if order > vv.MAXNGRAMORDER {
		order = vv.MAXNGRAMORDER
	}
	return order
}

// randomseed - ?rs= wins; then the configured seed; 0 means "from the clock"
func randomseed(c echo.Context) int64 {
	rs := int64(intparam(c, "rs", int(Config.RandomSeed)))
	if rs == 0 {
		rs = time.Now().UnixNano()
	}
	return rs
}
