//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"strings"

	"github.com/e-gun/OratioGoServer/internal/str"
	"github.com/e-gun/OratioGoServer/internal/vec"
	"github.com/e-gun/OratioGoServer/internal/vv"
	"github.com/james-bowman/nlp"
	"github.com/labstack/echo/v4"
	"gonum.org/v1/gonum/mat"
)

//
// TOPIC, CLUSTER, AND NEIGHBOR ROUTES
//

type TopicJSON struct {
	Topic     int      `json:"topic"`
	Words     []string `json:"words"`
	Documents int      `json:"documents"`
	TopDoc    string   `json:"topdoc"`
}

type LDAReportJSON struct {
	Corpus     string      `json:"corpus"`
	Topics     int         `json:"topics"`
	Iterations int         `json:"iterations"`
	Results    []TopicJSON `json:"results"`
}

// RtLDATopics - fit an LDA model and report the top words and documents per topic
func RtLDATopics(c echo.Context) error {
	const (
		FAIL1 = "lda failed for '%s': %v"
	)

	c.Response().After(func() { SelfStats("RtLDATopics()") })

	docs, corpus, err := corpusfromcontext(c)
	if err != nil {
		return err
	}
	docs = yearfiltered(c, docs)

	k := topiccount(c)

	dot, tow, vectoriser, err := ldaover(docs, k)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf(FAIL1, corpus, err))
	}

	tops := vec.SortedTopics(tow, vectoriser, vv.TOPWORDSPERTOPIC)
	dpt := vec.DocsPerTopic(k, dot)
	tdpt := vec.TopDocPerTopic(dot)

	out := LDAReportJSON{Corpus: corpus, Topics: k, Iterations: Config.LdaIterations}
	for topic := 0; topic < k; topic++ {
		var ww []string
		for _, tw := range tops[topic] {
			ww = append(ww, tw.W)
		}
		out.Results = append(out.Results, TopicJSON{
			Topic:     topic + 1,
			Words:     ww,
			Documents: dpt[topic],
			TopDoc:    docs[tdpt[topic]].ID,
		})
	}

	return c.JSONPretty(http.StatusOK, out, vv.JSONINDENT)
}

// RtLDAChart - fit an LDA model and plot a 2d t-SNE projection of the topic mixtures
func RtLDAChart(c echo.Context) error {
	const (
		FAIL1 = "lda failed for '%s': %v"
	)

	c.Response().After(func() { SelfStats("RtLDAChart()") })

	docs, corpus, err := corpusfromcontext(c)
	if err != nil {
		return err
	}
	docs = yearfiltered(c, docs)

	k := topiccount(c)

	dot, _, _, err := ldaover(docs, k)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf(FAIL1, corpus, err))
	}

	winners := vec.DominantTopics(dot)
	xy := vec.ProjectDocs(dot, vv.TSNEPERPLEXITY, vv.TSNELEARNINGRT, vv.TSNEMAXITER)

	htmlandjs := tsnescatter("Topic mixtures: "+corpus, "topic %d", xy, winners, docids(docs), k)
	htmlandjs += topicbars(corpus, vec.DocsPerTopic(k, dot))

	return c.HTML(http.StatusOK, chartpage("Topics: "+corpus, htmlandjs))
}

type ClusterReportJSON struct {
	Corpus   string           `json:"corpus"`
	Clusters int              `json:"clusters"`
	Members  map[int][]string `json:"members"`
}

// RtClusters - k-means clustering of the documents over tf-idf vectors
func RtClusters(c echo.Context) error {
	const (
		FAIL1 = "clustering failed for '%s': %v"
	)

	c.Response().After(func() { SelfStats("RtClusters()") })

	docs, corpus, err := corpusfromcontext(c)
	if err != nil {
		return err
	}
	docs = yearfiltered(c, docs)

	k := intparam(c, "k", Config.KMeansK)
	if k < 2 {
		k = vv.KMEANSCLUSTERS
	}
	if k > len(docs) {
		k = len(docs)
	}

	bags := vec.DropStopwords(vec.BuildBags(docs))
	vectoriser := nlp.NewCountVectoriser(vec.Stops()...)

	m, err := vec.TfIdfMatrix(vec.Corpus(bags), vectoriser)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf(FAIL1, corpus, err))
	}

	rng := rand.New(rand.NewSource(randomseed(c)))

	assign, err := vec.KMeans(m, k, vv.KMEANSMAXITER, rng)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf(FAIL1, corpus, err))
	}

	if c.QueryParam("fmt") == "chart" {
		// the tf-idf matrix is (terms x docs): the same orientation the projector expects
		xy := vec.ProjectDocs(m, vv.TSNEPERPLEXITY, vv.TSNELEARNINGRT, vv.TSNEMAXITER)
		htmlandjs := tsnescatter("Clusters: "+corpus, "cluster %d", xy, assign, docids(docs), k)
		return c.HTML(http.StatusOK, chartpage("Clusters: "+corpus, htmlandjs))
	}

	out := ClusterReportJSON{Corpus: corpus, Clusters: k, Members: make(map[int][]string)}
	for doc, cl := range assign {
		out.Members[cl+1] = append(out.Members[cl+1], docs[doc].ID)
	}

	return c.JSONPretty(http.StatusOK, out, vv.JSONINDENT)
}

// docids - the document ids in corpus order, for chart labels
func docids(docs []str.Document) []string {
	ids := make([]string, len(docs))
	for i := range docs {
		ids[i] = docs[i].ID
	}
	return ids
}

type NeighborJSON struct {
	Rank int     `json:"rank"`
	Word string  `json:"word"`
	Sim  float64 `json:"similarity"`
}

// RtNeighbors - word2vec nearest neighbors of a word; a force graph unless you ask for json
func RtNeighbors(c echo.Context) error {
	const (
		FAIL1 = "no neighbors for '%s' in '%s': %v"
	)

	c.Response().After(func() { SelfStats("RtNeighbors()") })

	docs, corpus, err := corpusfromcontext(c)
	if err != nil {
		return err
	}

	word := c.Param("word")
	if Config.LowerCase {
		word = strings.ToLower(word)
	}

	ncount := intparam(c, "n", Config.VectorNeighb)

	nn, err := neighborsdata(corpus, docs, word, ncount)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, fmt.Sprintf(FAIL1, word, corpus, err))
	}

	if c.QueryParam("fmt") == "json" {
		var out []NeighborJSON
		for i, n := range nn[word] {
			out = append(out, NeighborJSON{Rank: i + 1, Word: n.Word, Sim: n.Similarity})
		}
		return c.JSONPretty(http.StatusOK, out, vv.JSONINDENT)
	}

	expanded := intparam(c, "ext", 0) == 1
	htmlandjs := buildforcegraph(word, corpus, nn, expanded)

	return c.HTML(http.StatusOK, chartpage("Neighbors: "+word, htmlandjs))
}

//
// LDA PLUMBING
//

// ldaover - bag the documents and fit the model; layouts follow the library: (topics x docs) and (topics x vocab)
func ldaover(docs []str.Document, k int) (mat.Matrix, mat.Matrix, *nlp.CountVectoriser, error) {
	bags := vec.DropStopwords(vec.BuildBags(docs))
	vectoriser := nlp.NewCountVectoriser(vec.Stops()...)

	dot, tow, err := vec.LDAModel(k, Config.LdaIterations, Config.WorkerCount, vec.Corpus(bags), vectoriser)
	if err != nil {
		return nil, nil, nil, err
	}
	return dot, tow, vectoriser, nil
}

// topiccount - ?k= with the configured default and sane bounds
func topiccount(c echo.Context) int {
	k := intparam(c, "k", Config.LdaTopics)
	if k < 2 {
		k = vv.LDATOPICS
	}
	return k
}
