//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"text/template"

	"github.com/e-gun/OratioGoServer/internal/str"
	"github.com/e-gun/OratioGoServer/internal/vv"
	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// RtFrontpage - the index page: what is loaded and what you can ask of it
func RtFrontpage(c echo.Context) error {
	const (
		FAIL1 = "RtFrontpage() failed to execute its template"

		PAGE = `<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<title>{{.Name}}</title>
	<style>
		body { font-family: Georgia, serif; margin: 3em auto; max-width: 52em; color: #222; }
		code { background: #f2f2f2; padding: 0 .3em; }
		td { padding: .2em .8em .2em 0; }
	</style>
</head>
<body>
	<h1>{{.Name}} <small>(v{{.Version}})</small></h1>
	<p>statistical exploration of teaching corpora: frequencies, Zipf curves,
	n-gram text generation, topic models, clusters, and word neighborhoods</p>
	<h2>loaded corpora</h2>
	<table>{{range .Corpora}}
		<tr><td><code>{{.Name}}</code></td><td>{{.Docs}} documents</td><td>{{.Tokens}} tokens</td></tr>{{end}}
	</table>
	<h2>routes</h2>
	<table>
		<tr><td><code>/corpora</code></td><td>list the loaded corpora</td></tr>
		<tr><td><code>/corpora/ingest/{corpus}</code></td><td>(re)ingest a corpus directory</td></tr>
		<tr><td><code>/freq/table/{corpus}?max=N&from=Y&to=Y</code></td><td>rank/frequency table</td></tr>
		<tr><td><code>/freq/zipf/{corpus}</code></td><td>log-log rank/frequency chart with fitted slope</td></tr>
		<tr><td><code>/gen/text/{corpus}?seed=W+W&n=N&order=K</code></td><td>generate N tokens from a K-gram model</td></tr>
		<tr><td><code>/gen/table/{corpus}?order=K</code></td><td>the K-gram transition table as JSON</td></tr>
		<tr><td><code>/ws/generate?corpus=C&seed=W+W&order=K</code></td><td>websocket: open-ended token stream</td></tr>
		<tr><td><code>/lda/topics/{corpus}?k=N</code></td><td>LDA topics: top words and documents</td></tr>
		<tr><td><code>/lda/chart/{corpus}?k=N</code></td><td>t-SNE scatter of topic mixtures</td></tr>
		<tr><td><code>/cluster/{corpus}?k=N</code></td><td>k-means clusters over tf-idf vectors</td></tr>
		<tr><td><code>/neighbors/{corpus}/{word}</code></td><td>word2vec nearest-neighbor graph</td></tr>
	</table>
</body>
</html>`
	)

	type corpusinfo struct {
		Name   string
		Docs   int
		Tokens string
	}

	p := message.NewPrinter(language.English)

	var cc []corpusinfo
	for _, n := range AllCorpora.Names() {
		docs, _ := AllCorpora.Get(n)
		cc = append(cc, corpusinfo{
			Name:   n,
			Docs:   len(docs),
			Tokens: p.Sprintf("%d", str.TokenCount(docs)),
		})
	}

	m := map[string]interface{}{
		"Name":    vv.MYNAME,
		"Version": vv.VERSION,
		"Corpora": cc,
	}

	t := template.Must(template.New("frontpage").Parse(PAGE))
	var b bytes.Buffer
	if err := t.Execute(&b, m); err != nil {
		Msg.CRIT(FAIL1)
		return c.String(http.StatusInternalServerError, FAIL1)
	}

	return c.HTML(http.StatusOK, b.String())
}

// chartpage - wrap chart html+js in a minimal page shell
func chartpage(title string, htmlandjs string) string {
	const (
		SHELL = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>%s</title></head>
<body>%s</body>
</html>`
	)
	return fmt.Sprintf(SHELL, title, htmlandjs)
}

// seedfromquery - "seed=we+the" --> ["we", "the"]; folding matches the corpus
func seedfromquery(c echo.Context) []string {
	raw := strings.TrimSpace(c.QueryParam("seed"))
	if raw == "" {
		return []string{}
	}
	if Config.LowerCase {
		raw = strings.ToLower(raw)
	}
	return strings.Fields(raw)
}
