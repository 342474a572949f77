//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"math"
	"regexp"

	"github.com/e-gun/OratioGoServer/internal/frq"
	"github.com/e-gun/OratioGoServer/internal/gen"
	"github.com/e-gun/OratioGoServer/internal/vv"
	"github.com/e-gun/wego/pkg/search"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/mat"
)

//
// GRAPHING
//

// go-echarts is "too clever" and opaque about how to not do things its way:
// its page.Render() emits a whole html document when all we want is the div
// plus the js. So we override the renderer (see the ModX and CustomX code
// below) and wrap the output in our own page shell.

// renderchart - run any single chart through the overridden page renderer
func renderchart(g components.Charter) string {
	const (
		FAIL1 = "renderchart() could not render the chart: %v"
	)

	// [a] we are building a page with only one chart and doing it by hand
	g.Validate()

	p := components.NewPage()
	p.Renderer = NewCustomPageRender(p, p.Validate)

	// [b] add assets to the page
	assets := g.GetAssets()
	for _, v := range assets.JSAssets.Values {
		p.JSAssets.Add(v)
	}

	for _, v := range assets.CSSAssets.Values {
		p.CSSAssets.Add(v)
	}

	// [c] add the chart to the page
	p.Charts = append(p.Charts, g)
	p.Validate()

	// [d] render the chart and get the html+js for it
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		Msg.WARN(fmt.Sprintf(FAIL1, err))
		return ""
	}

	return buf.String()
}

// zipfscatter - log-log scatter of a rank/frequency table with the fitted regression line on top
func zipfscatter(corpus string, table []frq.WordCount, slope float64, intercept float64) string {
	const (
		TITLESTR   = "Rank vs frequency: %s"
		SUBTITLE   = "fitted slope: %.4f (Zipf predicts ca. -1)"
		XAXISNAME  = "log10(rank)"
		YAXISNAME  = "log10(count)"
		SERIESPTS  = "words"
		SERIESLINE = "fit"
		SYMBOLSIZE = 6
	)

	if len(table) > vv.ZIPFMAXRANKS {
		table = table[:vv.ZIPFMAXRANKS]
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: vv.DEFAULTCHRTWIDTH, Height: vv.DEFAULTCHRTHEIGHT}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf(TITLESTR, corpus), Subtitle: fmt.Sprintf(SUBTITLE, slope)}),
		charts.WithXAxisOpts(opts.XAxis{Name: XAXISNAME, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: YAXISNAME, Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Formatter: "{b}"}),
	)

	var pts []opts.ScatterData
	for _, w := range table {
		x := math.Log10(float64(w.Rank))
		y := math.Log10(float64(w.Count))
		pts = append(pts, opts.ScatterData{Name: w.Word, Value: []interface{}{x, y}, SymbolSize: SYMBOLSIZE})
	}
	sc.AddSeries(SERIESPTS, pts)

	// the regression line only needs its two endpoints
	x0 := 0.0
	x1 := math.Log10(float64(table[len(table)-1].Rank))
	ln := charts.NewLine()
	ln.AddSeries(SERIESLINE, []opts.LineData{
		{Value: []interface{}{x0, intercept + slope*x0}},
		{Value: []interface{}{x1, intercept + slope*x1}},
	})

	sc.Overlap(ln)

	return renderchart(sc)
}

// tsnescatter - 2d embedding of the documents, one series per group (topic, cluster, ...)
func tsnescatter(title string, seriesfmt string, xy *mat.Dense, winners []int, ids []string, ngroups int) string {
	const (
		SUBTITLE   = "t-SNE projection of %d documents into the plane"
		SYMBOLSIZE = 10
	)

	nd, _ := xy.Dims()

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: vv.DEFAULTCHRTWIDTH, Height: vv.DEFAULTCHRTHEIGHT}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf(SUBTITLE, nd)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Formatter: "{b}"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
	)

	for g := 0; g < ngroups; g++ {
		var pts []opts.ScatterData
		for doc := 0; doc < nd; doc++ {
			if winners[doc] != g {
				continue
			}
			pts = append(pts, opts.ScatterData{
				Name:       ids[doc],
				Value:      []interface{}{xy.At(doc, 0), xy.At(doc, 1)},
				SymbolSize: SYMBOLSIZE,
			})
		}
		sc.AddSeries(fmt.Sprintf(seriesfmt, g+1), pts)
	}

	return renderchart(sc)
}

// topicbars - how many documents each topic claimed as its own
func topicbars(corpus string, dpt []int) string {
	const (
		TITLESTR   = "Documents per dominant topic: %s"
		SERIESNAME = "documents"
		BARHEIGHT  = "400px"
	)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: vv.DEFAULTCHRTWIDTH, Height: BARHEIGHT}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf(TITLESTR, corpus)}),
	)

	var labels []string
	var vals []opts.BarData
	for topic := range dpt {
		labels = append(labels, fmt.Sprintf("topic %d", topic+1))
		vals = append(vals, opts.BarData{Value: dpt[topic]})
	}

	bar.SetXAxis(labels)
	bar.AddSeries(SERIESNAME, vals)

	return renderchart(bar)
}

// buildforcegraph - generate the html and js for a nearest neighbors search
func buildforcegraph(coreword string, corpus string, nn map[string]search.Neighbors, expanded bool) string {
	// see also: https://echarts.apache.org/en/option.html#series-graph

	const (
		SYMSIZE       = 25
		PERIPHSYMSZ   = 15
		SIZEDISTORT   = 2.25
		PRECISON      = 4
		REPULSION     = 6000
		GRAVITY       = .15
		EDGELEN       = 40
		EDGEFNTSZ     = 8
		SERIESNAME    = ""
		LAYOUTTYPE    = "force"
		LABELPOSITON  = "right"
		DOTHUE        = 236
		DOTSL         = ", 33%, 40%, 1)"
		LINECURVINESS = 0       // from 0 to 1, but non-zero will double-up the lines...
		LINETYPE      = "solid" // "solid", "dashed", "dotted"
		TITLESTR      = "Nearest neighbors of »%s« in %s"
	)

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: vv.DEFAULTCHRTWIDTH, Height: vv.DEFAULTCHRTHEIGHT}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf(TITLESTR, coreword, corpus)}),
	)

	var gnn []opts.GraphNode
	var gll []opts.GraphLink
	valuelabel := opts.EdgeLabel{Show: true, FontSize: EDGEFNTSZ, Formatter: "{c}"}

	round := func(val float64) float32 {
		ratio := math.Pow(10, float64(PRECISON))
		return float32(math.Round(val*ratio) / ratio)
	}

	// find the top similarity: this will let you adjust bubble size so that most similar are biggest
	var maxsim float64
	for _, w := range nn[coreword] {
		if w.Similarity > maxsim {
			maxsim = w.Similarity
		}
	}

	dot := &opts.ItemStyle{Color: "hsla(" + fmt.Sprintf("%d", DOTHUE) + DOTSL}

	used := make(map[string]bool)

	// the center point
	gnn = append(gnn, opts.GraphNode{Name: coreword, Value: 0, SymbolSize: fmt.Sprintf("%.4f", SYMSIZE*SIZEDISTORT), ItemStyle: dot})
	used[coreword] = true

	// the words directly related to this word
	for _, w := range nn[coreword] {
		sizemod := fmt.Sprintf("%.4f", ((w.Similarity/maxsim)*SIZEDISTORT)*SYMSIZE)
		gnn = append(gnn, opts.GraphNode{Name: w.Word, Value: round(w.Similarity), SymbolSize: sizemod, ItemStyle: dot})
		gll = append(gll, opts.GraphLink{Source: coreword, Target: w.Word, Value: round(w.Similarity), Label: &valuelabel})
		used[w.Word] = true
	}

	coreterms := gen.ToSet(gen.StringMapKeysIntoSlice(nn))

	// populate the nodes with just the core collection of terms
	simpleweb := func() {
		for t := range coreterms {
			if t == coreword {
				continue
			}
			for _, w := range nn[t] {
				if _, ok := coreterms[w.Word]; ok {
					gll = append(gll, opts.GraphLink{Source: t, Target: w.Word, Value: round(w.Similarity), Label: &valuelabel})
				}
			}
		}
	}

	// populate the nodes with both the core terms and the neighbors of those terms as well
	expandedweb := func() {
		for t := range coreterms {
			if t == coreword {
				continue
			}
			for _, w := range nn[t] {
				if _, ok := coreterms[w.Word]; ok {
					gll = append(gll, opts.GraphLink{Source: t, Target: w.Word, Value: round(w.Similarity), Label: &valuelabel})
				}
				if _, ok := used[w.Word]; !ok {
					gnn = append(gnn, opts.GraphNode{Name: w.Word, Value: round(w.Similarity), SymbolSize: PERIPHSYMSZ, ItemStyle: dot})
					used[w.Word] = true
				}
				gll = append(gll, opts.GraphLink{Source: t, Target: w.Word, Value: round(w.Similarity), Label: &valuelabel})
			}
		}
	}

	if expanded {
		expandedweb()
	} else {
		simpleweb()
	}

	graph.AddSeries(SERIESNAME, gnn, gll,
		charts.WithLabelOpts(
			opts.Label{
				Show:     true,
				Position: LABELPOSITON,
			},
		),
		charts.WithLineStyleOpts(
			opts.LineStyle{
				Curveness: LINECURVINESS,
				Type:      LINETYPE,
			}),
		charts.WithGraphChartOpts(
			// cf. https://echarts.apache.org/en/option.html#series-graph
			opts.GraphChart{
				Layout: LAYOUTTYPE,
				Force: &opts.GraphForce{
					Repulsion:  REPULSION,
					Gravity:    GRAVITY,
					EdgeLength: EDGELEN,
				},
				Roam:               true,
				FocusNodeAdjacency: true,
			},
		),
	)

	return renderchart(graph)
}

//
// OVERRIDE GO-ECHARTS [original code at https://github.com/go-echarts/go-echarts]
//

// ModRenderer etc modified from https://github.com/go-echarts/go-echarts/render/engine.go
type ModRenderer interface {
	Render(w io.Writer) error
}

type CustomPageRender struct {
	c      interface{}
	before []func()
}

// NewCustomPageRender returns a render implementation for Page.
func NewCustomPageRender(c interface{}, before ...func()) ModRenderer {
	return &CustomPageRender{c: c, before: before}
}

// Render renders the page into the given io.Writer.
func (r *CustomPageRender) Render(w io.Writer) error {
	const (
		TEMPLNAME = "chart"
		PATTERN   = `(__f__")|("__f__)|(__f__)`
	)

	for _, fn := range r.before {
		fn()
	}

	contents := []string{CustomHeaderTpl, CustomBaseTpl, CustomPageTpl}
	tpl := ModMustTemplate(TEMPLNAME, contents)

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, TEMPLNAME, r.c); err != nil {
		return err
	}

	pat := regexp.MustCompile(PATTERN)
	content := pat.ReplaceAll(buf.Bytes(), []byte(""))

	_, err := w.Write(content)
	return err
}

// ModMustTemplate creates a new template with the given name and parsed contents.
func ModMustTemplate(name string, contents []string) *template.Template {
	const (
		JSNAME = "safeJS"
	)

	tpl := template.Must(template.New(name).Parse(contents[0])).Funcs(template.FuncMap{
		JSNAME: func(s interface{}) template.JS {
			return template.JS(fmt.Sprint(s))
		},
	})

	for _, cont := range contents[1:] {
		tpl = template.Must(tpl.Parse(cont))
	}
	return tpl
}

// CustomHeaderTpl etc. adapted from https://github.com/go-echarts/go-echarts/templates/
var CustomHeaderTpl = `
{{ define "header" }}
<head>
	<!-- CustomHeaderTpl -->
    <meta charset="utf-8">
    <title>{{ .PageTitle }}</title>
{{- range .JSAssets.Values }}
    <script src="{{ . }}"></script>
{{- end }}
{{- range .CustomizedJSAssets.Values }}
    <script src="{{ . }}"></script>
{{- end }}
{{- range .CSSAssets.Values }}
    <link href="{{ . }}" rel="stylesheet">
{{- end }}
{{- range .CustomizedCSSAssets.Values }}
    <link href="{{ . }}" rel="stylesheet">
{{- end }}
</head>
{{ end }}
`

var CustomBaseTpl = `
{{- define "base" }}
<!-- CustomBaseTpl -->
<div class="container">
    <div class="item" id="{{ .ChartID }}" style="width:{{ .Initialization.Width }};height:{{ .Initialization.Height }};"></div>
</div>
<script type="text/javascript">
    "use strict";
    let goecharts_{{ .ChartID | safeJS }} = echarts.init(document.getElementById('{{ .ChartID | safeJS }}'), "{{ .Theme }}");
    let option_{{ .ChartID | safeJS }} = {{ .JSONNotEscaped | safeJS }};
	let action_{{ .ChartID | safeJS }} = {{ .JSONNotEscapedAction | safeJS }};
    goecharts_{{ .ChartID | safeJS }}.setOption(option_{{ .ChartID | safeJS }});
 	goecharts_{{ .ChartID | safeJS }}.dispatchAction(action_{{ .ChartID | safeJS }});

    {{- range .JSFunctions.Fns }}
    {{ . | safeJS }}
    {{- end }}
</script>
{{ end }}
`

var CustomPageTpl = `
{{- define "chart" }}
	<!-- CustomPageTpl -->
	{{ if eq .Layout "none" }}
		{{- range .Charts }} {{ template "base" . }} {{- end }}
	{{ end }}

	{{ if eq .Layout "center" }}
		<style> .container {display: flex;justify-content: center;align-items: center; } .item {margin: auto;} </style>
		{{- range .Charts }} {{ template "base" . }} {{- end }}
	{{ end }}

	{{ if eq .Layout "flex" }}
		<style> .box { justify-content:center; display:flex; flex-wrap:wrap } </style>
		<div class="box"> {{- range .Charts }} {{ template "base" . }} {{- end }} </div>
	{{ end }}
{{ end }}
`
