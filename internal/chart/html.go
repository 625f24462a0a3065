package chart

import (
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/pkg/browser"
)

// MermaidScript is the Mermaid build the HTML page loads.
const MermaidScript = "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.min.js"

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.Script}}"></script>
<script>mermaid.initialize({ startOnLoad: true });</script>
<style>body { font-family: sans-serif; margin: 2em; } section { margin-bottom: 3em; }</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Charts}}<section>
{{if .Config.Title}}<h2>{{.Config.Title}}</h2>
{{end}}<pre class="mermaid">
{{.Mermaid}}</pre>
<ol>{{range .Lines}}<li>{{.Name}}</li>{{end}}</ol>
</section>
{{end}}</body>
</html>
`))

// WriteHTML writes a page holding every chart, each followed by its legend.
func WriteHTML(w io.Writer, title string, charts ...*Chart) error {
	return page.Execute(w, struct {
		Title  string
		Script string
		Charts []*Chart
	}{title, MermaidScript, charts})
}

// openFile is replaced in tests.
var openFile = browser.OpenFile

// SaveHTML writes the page to path and optionally opens it in the browser.
func SaveHTML(path, title string, open bool, charts ...*Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	if err := WriteHTML(f, title, charts...); err != nil {
		f.Close()
		return fmt.Errorf("writing chart file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing chart file: %w", err)
	}
	if open {
		return openFile(path)
	}
	return nil
}
