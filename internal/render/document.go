package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

var documentTmpl = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- if .Stylesheet}}
<link rel="stylesheet" href="{{.Stylesheet}}">
{{- end}}
</head>
<body>
{{- range .Paragraphs}}
<p>{{.}}</p>
{{- end}}
</body>
</html>
`))

// Page holds the settings of a rendered HTML document.
type Page struct {
	Title      string
	Stylesheet string
}

type documentData struct {
	Title      string
	Stylesheet string
	Paragraphs []template.HTML
}

// Document writes a minimal HTML page around markup, one <p> per non-blank
// line. markup must already be escaped, as produced by Markup.
func Document(w io.Writer, page Page, markup string) error {
	data := documentData{
		Title:      page.Title,
		Stylesheet: page.Stylesheet,
	}
	for _, line := range strings.Split(markup, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		data.Paragraphs = append(data.Paragraphs, template.HTML(line))
	}

	if err := documentTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render: document: %w", err)
	}
	return nil
}
