// Package uplot builds charts as HTML that mounts uPlot in the browser.
package uplot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"price-chart/internal/features/chart"
)

const (
	scriptURL     = "https://unpkg.com/uplot@1.6.30/dist/uPlot.iife.min.js"
	stylesheetURL = "https://unpkg.com/uplot@1.6.30/dist/uPlot.min.css"
)

var mountTmpl = template.Must(template.New("mount").Parse(`<script>
(function () {
  const opts = {{.Options}};
  const data = {{.Data}};
  const el = document.getElementById({{.ID}});
  el.innerHTML = "";
  new uPlot(opts, data, el);
})();
</script>
`))

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.Stylesheet}}">
<script src="{{.Script}}"></script>
</head>
<body>
<div id="{{.ID}}"></div>
{{.Mount}}
</body>
</html>
`))

// Builder emits a text/html fragment with the options and data embedded as JSON.
type Builder struct{}

var _ chart.Builder = Builder{}

func New() Builder {
	return Builder{}
}

func (Builder) Build(opts chart.Options, data chart.AlignedData, target chart.Target) (*chart.Chart, error) {
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chart options: %w", err)
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chart data: %w", err)
	}

	var buf bytes.Buffer
	err = mountTmpl.Execute(&buf, struct {
		Options template.JS
		Data    template.JS
		ID      string
	}{
		Options: template.JS(optsJSON),
		Data:    template.JS(dataJSON),
		ID:      target.ID(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute mount template: %w", err)
	}

	return chart.Mount(opts, data, target, chart.Fragment{
		MediaType: chart.MediaHTML,
		Body:      buf.Bytes(),
	}), nil
}

// Page wraps a mount fragment into a standalone document with a container
// element of the given id.
func Page(id string, fragment []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, struct {
		Title      string
		Stylesheet string
		Script     string
		ID         string
		Mount      template.HTML
	}{
		Title:      chart.PriceLabel,
		Stylesheet: stylesheetURL,
		Script:     scriptURL,
		ID:         id,
		Mount:      template.HTML(fragment),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute page template: %w", err)
	}
	return buf.Bytes(), nil
}
