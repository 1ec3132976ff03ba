package uplot

import (
	"testing"

	"price-chart/internal/dom"
	"price-chart/internal/features/chart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_EmbedsOptionsAndData(t *testing.T) {
	doc := dom.NewDocument(chart.TargetID)

	c, err := chart.NewRenderer(New()).RenderByID(doc, []float64{1, 2, 3}, []float64{10, 20, 30})
	require.NoError(t, err)
	assert.Equal(t, chart.MediaHTML, c.Fragment.MediaType)

	body := string(c.Fragment.Body)
	assert.Contains(t, body,
		`const opts = {"width":800,"height":400,"series":[{},{"label":"Price","stroke":"rgb(0, 150, 255)"}],"scales":{"x":{"time":true}}};`)
	assert.Contains(t, body, `const data = [[1,2,3],[10,20,30]];`)
	assert.Contains(t, body, `document.getElementById("chart")`)
	assert.Contains(t, body, `el.innerHTML = "";`)
	assert.Contains(t, body, `new uPlot(opts, data, el);`)

	children := doc.GetElementByID(chart.TargetID).Children()
	require.Len(t, children, 1)
	assert.Equal(t, c.Fragment.Body, children[0].Body)
}

func TestBuild_EmptyData(t *testing.T) {
	doc := dom.NewDocument(chart.TargetID)
	c, err := chart.NewRenderer(New()).RenderByID(doc, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, string(c.Fragment.Body), `const data = [[],[]];`)
}

func TestPage(t *testing.T) {
	doc := dom.NewDocument(chart.TargetID)
	c, err := chart.NewRenderer(New()).RenderByID(doc, []float64{1}, []float64{2})
	require.NoError(t, err)

	page, err := Page(chart.TargetID, c.Fragment.Body)
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, `<div id="chart"></div>`)
	assert.Contains(t, html, scriptURL)
	assert.Contains(t, html, `new uPlot(opts, data, el);`)
}
