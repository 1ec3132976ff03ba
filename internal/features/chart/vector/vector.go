// Package vector draws the price chart with go-chart, as PNG or SVG.
package vector

import (
	"bytes"
	"fmt"
	"time"

	"price-chart/internal/features/chart"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format selects the go-chart renderer.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

type Builder struct {
	format Format
}

var _ chart.Builder = Builder{}

func New(format Format) (Builder, error) {
	switch format {
	case PNG, SVG:
		return Builder{format: format}, nil
	}
	return Builder{}, fmt.Errorf("unsupported vector format %q", format)
}

func (b Builder) Build(opts chart.Options, data chart.AlignedData, target chart.Target) (*chart.Chart, error) {
	series := opts.ValueSeries()
	stroke, err := chart.ParseColor(series.Stroke)
	if err != nil {
		return nil, fmt.Errorf("invalid series stroke: %w", err)
	}
	style := gochart.Style{
		StrokeColor: drawing.Color{R: stroke.R, G: stroke.G, B: stroke.B, A: stroke.A},
		StrokeWidth: 2,
	}

	// go-chart indexes both rows by the x length, so only the aligned prefix is handed over.
	n := data.Len()
	labels, values := data.Labels()[:n], data.Values()[:n]

	graph := gochart.Chart{
		Width:  opts.Width,
		Height: opts.Height,
		YAxis: gochart.YAxis{
			Name: series.Label,
		},
		YAxisSecondary: gochart.YAxis{Style: gochart.Hidden()},
	}

	if opts.TimeAxis() {
		xs := make([]time.Time, n)
		for i, sec := range labels {
			xs[i] = time.Unix(int64(sec), 0).UTC()
		}
		graph.XAxis = gochart.XAxis{ValueFormatter: gochart.TimeValueFormatterWithFormat("02.01 15:04")}
		graph.Series = []gochart.Series{gochart.TimeSeries{
			Name:    series.Label,
			Style:   style,
			XValues: xs,
			YValues: values,
		}}
	} else {
		graph.Series = []gochart.Series{gochart.ContinuousSeries{
			Name:    series.Label,
			Style:   style,
			XValues: labels,
			YValues: values,
		}}
	}

	provider, mediaType := gochart.PNG, chart.MediaPNG
	if b.format == SVG {
		provider, mediaType = gochart.SVG, chart.MediaSVG
	}

	var buf bytes.Buffer
	if err := graph.Render(provider, &buf); err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", b.format, err)
	}

	return chart.Mount(opts, data, target, chart.Fragment{
		MediaType: mediaType,
		Body:      buf.Bytes(),
	}), nil
}
