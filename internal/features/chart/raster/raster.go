// Package raster draws the price chart as a PNG with gg.
package raster

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"time"

	"price-chart/internal/features/chart"
	logging "price-chart/internal/infra/log"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

const (
	marginLeft   = 70.0
	marginRight  = 20.0
	marginTop    = 20.0
	marginBottom = 40.0

	gridLinesCount  = 4
	xLabelsCount    = 4
	tickLength      = 5.0
	labelOffsetX    = 8.0
	dateOffsetY     = 20.0
	fontSize        = 12.0
	lineWidth       = 2.0
	pointRadius     = 2.0
	defaultTimeSpan = 24 * 60 * 60 // seconds, used when all labels are equal
)

var (
	backgroundColor = color.White
	axisColor       = color.RGBA{80, 80, 80, 255}
	gridColor       = color.RGBA{220, 220, 220, 255}
	textColor       = color.RGBA{40, 40, 40, 255}
)

// DefaultFontPaths are tried in order; the first face that loads is used.
var DefaultFontPaths = []string{
	"etc/fonts/InterVariable.ttf",
	"etc/fonts/Inter-Regular.ttf",
	"~/Library/Fonts/Inter-Regular.ttf",
	"/Library/Fonts/Inter-Regular.ttf",
	"/usr/share/fonts/truetype/inter/Inter-Regular.ttf",
	"/usr/local/share/fonts/Inter-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
}

// Builder draws a line chart into an image/png fragment.
type Builder struct {
	FontPaths []string
	Location  *time.Location
}

var _ chart.Builder = (*Builder)(nil)

func New() *Builder {
	return &Builder{
		FontPaths: DefaultFontPaths,
		Location:  time.UTC,
	}
}

func (b *Builder) Build(opts chart.Options, data chart.AlignedData, target chart.Target) (*chart.Chart, error) {
	series := opts.ValueSeries()
	stroke, err := chart.ParseColor(series.Stroke)
	if err != nil {
		return nil, fmt.Errorf("invalid series stroke: %w", err)
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(backgroundColor)
	dc.Clear()

	if path := b.loadFont(dc); path == "" {
		logging.LogWarn("Failed to load chart font, using default face",
			zap.Int("paths_checked", len(b.FontPaths)))
	}

	area := plotArea{
		left:   marginLeft,
		right:  float64(opts.Width) - marginRight,
		top:    marginTop,
		bottom: float64(opts.Height) - marginBottom,
	}

	n := data.Len()
	labels, values := data.Labels()[:n], data.Values()[:n]
	xMin, xMax := bounds(labels, opts.TimeAxis())
	yMin, yMax := bounds(values, false)

	b.drawGrid(dc, area, yMin, yMax)
	b.drawXLabels(dc, area, xMin, xMax, opts.TimeAxis())
	drawAxes(dc, area)

	dc.SetColor(stroke)
	dc.SetLineWidth(lineWidth)
	dc.SetDash()
	for i := range labels {
		x := area.x(labels[i], xMin, xMax)
		y := area.y(values[i], yMin, yMax)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()

	if n == 1 {
		dc.DrawCircle(area.x(labels[0], xMin, xMax), area.y(values[0], yMin, yMax), pointRadius)
		dc.Fill()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart png: %w", err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("chart png is empty after rendering")
	}

	logging.LogDebug("Raster chart rendered",
		zap.String("target", target.ID()),
		zap.Int("points", n),
		zap.Int("bytes", buf.Len()))

	return chart.Mount(opts, data, target, chart.Fragment{
		MediaType: chart.MediaPNG,
		Body:      buf.Bytes(),
	}), nil
}

type plotArea struct {
	left, right, top, bottom float64
}

func (a plotArea) x(v, min, max float64) float64 {
	return a.left + (v-min)/(max-min)*(a.right-a.left)
}

func (a plotArea) y(v, min, max float64) float64 {
	return a.bottom - (v-min)/(max-min)*(a.bottom-a.top)
}

// bounds returns the value range, widened when it would be empty so the
// axis scale never divides by zero.
func bounds(vs []float64, timeAxis bool) (float64, float64) {
	if len(vs) == 0 {
		return 0, 1
	}
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range vs {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	if max > min {
		return min, max
	}
	if timeAxis {
		return min, min + defaultTimeSpan
	}
	return min - 1, max + 1
}

func drawAxes(dc *gg.Context, a plotArea) {
	dc.SetColor(axisColor)
	dc.SetLineWidth(1)
	dc.SetDash()
	dc.DrawLine(a.left, a.bottom, a.right, a.bottom)
	dc.Stroke()
	dc.DrawLine(a.left, a.top, a.left, a.bottom)
	dc.Stroke()
}

func (b *Builder) drawGrid(dc *gg.Context, a plotArea, min, max float64) {
	for i := 0; i <= gridLinesCount; i++ {
		v := min + float64(i)*(max-min)/gridLinesCount
		y := a.y(v, min, max)

		dc.SetColor(gridColor)
		dc.SetLineWidth(1)
		dc.SetDash(6, 4)
		dc.DrawLine(a.left, y, a.right, y)
		dc.Stroke()

		dc.SetDash()
		dc.SetColor(axisColor)
		dc.DrawLine(a.left-tickLength, y, a.left, y)
		dc.Stroke()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(formatValue(v), a.left-tickLength-labelOffsetX, y, 1, 0.5)
	}
}

func (b *Builder) drawXLabels(dc *gg.Context, a plotArea, min, max float64, timeAxis bool) {
	for i := 0; i <= xLabelsCount; i++ {
		v := min + float64(i)*(max-min)/xLabelsCount
		x := a.x(v, min, max)

		dc.SetColor(axisColor)
		dc.SetLineWidth(1)
		dc.SetDash()
		dc.DrawLine(x, a.bottom, x, a.bottom+tickLength)
		dc.Stroke()

		label := formatValue(v)
		if timeAxis {
			label = b.formatTime(v, max-min)
		}
		dc.SetColor(textColor)
		dc.DrawStringAnchored(label, x, a.bottom+dateOffsetY, 0.5, 0.5)
	}
}

func (b *Builder) formatTime(sec, span float64) string {
	loc := b.Location
	if loc == nil {
		loc = time.UTC
	}
	t := time.Unix(int64(sec), 0).In(loc)
	if span >= 2*defaultTimeSpan {
		return t.Format("02.01")
	}
	return t.Format("15:04")
}

func formatValue(v float64) string {
	switch av := math.Abs(v); {
	case av >= 1000:
		return fmt.Sprintf("%.0f", v)
	case av >= 1:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.4f", v)
	}
}

// loadFont returns the path of the loaded face, or "" when none loaded.
func (b *Builder) loadFont(dc *gg.Context) string {
	for _, p := range b.FontPaths {
		path := expandPath(p)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := dc.LoadFontFace(path, fontSize); err != nil {
			logging.LogWarn("Font file exists but failed to load",
				zap.String("path", path),
				zap.Error(err))
			continue
		}
		return path
	}
	return ""
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
