package chart

import (
	"errors"
	"fmt"

	logging "price-chart/internal/infra/log"

	"go.uber.org/zap"
)

// ErrTargetNotFound is returned when there is no element to render into.
var ErrTargetNotFound = errors.New("chart target not found")

// Builder constructs a chart from options and data inside target.
type Builder interface {
	Build(opts Options, data AlignedData, target Target) (*Chart, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(opts Options, data AlignedData, target Target) (*Chart, error)

func (f BuilderFunc) Build(opts Options, data AlignedData, target Target) (*Chart, error) {
	return f(opts, data, target)
}

// Renderer draws the price chart with an injected Builder. It keeps no
// state between calls and never disposes charts it built earlier.
type Renderer struct {
	builder Builder
}

func NewRenderer(builder Builder) *Renderer {
	return &Renderer{builder: builder}
}

// Render clears target and builds a fresh chart of labels against values.
// The inputs are passed through as-is; mismatched lengths surface as
// whatever the builder does with them.
func (r *Renderer) Render(target Target, labels, values []float64) (*Chart, error) {
	data := NewAlignedData(labels, values)
	opts := NewOptions()

	if target == nil {
		return nil, ErrTargetNotFound
	}

	target.Clear()

	logging.LogDebug("Rendering chart",
		zap.String("target", target.ID()),
		zap.Int("labels", len(labels)),
		zap.Int("values", len(values)))

	c, err := r.builder.Build(opts, data, target)
	if err != nil {
		return nil, fmt.Errorf("failed to build chart in %q: %w", target.ID(), err)
	}
	return c, nil
}

// RenderByID renders into the element with id TargetID.
func (r *Renderer) RenderByID(doc Lookup, labels, values []float64) (*Chart, error) {
	if doc == nil {
		return nil, ErrTargetNotFound
	}
	target := doc.TargetByID(TargetID)
	if target == nil {
		return nil, fmt.Errorf("%w: no element with id %q", ErrTargetNotFound, TargetID)
	}
	return r.Render(target, labels, values)
}
