// Package backend maps configured backend names to chart builders.
package backend

import (
	"errors"
	"fmt"
	"sort"

	"price-chart/internal/features/chart"
	"price-chart/internal/features/chart/raster"
	"price-chart/internal/features/chart/uplot"
	"price-chart/internal/features/chart/vector"
)

var ErrUnknownBackend = errors.New("unknown chart backend")

const (
	UPlot  = "uplot"
	Raster = "raster"
	PNG    = "png"
	SVG    = "svg"
)

var constructors = map[string]func() (chart.Builder, error){
	UPlot:  func() (chart.Builder, error) { return uplot.New(), nil },
	Raster: func() (chart.Builder, error) { return raster.New(), nil },
	PNG:    func() (chart.Builder, error) { return vector.New(vector.PNG) },
	SVG:    func() (chart.Builder, error) { return vector.New(vector.SVG) },
}

// New returns the builder registered under name.
func New(name string) (chart.Builder, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownBackend, name, Names())
	}
	return ctor()
}

// Names lists the registered backends in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
