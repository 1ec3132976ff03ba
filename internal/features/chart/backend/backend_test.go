package backend

import (
	"testing"

	"price-chart/internal/features/chart/raster"
	"price-chart/internal/features/chart/uplot"
	"price-chart/internal/features/chart/vector"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	b, err := New(UPlot)
	require.NoError(t, err)
	assert.IsType(t, uplot.Builder{}, b)

	b, err = New(Raster)
	require.NoError(t, err)
	assert.IsType(t, &raster.Builder{}, b)

	b, err = New(SVG)
	require.NoError(t, err)
	assert.IsType(t, vector.Builder{}, b)
}

func TestNew_Unknown(t *testing.T) {
	_, err := New("canvas")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"png", "raster", "svg", "uplot"}, Names())
}
