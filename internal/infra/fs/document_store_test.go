package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"price-chart/internal/dom"
	"price-chart/internal/features/chart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	doc := dom.NewDocument("chart", "volume")
	doc.GetElementByID("chart").Append(chart.Fragment{MediaType: chart.MediaPNG, Body: []byte("png-bytes")})
	doc.GetElementByID("chart").Append(chart.Fragment{MediaType: chart.MediaSVG, Body: []byte("<svg/>")})
	doc.GetElementByID("volume").Append(chart.Fragment{MediaType: chart.MediaHTML, Body: []byte("<script></script>")})

	paths, err := SaveDocument(dir, doc)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "chart.png"),
		filepath.Join(dir, "chart-1.svg"),
		filepath.Join(dir, "volume.html"),
	}, paths)

	data, err := os.ReadFile(filepath.Join(dir, "chart.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	_, err = os.Stat(filepath.Join(dir, "chart.png.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveDocument_Wrapper(t *testing.T) {
	dir := t.TempDir()
	doc := dom.NewDocument("chart")
	doc.GetElementByID("chart").Append(chart.Fragment{MediaType: chart.MediaHTML, Body: []byte("<script></script>")})

	paths, err := SaveDocument(dir, doc, WithWrapper(chart.MediaHTML, func(id string, body []byte) ([]byte, error) {
		return append([]byte("<div id=\""+id+"\"></div>"), body...), nil
	}))
	require.NoError(t, err)
	require.Len(t, paths, 1)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, `<div id="chart"></div><script></script>`, string(data))
}

func TestSaveDocument_WrapperError(t *testing.T) {
	doc := dom.NewDocument("chart")
	doc.GetElementByID("chart").Append(chart.Fragment{MediaType: chart.MediaHTML, Body: []byte("x")})

	boom := errors.New("boom")
	_, err := SaveDocument(t.TempDir(), doc, WithWrapper(chart.MediaHTML, func(string, []byte) ([]byte, error) {
		return nil, boom
	}))
	assert.ErrorIs(t, err, boom)
}

func TestSaveDocument_EmptyFragmentRejected(t *testing.T) {
	dir := t.TempDir()
	doc := dom.NewDocument("chart")
	doc.GetElementByID("chart").Append(chart.Fragment{MediaType: chart.MediaPNG})

	_, err := SaveDocument(dir, doc)
	assert.ErrorContains(t, err, "empty after rendering")

	_, statErr := os.Stat(filepath.Join(dir, "chart.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveDocument_UnknownMediaType(t *testing.T) {
	doc := dom.NewDocument("chart")
	doc.GetElementByID("chart").Append(chart.Fragment{MediaType: "application/pdf", Body: []byte("%PDF")})

	_, err := SaveDocument(t.TempDir(), doc)
	assert.ErrorContains(t, err, "unsupported media type")
}

func TestSaveDocument_NothingRendered(t *testing.T) {
	paths, err := SaveDocument(t.TempDir(), dom.NewDocument("chart"))
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestSaveDocument_FailedWriteLeavesNoTempFile(t *testing.T) {
	orig := writeFile
	t.Cleanup(func() { writeFile = orig })
	writeFile = func(name string, data []byte, perm os.FileMode) error {
		require.NoError(t, os.WriteFile(name, data[:1], perm))
		return errors.New("disk full")
	}

	dir := t.TempDir()
	doc := dom.NewDocument("chart")
	doc.GetElementByID("chart").Append(chart.Fragment{MediaType: chart.MediaPNG, Body: []byte("png-bytes")})

	_, err := SaveDocument(dir, doc)
	require.ErrorContains(t, err, "disk full")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
