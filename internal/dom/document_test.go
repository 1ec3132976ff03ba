package dom

import (
	"sync"
	"testing"

	"price-chart/internal/features/chart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_GetElementByID(t *testing.T) {
	doc := NewDocument("chart")
	require.NotNil(t, doc.GetElementByID("chart"))
	assert.Nil(t, doc.GetElementByID("missing"))
	assert.Nil(t, doc.TargetByID("missing"))
	assert.NotNil(t, doc.TargetByID("chart"))
}

func TestDocument_CreateElement(t *testing.T) {
	doc := NewDocument()
	a := doc.CreateElement("b")
	b := doc.CreateElement("a")
	assert.Same(t, a, doc.CreateElement("b"))

	elems := doc.Elements()
	require.Len(t, elems, 2)
	assert.Same(t, b, elems[0])
	assert.Same(t, a, elems[1])
}

func TestElement_ClearAndAppend(t *testing.T) {
	e := NewDocument("chart").GetElementByID("chart")
	e.Append(chart.Fragment{MediaType: chart.MediaHTML, Body: []byte("one")})
	e.Append(chart.Fragment{MediaType: chart.MediaHTML, Body: []byte("two")})
	assert.Len(t, e.Children(), 2)

	e.Clear()
	assert.Empty(t, e.Children())
}

func TestElement_ChildrenIsSnapshot(t *testing.T) {
	e := NewDocument("chart").GetElementByID("chart")
	e.Append(chart.Fragment{Body: []byte("x")})
	snap := e.Children()
	e.Clear()
	assert.Len(t, snap, 1)
}

func TestRenderByID_RepeatedRenderReplaces(t *testing.T) {
	doc := NewDocument(chart.TargetID)
	doc.GetElementByID(chart.TargetID).Append(chart.Fragment{Body: []byte("<p>stale</p>")})

	r := chart.NewRenderer(chart.BuilderFunc(func(opts chart.Options, data chart.AlignedData, target chart.Target) (*chart.Chart, error) {
		return chart.Mount(opts, data, target, chart.Fragment{MediaType: chart.MediaHTML, Body: []byte("<canvas></canvas>")}), nil
	}))

	for i := 0; i < 3; i++ {
		_, err := r.RenderByID(doc, []float64{1}, []float64{2})
		require.NoError(t, err)
	}

	children := doc.GetElementByID(chart.TargetID).Children()
	require.Len(t, children, 1)
	assert.Equal(t, "<canvas></canvas>", string(children[0].Body))
}

func TestRenderByID_NoChartElement(t *testing.T) {
	r := chart.NewRenderer(chart.BuilderFunc(func(chart.Options, chart.AlignedData, chart.Target) (*chart.Chart, error) {
		t.Fatal("builder must not run without a target")
		return nil, nil
	}))
	_, err := r.RenderByID(NewDocument("other"), nil, nil)
	assert.ErrorIs(t, err, chart.ErrTargetNotFound)
}

func TestElement_ConcurrentRendersLastWriteWins(t *testing.T) {
	doc := NewDocument(chart.TargetID)
	r := chart.NewRenderer(chart.BuilderFunc(func(opts chart.Options, data chart.AlignedData, target chart.Target) (*chart.Chart, error) {
		return chart.Mount(opts, data, target, chart.Fragment{Body: []byte("c")}), nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = r.RenderByID(doc, []float64{1}, []float64{1})
		}()
	}
	wg.Wait()

	assert.NotEmpty(t, doc.GetElementByID(chart.TargetID).Children())
}

func TestNewDocument_SeedsCreatedElements(t *testing.T) {
	doc := NewDocument("chart")
	e := doc.GetElementByID("chart")
	require.NotNil(t, e)
	assert.Same(t, e, doc.CreateElement("chart"))
	assert.Len(t, doc.Elements(), 1)
}
