// Package dom is a minimal document of render targets addressed by id.
package dom

import (
	"sort"
	"sync"

	"price-chart/internal/features/chart"
)

// Element is a container charts mount their fragments into.
type Element struct {
	mu       sync.Mutex
	id       string
	children []chart.Fragment
}

var _ chart.Target = (*Element)(nil)

func (e *Element) ID() string {
	return e.id
}

// Clear drops all mounted fragments.
func (e *Element) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.children = nil
}

func (e *Element) Append(f chart.Fragment) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.children = append(e.children, f)
}

// Children returns a snapshot of the mounted fragments.
func (e *Element) Children() []chart.Fragment {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]chart.Fragment, len(e.children))
	copy(out, e.children)
	return out
}

// Document holds elements by id.
type Document struct {
	mu       sync.RWMutex
	elements map[string]*Element
}

// NewDocument returns a document containing an empty element per id.
func NewDocument(ids ...string) *Document {
	d := &Document{elements: make(map[string]*Element, len(ids))}
	for _, id := range ids {
		d.CreateElement(id)
	}
	return d
}

// GetElementByID returns nil when no element has the id.
func (d *Document) GetElementByID(id string) *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.elements[id]
}

// TargetByID is GetElementByID typed for chart.Lookup: a missing element
// is a nil Target, not a nil *Element inside one.
func (d *Document) TargetByID(id string) chart.Target {
	if e := d.GetElementByID(id); e != nil {
		return e
	}
	return nil
}

// CreateElement returns the element with id, adding it if needed.
func (d *Document) CreateElement(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if e, ok := d.elements[id]; ok {
		return e
	}
	e := &Element{id: id}
	d.elements[id] = e
	return e
}

// Elements returns all elements ordered by id.
func (d *Document) Elements() []*Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*Element, 0, len(d.elements))
	for _, e := range d.elements {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
