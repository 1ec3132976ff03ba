package chart

// Fragment is rendered content mounted into a Target.
type Fragment struct {
	MediaType string
	Body      []byte
}

const (
	MediaHTML = "text/html"
	MediaPNG  = "image/png"
	MediaSVG  = "image/svg+xml"
)

// Target is the element a chart renders into.
type Target interface {
	ID() string
	// Clear removes everything previously mounted.
	Clear()
	Append(f Fragment)
}

// Lookup resolves targets by element id. It returns nil for unknown ids.
type Lookup interface {
	TargetByID(id string) Target
}

// Chart is a constructed chart bound to its target.
type Chart struct {
	Options  Options
	Data     AlignedData
	Target   Target
	Fragment Fragment
}

// Mount appends f to target and returns the chart bound to it.
func Mount(opts Options, data AlignedData, target Target, f Fragment) *Chart {
	target.Append(f)
	return &Chart{
		Options:  opts,
		Data:     data,
		Target:   target,
		Fragment: f,
	}
}
