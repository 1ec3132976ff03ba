package chart

// Chart configuration in the shape uPlot accepts as its first constructor argument.

const (
	DefaultWidth  = 800
	DefaultHeight = 400

	PriceLabel  = "Price"
	PriceStroke = "rgb(0, 150, 255)"

	// TargetID is the element id RenderByID mounts into.
	TargetID = "chart"
)

// Series describes one line. The zero Series is the x-series placeholder
// and serializes as {}.
type Series struct {
	Label  string `json:"label,omitempty"`
	Stroke string `json:"stroke,omitempty"`
}

// Scale is per-axis configuration.
type Scale struct {
	Time bool `json:"time"`
}

// Options is the full chart configuration.
type Options struct {
	Width  int              `json:"width"`
	Height int              `json:"height"`
	Series []Series         `json:"series"`
	Scales map[string]Scale `json:"scales"`
}

// NewOptions returns the fixed price chart configuration: 800x400, one
// "Price" series after the empty x-series slot, time-scaled x axis.
func NewOptions() Options {
	return Options{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Series: []Series{
			{},
			{Label: PriceLabel, Stroke: PriceStroke},
		},
		Scales: map[string]Scale{
			"x": {Time: true},
		},
	}
}

// ValueSeries returns the first y-series, or the zero Series if none is configured.
func (o Options) ValueSeries() Series {
	if len(o.Series) < 2 {
		return Series{}
	}
	return o.Series[1]
}

// TimeAxis reports whether x values are Unix timestamps in seconds.
func (o Options) TimeAxis() bool {
	return o.Scales["x"].Time
}
