package chart

// AlignedData is the column-oriented input uPlot expects: row 0 holds the
// x values, row 1 the y values, and values[i] belongs to labels[i].
type AlignedData [][]float64

// NewAlignedData wraps labels and values without copying or checking them.
// Nil inputs become empty rows so the container always has two entries.
func NewAlignedData(labels, values []float64) AlignedData {
	if labels == nil {
		labels = []float64{}
	}
	if values == nil {
		values = []float64{}
	}
	return AlignedData{labels, values}
}

func (d AlignedData) Labels() []float64 {
	if len(d) < 1 {
		return nil
	}
	return d[0]
}

func (d AlignedData) Values() []float64 {
	if len(d) < 2 {
		return nil
	}
	return d[1]
}

// Len is the number of plottable points: the shorter of the two rows.
func (d AlignedData) Len() int {
	n := len(d.Labels())
	if m := len(d.Values()); m < n {
		n = m
	}
	return n
}
