// Package series loads price points from backtest exports.
package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fastjson"
)

var ErrUnsupportedFormat = errors.New("unsupported series format")

// PricePoint is one sample of the price history.
type PricePoint struct {
	Timestamp time.Time
	Price     float64
}

// Load reads points from a .json or .csv file.
func Load(path string) ([]PricePoint, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read series file: %w", err)
		}
		return ParseJSON(data)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open series file: %w", err)
		}
		defer f.Close()
		return ParseCSV(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// ParseJSON accepts either a backtest result ({"price_data": [...]}) or a
// bare array of {"timestamp", "price"} objects.
func ParseJSON(data []byte) ([]PricePoint, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse series JSON: %w", err)
	}

	var items []*fastjson.Value
	switch v.Type() {
	case fastjson.TypeObject:
		pd := v.Get("price_data")
		if pd == nil {
			return nil, fmt.Errorf("series JSON object has no price_data field")
		}
		if items, err = pd.Array(); err != nil {
			return nil, fmt.Errorf("price_data: %w", err)
		}
	case fastjson.TypeArray:
		items, _ = v.Array()
	default:
		return nil, fmt.Errorf("series JSON must be an object or array, got %s", v.Type())
	}

	points := make([]PricePoint, 0, len(items))
	for i, item := range items {
		ts, err := jsonTimestamp(item.Get("timestamp"))
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		pv := item.Get("price")
		if pv == nil {
			return nil, fmt.Errorf("point %d: missing price", i)
		}
		price, err := pv.Float64()
		if err != nil {
			return nil, fmt.Errorf("point %d: invalid price: %w", i, err)
		}
		points = append(points, PricePoint{Timestamp: ts, Price: price})
	}
	return points, nil
}

func jsonTimestamp(v *fastjson.Value) (time.Time, error) {
	if v == nil {
		return time.Time{}, fmt.Errorf("missing timestamp")
	}
	switch v.Type() {
	case fastjson.TypeNumber:
		sec, _ := v.Float64()
		return fromUnix(sec), nil
	case fastjson.TypeString:
		b, _ := v.StringBytes()
		return ParseTimestamp(string(b))
	}
	return time.Time{}, fmt.Errorf("invalid timestamp type %s", v.Type())
}

// ParseCSV reads a header row followed by timestamp,price rows.
func ParseCSV(r io.Reader) ([]PricePoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []PricePoint{}, nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV rows: %w", err)
	}

	points := make([]PricePoint, 0, len(records))
	for i, record := range records {
		ts, err := ParseTimestamp(record[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price: %w", i+2, err)
		}
		points = append(points, PricePoint{Timestamp: ts, Price: price})
	}
	return points, nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
}

// ParseTimestamp accepts RFC3339, date-time without zone (UTC), a bare
// date, a year-month, or Unix time in seconds (milliseconds when above 1e12).
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if sec, err := strconv.ParseFloat(s, 64); err == nil {
		return fromUnix(sec), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func fromUnix(sec float64) time.Time {
	if sec > 1e12 {
		return time.UnixMilli(int64(sec)).UTC()
	}
	return time.UnixMilli(int64(sec * 1000)).UTC()
}

// ToSeries splits points into chart labels (Unix seconds) and values,
// keeping input order.
func ToSeries(points []PricePoint) (labels, values []float64) {
	labels = make([]float64, len(points))
	values = make([]float64, len(points))
	for i, p := range points {
		labels[i] = float64(p.Timestamp.UnixMilli()) / 1000
		values[i] = p.Price
	}
	return labels, values
}
