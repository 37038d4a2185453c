// Package series turns the loosely shaped time-series records returned by the
// prediction backend into canonical, ascending sequences.
package series

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Point is a single (timestamp, value) sample. T is epoch milliseconds.
type Point struct {
	T int64
	V float64
}

// Candle is an open/high/low/close aggregate for one bucket.
type Candle struct {
	T     int64
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Up reports whether the bucket closed at or above its open.
func (c Candle) Up() bool { return c.Close >= c.Open }

var (
	timeKeys   = []string{"x", "t", "time", "date", "datetime"}
	openKeys   = []string{"o", "open"}
	highKeys   = []string{"h", "high"}
	lowKeys    = []string{"l", "low"}
	closeKeys  = []string{"c", "close"}
	volumeKeys = []string{"y", "volume", "v", "value"}
	lineKeys   = []string{"y", "value", "price", "close"}
)

// NormalizeCandles keeps every record with a parseable timestamp and finite
// open/high/low/close, sorted ascending by timestamp.
func NormalizeCandles(items []any) []Candle {
	out := make([]Candle, 0, len(items))
	for _, item := range items {
		rec, ok := record(item)
		if !ok {
			continue
		}
		ts, ok := timestamp(rec)
		if !ok {
			continue
		}
		o, ok1 := number(rec, openKeys...)
		h, ok2 := number(rec, highKeys...)
		l, ok3 := number(rec, lowKeys...)
		c, ok4 := number(rec, closeKeys...)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			continue
		}
		out = append(out, Candle{T: ts, Open: o, High: h, Low: l, Close: c})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].T < out[j].T })
	return out
}

// NormalizeVolumes reads volume bars.
func NormalizeVolumes(items []any) []Point {
	return normalizePoints(items, volumeKeys)
}

// NormalizeLine reads a generic line series (moving averages, closes).
func NormalizeLine(items []any) []Point {
	return normalizePoints(items, lineKeys)
}

func normalizePoints(items []any, valueKeys []string) []Point {
	out := make([]Point, 0, len(items))
	for _, item := range items {
		rec, ok := record(item)
		if !ok {
			continue
		}
		ts, ok := timestamp(rec)
		if !ok {
			continue
		}
		v, ok := number(rec, valueKeys...)
		if !ok {
			continue
		}
		out = append(out, Point{T: ts, V: v})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].T < out[j].T })
	return out
}

// Zip pairs parallel timestamp and value arrays into line records and
// normalizes them. Extra entries on either side are ignored.
func Zip(times []any, values []float64) []Point {
	n := min(len(times), len(values))
	items := make([]any, n)
	for i := 0; i < n; i++ {
		items[i] = map[string]any{"x": times[i], "y": values[i]}
	}
	return NormalizeLine(items)
}

// ZipDates is Zip for string labels such as "2024-03-15".
func ZipDates(labels []string, values []float64) []Point {
	times := make([]any, len(labels))
	for i, l := range labels {
		times[i] = l
	}
	return Zip(times, values)
}

// Values extracts the value column.
func Values(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.V
	}
	return out
}

func record(item any) (map[string]any, bool) {
	rec, ok := item.(map[string]any)
	if !ok || rec == nil {
		return nil, false
	}
	return rec, true
}

// lookup returns the first alias present with a non-null value.
func lookup(rec map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func timestamp(rec map[string]any) (int64, bool) {
	raw, ok := lookup(rec, timeKeys...)
	if !ok {
		return 0, false
	}
	return ParseTimestamp(raw)
}

func number(rec map[string]any, keys ...string) (float64, bool) {
	raw, ok := lookup(rec, keys...)
	if !ok {
		return 0, false
	}
	return toFloat(raw)
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
