package series

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Layouts are tried in this order; the first one that parses wins. Strings
// without a zone are read as UTC.
var (
	isoLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999Z0700",
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04Z0700",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
		"2006-01-02T15",
		"2006-01-02",
		"2006-01",
	}
	dateLayout     = "2006-01-02"
	rfc2822Layouts = []string{
		time.RFC1123Z,
		time.RFC1123,
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"Mon, 2 Jan 2006 15:04:05 MST",
		"2 Jan 2006 15:04:05 -0700",
		"Mon, 2 Jan 2006 15:04 -0700",
		time.RFC822Z,
		time.RFC822,
	}
	sqlLayouts = []string{
		"2006-01-02 15:04:05.999999999 -07:00",
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04",
	}
)

// ParseTimestamp converts v to epoch milliseconds. Numbers are taken as
// epoch milliseconds already. It reports false when v is nil, non-finite, or
// a string that matches none of the accepted formats.
func ParseTimestamp(v any) (int64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case time.Time:
		if t.IsZero() {
			return 0, false
		}
		return t.UnixMilli(), true
	case *time.Time:
		if t == nil || t.IsZero() {
			return 0, false
		}
		return t.UnixMilli(), true
	case string:
		return parseTimeString(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return millis(f)
	case float64:
		return millis(t)
	case float32:
		return millis(float64(t))
	case int:
		return int64(t), true
	case int64:
		return t, true
	case int32:
		return int64(t), true
	}
	return 0, false
}

func millis(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

func parseTimeString(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, group := range [][]string{isoLayouts, {dateLayout}, rfc2822Layouts, sqlLayouts} {
		for _, layout := range group {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t.UnixMilli(), true
			}
		}
	}
	return 0, false
}
