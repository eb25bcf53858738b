package util

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

const DefaultClass = "6"

// NormalizeClass reduces a class identifier to its digits.
// "Class 6", 6 and "6" all normalize to "6". Empty input falls
// back to DefaultClass.
func NormalizeClass(v interface{}) string {
	s := CoerceString(v)
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return DefaultClass
	}
	return b.String()
}

// CoerceString renders a loosely typed JSON value as a string for
// equality comparison. Numbers lose any ".0" suffix so that 6 and
// "6" compare equal.
func CoerceString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return strings.Trim(string(b), `"`)
	}
}

// EpochMillis is implemented by timestamp values that already know
// their own epoch conversion.
type EpochMillis interface {
	ToMillis() int64
}

// ToEpochMillis converts any of the timestamp shapes found in quiz
// metadata into milliseconds since the epoch. Accepted, in order:
// numeric passthrough, EpochMillis implementors, {seconds,nanoseconds}
// objects, RFC3339 / "2006-01-02 15:04:05" / date strings. Anything
// else yields 0; the function never fails.
func ToEpochMillis(v interface{}) int64 {
	switch t := v.(type) {
	case nil:
		return 0
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return int64(f)
		}
		return 0
	case EpochMillis:
		return t.ToMillis()
	case time.Time:
		if t.IsZero() {
			return 0
		}
		return t.UnixMilli()
	case map[string]interface{}:
		// some authoring exports serialize timestamps as {seconds, nanoseconds}
		sec, ok := t["seconds"]
		if !ok {
			return 0
		}
		ms := ToEpochMillis(sec) * 1000
		if ns, ok := t["nanoseconds"]; ok {
			ms += ToEpochMillis(ns) / 1e6
		}
		return ms
	case string:
		if t == "" {
			return 0
		}
		if ts, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return ts.UnixMilli()
		}
		if ts, err := time.Parse(TimeFormat, t); err == nil {
			return ts.UnixMilli()
		}
		if ts, err := time.Parse(DateFormat, t); err == nil {
			return ts.UnixMilli()
		}
		return 0
	default:
		return 0
	}
}
