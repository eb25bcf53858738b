package util

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeClass(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"plain digits", "6", "6"},
		{"class prefix", "Class 6", "6"},
		{"number", 6, "6"},
		{"float number", float64(8), "8"},
		{"two digit", "Class 12", "12"},
		{"empty falls back", "", DefaultClass},
		{"nil falls back", nil, DefaultClass},
		{"no digits falls back", "Senior", DefaultClass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeClass(tt.in))
		})
	}
}

func TestCoerceString(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"string passthrough", "Maths", "Maths"},
		{"whole float drops decimal", float64(6), "6"},
		{"fractional float keeps it", 6.5, "6.5"},
		{"int", 7, "7"},
		{"json number", json.Number("42"), "42"},
		{"bool", true, "true"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceString(tt.in))
		})
	}
}

type fixedMillis int64

func (f fixedMillis) ToMillis() int64 { return int64(f) }

func TestToEpochMillis(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   interface{}
		want int64
	}{
		{"int64 passthrough", int64(1700000000000), 1700000000000},
		{"float", float64(1700000000000), 1700000000000},
		{"json number", json.Number("1700000000000"), 1700000000000},
		{"to millis implementor", fixedMillis(123456), 123456},
		{"time value", ts, ts.UnixMilli()},
		{"seconds object", map[string]interface{}{"seconds": float64(1700000000)}, 1700000000000},
		{"seconds and nanos", map[string]interface{}{
			"seconds":     float64(1700000000),
			"nanoseconds": float64(500000000),
		}, 1700000000500},
		{"rfc3339 string", "2024-03-01T10:30:00Z", ts.UnixMilli()},
		{"datetime string", "2024-03-01 10:30:00", ts.UnixMilli()},
		{"date string", "2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli()},
		{"garbage string", "yesterday", 0},
		{"empty string", "", 0},
		{"nil", nil, 0},
		{"object without seconds", map[string]interface{}{"nanos": float64(5)}, 0},
		{"unsupported type", []int{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToEpochMillis(tt.in))
		})
	}
}
