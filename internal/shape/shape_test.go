package shape

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractProjectsExactFields(t *testing.T) {
	records := []any{
		map[string]any{"killcnt": float64(3), "deadcnt": float64(1), "extra": "x"},
		map[string]any{"killcnt": float64(7)},
	}
	fields := []string{"killcnt", "deadcnt", "assistcnt"}

	got := Extract(records, fields)

	want := []map[string]any{
		{"killcnt": float64(3), "deadcnt": float64(1), "assistcnt": nil},
		{"killcnt": float64(7), "deadcnt": nil, "assistcnt": nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractKeySetAlwaysEqualsFields(t *testing.T) {
	inputs := [][]map[string]any{
		{},
		{{}},
		{{"a": 1}, {"b": 2}, {"a": 1, "b": 2, "c": 3}},
	}
	fieldSets := [][]string{{}, {"a"}, {"a", "b"}, {"z"}}

	for _, records := range inputs {
		for _, fields := range fieldSets {
			got := Extract(records, fields)
			require.Len(t, got, len(records))
			for _, row := range got {
				require.Len(t, row, len(fields))
				for _, f := range fields {
					_, ok := row[f]
					assert.True(t, ok, "missing field %q", f)
				}
			}
		}
	}
}

func TestExtractMalformedInputYieldsEmpty(t *testing.T) {
	cases := map[string]any{
		"nil":             nil,
		"string":          "not a list",
		"map":             map[string]any{"list": []any{}},
		"number":          float64(3),
		"non-map element": []any{map[string]any{"a": 1}, "oops"},
		"nil map element": []map[string]any{{"a": 1}, nil},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			got := Extract(input, []string{"a"})
			require.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestExtractDoesNotAliasSource(t *testing.T) {
	src := []map[string]any{{"a": 1}}
	got := Extract(src, []string{"a"})
	got[0]["a"] = 2
	assert.Equal(t, 1, src[0]["a"])
}

func TestTruncate(t *testing.T) {
	rows := []map[string]any{{}, {}, {}}
	assert.Len(t, Truncate(rows, 2), 2)
	assert.Len(t, Truncate(rows, 10), 3)
	assert.Len(t, Truncate(nil, 2), 0)
}

func TestFormatDuration(t *testing.T) {
	cases := map[int64]string{
		0:    "0:00",
		5:    "0:05",
		125:  "2:05",
		600:  "10:00",
		1859: "30:59",
		-5:   "-1:55",
		-125: "-3:55",
		-60:  "-1:00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatDuration(in), "seconds=%d", in)
	}
}

func TestInt(t *testing.T) {
	v, ok := Int(float64(125))
	require.True(t, ok)
	assert.Equal(t, int64(125), v)

	v, ok = Int(json.Number("-7"))
	require.True(t, ok)
	assert.Equal(t, int64(-7), v)

	for _, in := range []any{nil, "42", "abc", 125.5, json.Number("1.5"), math.NaN(), true} {
		_, ok = Int(in)
		assert.False(t, ok, "value=%v", in)
	}
}

func TestString(t *testing.T) {
	s, ok := String(float64(12345))
	require.True(t, ok)
	assert.Equal(t, "12345", s)

	s, ok = String("北京")
	require.True(t, ok)
	assert.Equal(t, "北京", s)

	_, ok = String(nil)
	assert.False(t, ok)
}
