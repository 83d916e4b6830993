package optimizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformRanges(lo, hi float64) Ranges {
	var r Ranges
	for _, vt := range Virtues {
		r[vt] = Range{Low: lo, High: hi}
	}
	return r
}

func TestScorer_Score(t *testing.T) {
	s := DefaultScorer()

	tests := []struct {
		name   string
		values Values
		ranges Ranges
		want   float64
	}{
		{
			name:   "zeros in degenerate range",
			values: Values{},
			ranges: uniformRanges(0, 0),
			want:   400,
		},
		{
			name:   "normalized position",
			values: Values{5, 0, 10, 2.5},
			ranges: uniformRanges(0, 10),
			// 50+50 + 0+0 + 100+100 + 25+25
			want: 350,
		},
		{
			name:   "one virtue out of range",
			values: Values{0, 0, 0, 3},
			ranges: uniformRanges(0, 0),
			want:   300 - 10000,
		},
		{
			name:   "all out of range",
			values: Values{9, 9, 9, 9},
			ranges: uniformRanges(0, 1),
			want:   -40000,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.Score(tt.values, tt.ranges), 1e-9)
		})
	}
}

func TestScorer_InRangeTolerance(t *testing.T) {
	s := DefaultScorer()
	r := uniformRanges(1, 2)

	assert.True(t, s.InRange(Values{1, 1.5, 2, 1}, r))
	assert.True(t, s.InRange(Values{0.96, 2.04, 1, 1}, r))
	assert.False(t, s.InRange(Values{0.94, 1, 1, 1}, r))
	assert.False(t, s.InRange(Values{1, 1, 1, 2.06}, r))

	strict := s
	strict.Tolerance = 0
	assert.False(t, strict.InRange(Values{0.96, 1, 1, 1}, r))
}

func TestScorer_OutOfRangeNeverBeatsInRange(t *testing.T) {
	s := DefaultScorer()
	r := uniformRanges(0, 1)
	best := s.Score(Values{100, 100, 100, 0.5}, r) // three virtues out
	worst := s.Score(Values{0, 0, 0, 0}, r)
	assert.Less(t, best, worst)
}

func TestParseRanges(t *testing.T) {
	full := map[string]Range{
		"taste":    {0, 5},
		"color":    {1, 2},
		"strength": {0, 0},
		"foam":     {3, 4},
	}
	got, err := ParseRanges(full)
	require.NoError(t, err)
	assert.Equal(t, Range{1, 2}, got[Color])
	assert.Equal(t, Range{3, 4}, got[Foam])

	tests := []struct {
		name   string
		mutate func(m map[string]Range)
	}{
		{"missing virtue", func(m map[string]Range) { delete(m, "foam") }},
		{"unknown virtue", func(m map[string]Range) { m["bitterness"] = Range{0, 1} }},
		{"low above high", func(m map[string]Range) { m["taste"] = Range{5, 1} }},
		{"nan bound", func(m map[string]Range) { m["color"] = Range{math.NaN(), 1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := make(map[string]Range, len(full))
			for k, v := range full {
				m[k] = v
			}
			tt.mutate(m)
			_, err := ParseRanges(m)
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}

func TestVirtueNames(t *testing.T) {
	for _, vt := range Virtues {
		got, ok := ParseVirtue(vt.String())
		assert.True(t, ok)
		assert.Equal(t, vt, got)
	}
	for _, name := range []string{"bitterness", "Taste", "colour", "FOAM", " strength"} {
		_, ok := ParseVirtue(name)
		assert.False(t, ok, name)
	}
	assert.Equal(t, map[string]float64{"taste": 1, "color": 2, "strength": 3, "foam": 4}, Values{1, 2, 3, 4}.Map())
}
