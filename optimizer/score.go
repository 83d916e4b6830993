package optimizer

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Scorer maps virtue values and target ranges to a fitness score.
type Scorer struct {
	// Tolerance widens every range symmetrically for the in-range test.
	Tolerance float64 `yaml:"tolerance"`
	// Penalty is subtracted for each virtue outside its range.
	Penalty float64 `yaml:"penalty"`
	// ValueWeight multiplies the raw virtue value of an in-range virtue.
	ValueWeight float64 `yaml:"value_weight"`
	// PositionWeight multiplies the normalized position inside the range.
	PositionWeight float64 `yaml:"position_weight"`
}

// DefaultScorer returns the reference policy: ±0.05 tolerance, -10000 per
// missed virtue, v*10 + normalized*100 per hit.
func DefaultScorer() Scorer {
	return Scorer{
		Tolerance:      0.05,
		Penalty:        10000,
		ValueWeight:    10,
		PositionWeight: 100,
	}
}

// ── Range checks ──

func (s Scorer) inRange(v float64, r Range) bool {
	return r.Low-s.Tolerance <= v && v <= r.High+s.Tolerance
}

// InRange reports whether every virtue lies inside its tolerant range.
func (s Scorer) InRange(values Values, ranges Ranges) bool {
	for _, vt := range Virtues {
		if !s.inRange(values[vt], ranges[vt]) {
			return false
		}
	}
	return true
}

// ── Score ──

// Score sums the per-virtue contributions. An out-of-range virtue only
// contributes the penalty.
func (s Scorer) Score(values Values, ranges Ranges) float64 {
	score := 0.0
	for _, vt := range Virtues {
		v, r := values[vt], ranges[vt]
		if !s.inRange(v, r) {
			score -= s.Penalty
			continue
		}
		normalized := 1.0
		if r.High != r.Low {
			normalized = (v - r.Low) / (r.High - r.Low)
		}
		score += v*s.ValueWeight + normalized*s.PositionWeight
	}
	return score
}

// ── Ranges helpers ──

// ValidateRanges fails with ErrInvalidRange when a bound is NaN or low > high.
func ValidateRanges(ranges Ranges) error {
	for _, vt := range Virtues {
		r := ranges[vt]
		if math.IsNaN(r.Low) || math.IsNaN(r.High) {
			return fmt.Errorf("%w: %s bound is NaN", ErrInvalidRange, vt)
		}
		if r.Low > r.High {
			return fmt.Errorf("%w: %s low %g > high %g", ErrInvalidRange, vt, r.Low, r.High)
		}
	}
	return nil
}

// ParseRanges builds Ranges from a virtue-name keyed map. Exactly the four
// virtues must be present.
func ParseRanges(m map[string]Range) (Ranges, error) {
	var out Ranges
	var seen [NumVirtues]bool
	var unknown []string
	for name, r := range m {
		vt, ok := ParseVirtue(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if seen[vt] {
			return out, fmt.Errorf("%w: %s given twice", ErrInvalidRange, vt)
		}
		seen[vt] = true
		out[vt] = r
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return out, fmt.Errorf("%w: unknown virtue %s", ErrInvalidRange, strings.Join(unknown, ", "))
	}
	for _, vt := range Virtues {
		if !seen[vt] {
			return out, fmt.Errorf("%w: missing %s", ErrInvalidRange, vt)
		}
	}
	return out, ValidateRanges(out)
}

// WideRanges returns ranges wide enough to accept any reachable value.
func WideRanges() Ranges {
	var r Ranges
	for _, vt := range Virtues {
		r[vt] = Range{Low: -1e9, High: 1e9}
	}
	return r
}
