package optimizer

import (
	"math"
	"math/big"
	"time"
)

// Virtue is one of the four derived attributes of a brew.
type Virtue int

const (
	Taste Virtue = iota
	Color
	Strength
	Foam
	NumVirtues
)

// Virtues lists every virtue in table order.
var Virtues = [NumVirtues]Virtue{Taste, Color, Strength, Foam}

func (v Virtue) String() string {
	switch v {
	case Taste:
		return "taste"
	case Color:
		return "color"
	case Strength:
		return "strength"
	case Foam:
		return "foam"
	}
	return "unknown"
}

// ParseVirtue maps a lowercase virtue name to its Virtue. The second result
// is false for any other spelling.
func ParseVirtue(s string) (Virtue, bool) {
	switch s {
	case "taste":
		return Taste, true
	case "color":
		return Color, true
	case "strength":
		return Strength, true
	case "foam":
		return Foam, true
	}
	return 0, false
}

// Values holds one number per virtue, indexed by Virtue.
type Values [NumVirtues]float64

// Map returns the values keyed by virtue name.
func (v Values) Map() map[string]float64 {
	m := make(map[string]float64, NumVirtues)
	for _, vt := range Virtues {
		m[vt.String()] = v[vt]
	}
	return m
}

// Range is a closed target interval for a single virtue.
type Range struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Ranges holds the target interval of every virtue.
type Ranges [NumVirtues]Range

// Quantities is a full-length quantity vector aligned with the catalog.
type Quantities []int

// Sum returns the total number of units.
func (q Quantities) Sum() int {
	s := 0
	for _, n := range q {
		s += n
	}
	return s
}

func (q Quantities) clone() Quantities {
	if q == nil {
		return nil
	}
	c := make(Quantities, len(q))
	copy(c, q)
	return c
}

// Candidate is a recorded best-so-far combination.
type Candidate struct {
	Quantities Quantities
	Values     Values
	Score      float64
}

// Stats counts what happened during one search.
type Stats struct {
	TotalCombinations *big.Int
	Examined          uint64
	SkippedTotal      uint64
	SkippedRequired   uint64
	SkippedRange      uint64
	Valid             uint64
	Elapsed           time.Duration
	// BestScore is nil when no feasible combination was found.
	BestScore *float64
}

func (s *Stats) add(o Stats) {
	s.Examined += o.Examined
	s.SkippedTotal += o.SkippedTotal
	s.SkippedRequired += o.SkippedRequired
	s.SkippedRange += o.SkippedRange
	s.Valid += o.Valid
}

// Result is the outcome of FindOptimal. Quantities and Values are nil when
// no combination satisfied every constraint; that is a normal outcome.
type Result struct {
	Quantities Quantities
	Values     *Values
	Score      float64
	Stats      Stats
}

// Found reports whether a feasible combination was found.
func (r Result) Found() bool {
	return r.Quantities != nil
}

func emptyResult() Result {
	return Result{Score: math.Inf(-1)}
}
