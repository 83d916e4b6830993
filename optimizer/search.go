package optimizer

import (
	"context"
)

// pollEvery is how many terminal candidates pass between context checks.
const pollEvery = 4096

// searchState is the accumulator of one worker. It is never shared between
// goroutines; results leave it only through result().
type searchState struct {
	ctx    context.Context
	step   stepper
	scorer Scorer

	variable []int
	required []int
	ranges   Ranges
	maxQty   int
	budget   int

	partial    []int      // quantity per variable position
	quantities Quantities // scratch full-length vector

	stats Stats
	best  Candidate
	found bool
	ticks int

	onImprove func(Candidate)
}

type taskResult struct {
	stats Stats
	best  Candidate
	found bool
}

// searchParams is the immutable part shared by every worker of one call.
type searchParams struct {
	variable []int
	required []int
	ranges   Ranges
	n        int
	maxQty   int
	budget   int
	scorer   Scorer
}

func newSearchState(ctx context.Context, params *searchParams, step stepper) *searchState {
	return &searchState{
		ctx:        ctx,
		step:       step,
		scorer:     params.scorer,
		variable:   params.variable,
		required:   params.required,
		ranges:     params.ranges,
		maxQty:     params.maxQty,
		budget:     params.budget,
		partial:    make([]int, len(params.variable)),
		quantities: make(Quantities, params.n),
	}
}

// reset clears counters and the local best before a new task.
func (s *searchState) reset() {
	s.stats = Stats{}
	s.best = Candidate{}
	s.found = false
	for i := range s.partial {
		s.partial[i] = 0
	}
}

func (s *searchState) result() taskResult {
	return taskResult{stats: s.stats, best: s.best, found: s.found}
}

// run enumerates the slice of the tree described by t.
func (s *searchState) run(t task) error {
	s.reset()
	if t.depth == 0 {
		return s.descend(0, 0, Values{}, t.firstLo, t.firstHi)
	}
	return s.runPrefix(t)
}

// runPrefix decodes every prefix index in [t.from, t.to) into the first
// t.depth positions and searches the subtree below each. A prefix whose
// running sum overflows the budget at depth j+1 < t.depth is skipped together
// with every index sharing its first j+1 digits. The overflowing node is
// counted once, by the index whose remaining digits are zero, so the totals
// match a single unpartitioned search.
func (s *searchState) runPrefix(t task) error {
	radix := uint64(s.maxQty + 1)
	stride := strides(s.maxQty+1, t.depth)

	for idx := t.from; idx < t.to; {
		sum := 0
		values := Values{}
		overflow := -1
		for j := 0; j < t.depth; j++ {
			q := int(idx / stride[j] % radix)
			s.partial[j] = q
			sum += q
			values = s.step.EvaluateIncremental(values, s.variable[j], q)
			if j < t.depth-1 && sum > s.budget {
				overflow = j
				break
			}
		}
		if overflow >= 0 {
			st := stride[overflow]
			if idx%st == 0 {
				s.stats.SkippedTotal++
			}
			idx = (idx/st + 1) * st
			continue
		}
		if err := s.descend(t.depth, sum, values, 0, s.maxQty+1); err != nil {
			return err
		}
		idx++
	}
	return nil
}

// descend visits the node at position with the given running sum and values.
// At the first position of a task the quantity span is [lo, hi); deeper
// positions always take every quantity in [0, maxQty].
func (s *searchState) descend(position, sum int, values Values, lo, hi int) error {
	if sum > s.budget {
		s.stats.SkippedTotal++
		return nil
	}
	if position == len(s.variable) {
		return s.terminal(values)
	}

	ingredient := s.variable[position]
	for q := lo; q < hi; q++ {
		if sum+q > s.budget {
			// every remaining child overflows
			s.stats.SkippedTotal += uint64(hi - q)
			break
		}
		s.partial[position] = q
		next := s.step.EvaluateIncremental(values, ingredient, q)
		if err := s.descend(position+1, sum+q, next, 0, s.maxQty+1); err != nil {
			return err
		}
	}
	return nil
}

func (s *searchState) terminal(values Values) error {
	s.ticks++
	if s.ticks%pollEvery == 0 {
		if err := s.ctx.Err(); err != nil {
			return err
		}
	}

	s.stats.Examined++
	for pos, idx := range s.variable {
		s.quantities[idx] = s.partial[pos]
	}
	for _, r := range s.required {
		if s.quantities[r] < 1 {
			s.stats.SkippedRequired++
			return nil
		}
	}
	if !s.scorer.InRange(values, s.ranges) {
		s.stats.SkippedRange++
		return nil
	}

	s.stats.Valid++
	score := s.scorer.Score(values, s.ranges)
	if !s.found || score > s.best.Score {
		s.found = true
		s.best = Candidate{
			Quantities: s.quantities.clone(),
			Values:     values,
			Score:      score,
		}
		if s.onImprove != nil {
			s.onImprove(s.best)
		}
	}
	return nil
}

// mergeResults folds task results in order: counters are summed and the
// strictly highest score wins, earlier tasks winning ties.
func mergeResults(parts []taskResult) taskResult {
	var out taskResult
	for _, p := range parts {
		out.stats.add(p.stats)
		if p.found && (!out.found || p.best.Score > out.best.Score) {
			out.best = p.best
			out.found = true
		}
	}
	return out
}
