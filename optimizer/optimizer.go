package optimizer

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"runtime/debug"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Optimizer finds the best-scoring ingredient combination for a catalog.
// An Optimizer holds no per-call state and may be shared.
type Optimizer struct {
	catalog *Catalog
	cfg     Config
	log     *slog.Logger
}

// New creates an optimizer over cat with the given tuning.
func New(cat *Catalog, cfg Config) (*Optimizer, error) {
	if cat == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrInvalidConfig)
	}
	if cfg.Partition == "" {
		cfg.Partition = PartitionPrefix
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Optimizer{catalog: cat, cfg: cfg, log: cfg.logger()}, nil
}

// Catalog returns the catalog the optimizer searches over.
func (o *Optimizer) Catalog() *Catalog { return o.catalog }

// Config returns the optimizer's tuning.
func (o *Optimizer) Config() Config { return o.cfg }

// UsableIndices returns sorted(unlocked ∪ always-available) without duplicates.
func (o *Optimizer) UsableIndices(unlocked []int) []int {
	set := make(map[int]bool, len(unlocked)+2)
	for _, i := range unlocked {
		set[i] = true
	}
	for _, i := range o.catalog.alwaysAvailable {
		set[i] = true
	}
	out := make([]int, 0, len(set))
	for i := range set {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// FindOptimal searches every combination of the usable ingredients
// (unlocked plus always-available) for the highest-scoring one that stays
// within the unit budget, contains each required ingredient at least once,
// and lands every virtue inside its range.
//
// Invalid ranges or ingredient indices fail before any search work. When no
// combination qualifies the returned Result has Found() == false and a nil
// error. A required ingredient outside the usable set can never be satisfied.
func (o *Optimizer) FindOptimal(ctx context.Context, required []int, ranges Ranges, unlocked []int) (Result, error) {
	start := time.Now()

	if err := ValidateRanges(ranges); err != nil {
		return emptyResult(), err
	}
	if err := o.catalog.Validate(required); err != nil {
		return emptyResult(), fmt.Errorf("required: %w", err)
	}
	if err := o.catalog.Validate(unlocked); err != nil {
		return emptyResult(), fmt.Errorf("unlocked: %w", err)
	}

	variable := o.UsableIndices(unlocked)
	params := &searchParams{
		variable: variable,
		required: dedupInts(required),
		ranges:   ranges,
		n:        o.catalog.IngredientCount(),
		maxQty:   o.cfg.MaxQuantity,
		budget:   o.cfg.UnitBudget,
		scorer:   o.cfg.Scoring,
	}
	for _, r := range params.required {
		if !containsInt(variable, r) {
			o.log.Warn("required ingredient is not usable; no combination can qualify",
				"ingredient", o.catalog.Name(r))
		}
	}

	radix := o.cfg.MaxQuantity + 1
	workers := o.cfg.workers()
	tasks := planTasks(o.cfg.Partition, len(variable), radix, workers, o.cfg.ChunksPerWorker)
	workers = min(workers, len(tasks))

	total := new(big.Int).Exp(big.NewInt(int64(radix)), big.NewInt(int64(len(variable))), nil)
	o.log.Info("search started",
		"usable", len(variable),
		"required", len(params.required),
		"max_quantity", o.cfg.MaxQuantity,
		"theoretical", total.String(),
		"workers", workers,
		"partition", string(o.cfg.Partition),
		"tasks", len(tasks))

	parts, err := o.runTasks(ctx, params, tasks, workers)
	if err != nil {
		return emptyResult(), err
	}

	merged := mergeResults(parts)
	res := emptyResult()
	res.Stats = merged.stats
	res.Stats.TotalCombinations = total
	if merged.found {
		vals := merged.best.Values
		score := merged.best.Score
		res.Quantities = merged.best.Quantities
		res.Values = &vals
		res.Score = score
		res.Stats.BestScore = &score
	}
	res.Stats.Elapsed = time.Since(start)

	o.log.Info("search done",
		"found", res.Found(),
		"score", res.Score,
		"examined", res.Stats.Examined,
		"skipped_total", res.Stats.SkippedTotal,
		"skipped_required", res.Stats.SkippedRequired,
		"skipped_range", res.Stats.SkippedRange,
		"valid", res.Stats.Valid,
		"elapsed", res.Stats.Elapsed)
	return res, nil
}

// runTasks fans tasks out to a fixed pool of workers. Each worker owns one
// searchState (and memo) and writes only to the result slots of the tasks it
// pulls. The first worker failure cancels the rest.
func (o *Optimizer) runTasks(ctx context.Context, params *searchParams, tasks []task, workers int) ([]taskResult, error) {
	parts := make([]taskResult, len(tasks))
	taskCh := make(chan task, len(tasks))
	for _, t := range tasks {
		taskCh <- t
	}
	close(taskCh)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("worker %d panicked: %v\n%s", w, r, debug.Stack())
				}
			}()

			var step stepper = o.catalog
			if o.cfg.MemoSize > 0 {
				memo, merr := newMemo(o.catalog, o.cfg.MemoSize)
				if merr != nil {
					return fmt.Errorf("worker %d: memo: %w", w, merr)
				}
				step = memo
			}
			st := newSearchState(gctx, params, step)
			st.onImprove = o.improveHook(w)

			for t := range taskCh {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := st.run(t); err != nil {
					return err
				}
				parts[t.id] = st.result()
				o.log.Debug("task done", "worker", w, "task", t.id,
					"examined", parts[t.id].stats.Examined, "found", parts[t.id].found)
			}
			if m, ok := step.(*MemoEvaluator); ok {
				o.log.Debug("memo", "worker", w, "entries", m.Len(), "hit_rate", m.HitRate())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parts, nil
}

// improveHook returns one worker's improvement sink. Tasks restart their own
// best, so the sink drops anything not above the worker's last report.
func (o *Optimizer) improveHook(worker int) func(Candidate) {
	debugOn := o.log.Enabled(context.Background(), slog.LevelDebug)
	if o.cfg.OnImprove == nil && !debugOn {
		return nil
	}
	reported := math.Inf(-1)
	return func(c Candidate) {
		if c.Score <= reported {
			return
		}
		reported = c.Score
		if debugOn {
			o.log.Debug("new best", "worker", worker, "score", c.Score,
				"taste", c.Values[Taste], "color", c.Values[Color],
				"strength", c.Values[Strength], "foam", c.Values[Foam])
		}
		if o.cfg.OnImprove != nil {
			o.cfg.OnImprove(worker, c)
		}
	}
}

func dedupInts(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
