package optimizer

import (
	"fmt"
	"log/slog"
	"runtime"
)

// PartitionStrategy selects how the enumeration is split across workers.
type PartitionStrategy string

const (
	// PartitionPrefix cuts the mixed-radix index space of the leading
	// variable ingredients into chunks pulled from a shared queue.
	PartitionPrefix PartitionStrategy = "prefix"
	// PartitionFirst gives each worker a contiguous slice of the first
	// variable ingredient's quantity span.
	PartitionFirst PartitionStrategy = "first"
)

// Search tuning parameters.
type Config struct {
	// MaxQuantity is the highest unit count tried per ingredient (inclusive).
	MaxQuantity int `yaml:"max_quantity"`
	// UnitBudget caps the total units of a combination.
	UnitBudget int `yaml:"unit_budget"`
	// Workers is the degree of parallelism; 0 means min(NumCPU, 4).
	Workers int `yaml:"workers"`
	// Partition picks the work split.
	Partition PartitionStrategy `yaml:"partition"`
	// ChunksPerWorker is the target number of prefix chunks per worker.
	ChunksPerWorker int `yaml:"chunks_per_worker"`
	// MemoSize is the per-worker incremental-evaluation cache size; 0 disables it.
	MemoSize int `yaml:"memo_size"`
	// Scoring is the score and range-inclusion policy.
	Scoring Scorer `yaml:"scoring"`

	// Logger receives phase logs. Nil discards them.
	Logger *slog.Logger `yaml:"-"`
	// OnImprove is called from a worker goroutine every time that worker
	// finds a candidate scoring above everything it reported before. It must
	// be safe for concurrent use.
	OnImprove func(worker int, best Candidate) `yaml:"-"`
}

// DefaultConfig returns the reference tuning: quantities 0-9, 25 units.
func DefaultConfig() Config {
	return Config{
		MaxQuantity:     9,
		UnitBudget:      25,
		Workers:         0,
		Partition:       PartitionPrefix,
		ChunksPerWorker: 16,
		MemoSize:        0,
		Scoring:         DefaultScorer(),
	}
}

// Validate reports the first nonsensical setting.
func (c Config) Validate() error {
	switch {
	case c.MaxQuantity < 0:
		return fmt.Errorf("%w: max_quantity %d < 0", ErrInvalidConfig, c.MaxQuantity)
	case c.UnitBudget < 0:
		return fmt.Errorf("%w: unit_budget %d < 0", ErrInvalidConfig, c.UnitBudget)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d < 0", ErrInvalidConfig, c.Workers)
	case c.ChunksPerWorker < 0:
		return fmt.Errorf("%w: chunks_per_worker %d < 0", ErrInvalidConfig, c.ChunksPerWorker)
	case c.MemoSize < 0:
		return fmt.Errorf("%w: memo_size %d < 0", ErrInvalidConfig, c.MemoSize)
	case c.Scoring.Tolerance < 0:
		return fmt.Errorf("%w: tolerance %g < 0", ErrInvalidConfig, c.Scoring.Tolerance)
	}
	switch c.Partition {
	case PartitionPrefix, PartitionFirst, "":
	default:
		return fmt.Errorf("%w: unknown partition strategy %q", ErrInvalidConfig, c.Partition)
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return min(runtime.NumCPU(), 4)
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
