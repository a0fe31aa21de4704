// Package bench replays one synthetic query stream against an uncached and a
// cached array and compares the elapsed time of both passes.
package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aldehir/rangesum/rangecache"
	"github.com/aldehir/rangesum/rangesum"
	"github.com/aldehir/rangesum/workload"
)

const (
	DefaultSize     = 100_000
	DefaultQueries  = 50_000
	DefaultCapacity = 1000

	// cancellation is checked once per this many queries
	checkInterval = 4096
)

var ErrInvalidConfig = errors.New("invalid benchmark config")

type Config struct {
	Size     int
	Queries  int
	Capacity int
	Seed     uint64
	Profile  workload.Profile
}

func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidConfig, c.Size)
	}
	if c.Queries < 0 {
		return fmt.Errorf("%w: queries must not be negative, got %d", ErrInvalidConfig, c.Queries)
	}
	if c.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1, got %d", ErrInvalidConfig, c.Capacity)
	}
	if err := c.Profile.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Result is the outcome of one pass over the query stream. Checksum is the
// sum of all range query answers.
type Result struct {
	Name     string        `json:"name"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	Checksum int64         `json:"checksum"`
}

type Runner struct {
	logger *slog.Logger
}

func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{logger: logger}
}

// Run generates the array and the query stream described by cfg and replays
// the stream once without and once with the cache.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gen, err := workload.NewGenerator(cfg.Profile, cfg.Seed)
	if err != nil {
		return nil, err
	}
	values := gen.Array(cfg.Size)
	queries, err := gen.Queries(cfg.Size, cfg.Queries)
	if err != nil {
		return nil, err
	}
	ranges, updates := workload.Count(queries)
	r.logger.Debug("Generated workload",
		"profile", cfg.Profile.Name,
		"size", cfg.Size,
		"ranges", ranges,
		"updates", updates,
	)

	report := &Report{
		Profile:      cfg.Profile.Name,
		Size:         cfg.Size,
		Queries:      len(queries),
		RangeQueries: ranges,
		Updates:      updates,
		Capacity:     cfg.Capacity,
	}

	r.logger.Info("Running without cache")
	report.Uncached, err = r.replay(ctx, "no-cache", rangesum.NewArray(values), queries)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Running with LRU cache", "capacity", cfg.Capacity)
	cached := rangesum.NewCachedArray(values, cfg.Capacity)
	report.Cached, err = r.replay(ctx, "lru-cache", cached, queries)
	if err != nil {
		return nil, err
	}

	report.Stats = cached.Stats()
	report.Consistent = report.Uncached.Checksum == report.Cached.Checksum
	if report.Cached.Elapsed > 0 && report.Cached.Elapsed < report.Uncached.Elapsed {
		report.Speedup = float64(report.Uncached.Elapsed) / float64(report.Cached.Elapsed)
	}
	if !report.Consistent {
		r.logger.Warn("Cached and uncached checksums differ",
			"uncached", report.Uncached.Checksum,
			"cached", report.Cached.Checksum,
		)
	}
	return report, nil
}

func (r *Runner) replay(ctx context.Context, name string, s rangesum.Summer, queries []workload.Query) (Result, error) {
	res := Result{Name: name}
	start := time.Now()

	for i, q := range queries {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return res, fmt.Errorf("%s pass interrupted after %d queries: %w", name, i, err)
			}
		}

		switch q.Op {
		case workload.OpRange:
			v, err := s.Sum(q.Left, q.Right)
			if err != nil {
				return res, fmt.Errorf("%s pass: query %d: %w", name, i, err)
			}
			res.Checksum += v
		case workload.OpUpdate:
			if err := s.Set(q.Index, q.Value); err != nil {
				return res, fmt.Errorf("%s pass: query %d: %w", name, i, err)
			}
		}
	}

	res.Elapsed = time.Since(start)
	r.logger.Debug("Pass finished", "name", name, "elapsed", res.Elapsed, "checksum", res.Checksum)
	return res, nil
}

// Report compares the two passes of a Run.
type Report struct {
	Profile      string           `json:"profile"`
	Size         int              `json:"size"`
	Queries      int              `json:"queries"`
	RangeQueries int              `json:"range_queries"`
	Updates      int              `json:"updates"`
	Capacity     int              `json:"capacity"`
	Uncached     Result           `json:"uncached"`
	Cached       Result           `json:"cached"`
	Speedup      float64          `json:"speedup"`
	Stats        rangecache.Stats `json:"cache_stats"`
	Consistent   bool             `json:"consistent"`
}

// HitRate returns the fraction of range queries answered from the cache.
func (r *Report) HitRate() float64 {
	lookups := r.Stats.Hits + r.Stats.Misses
	if lookups == 0 {
		return 0
	}
	return float64(r.Stats.Hits) / float64(lookups)
}
