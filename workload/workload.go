// Package workload generates synthetic range-sum query streams.
package workload

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Op is the kind of a Query.
type Op uint8

const (
	OpRange Op = iota
	OpUpdate
)

func (o Op) String() string {
	switch o {
	case OpRange:
		return "range"
	case OpUpdate:
		return "update"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Query is either a range query over [Left, Right] or a point update
// writing Value at Index.
type Query struct {
	Op    Op
	Left  int
	Right int
	Index int
	Value int64
}

// Profile describes the shape of a query stream.
type Profile struct {
	Name string
	// HotPool is the number of distinct ranges that are queried repeatedly.
	HotPool int
	// PHot is the probability that a range query picks a hot range.
	PHot float64
	// PUpdate is the probability that a query is an update.
	PUpdate float64
	// MinValue and MaxValue bound array values and update values.
	MinValue int64
	MaxValue int64
}

var ErrInvalidProfile = errors.New("invalid workload profile")

func (p Profile) Validate() error {
	switch {
	case p.HotPool < 0:
		return fmt.Errorf("%w: hot pool %d is negative", ErrInvalidProfile, p.HotPool)
	case p.PHot < 0 || p.PHot > 1:
		return fmt.Errorf("%w: hot probability %v not in [0, 1]", ErrInvalidProfile, p.PHot)
	case p.PUpdate < 0 || p.PUpdate > 1:
		return fmt.Errorf("%w: update probability %v not in [0, 1]", ErrInvalidProfile, p.PUpdate)
	case p.HotPool == 0 && p.PHot > 0:
		return fmt.Errorf("%w: hot probability %v with an empty hot pool", ErrInvalidProfile, p.PHot)
	case p.MinValue > p.MaxValue:
		return fmt.Errorf("%w: value bounds [%d, %d]", ErrInvalidProfile, p.MinValue, p.MaxValue)
	}
	return nil
}

// Generator produces arrays and query streams. The same seed and profile
// always yield the same output.
type Generator struct {
	profile Profile
	rng     *rand.Rand
}

func NewGenerator(profile Profile, seed uint64) (*Generator, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		profile: profile,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// Array returns n values drawn uniformly from [MinValue, MaxValue].
func (g *Generator) Array(n int) []int64 {
	values := make([]int64, n)
	for i := range values {
		values[i] = g.value()
	}
	return values
}

// Queries returns q queries over an array of length n.
func (g *Generator) Queries(n, q int) ([]Query, error) {
	if n <= 0 {
		return nil, fmt.Errorf("array length must be positive, got %d", n)
	}
	if q < 0 {
		return nil, fmt.Errorf("query count must not be negative, got %d", q)
	}

	hot := make([][2]int, g.profile.HotPool)
	for i := range hot {
		hot[i] = [2]int{g.between(0, n/2), g.between(n/2, n-1)}
	}

	queries := make([]Query, 0, q)
	for range q {
		if g.rng.Float64() < g.profile.PUpdate {
			queries = append(queries, Query{
				Op:    OpUpdate,
				Index: g.between(0, n-1),
				Value: g.value(),
			})
			continue
		}

		var left, right int
		if g.rng.Float64() < g.profile.PHot {
			r := hot[g.rng.IntN(len(hot))]
			left, right = r[0], r[1]
		} else {
			left = g.between(0, n-1)
			right = g.between(left, n-1)
		}
		queries = append(queries, Query{Op: OpRange, Left: left, Right: right})
	}
	return queries, nil
}

// between returns a uniform int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) value() int64 {
	return g.profile.MinValue + g.rng.Int64N(g.profile.MaxValue-g.profile.MinValue+1)
}

// Count returns the number of range queries and updates in queries.
func Count(queries []Query) (ranges, updates int) {
	for _, q := range queries {
		if q.Op == OpUpdate {
			updates++
		} else {
			ranges++
		}
	}
	return ranges, updates
}
