package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() Profile {
	return Profile{Name: "test", HotPool: 5, PHot: 0.9, PUpdate: 0.1, MinValue: 1, MaxValue: 100}
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(p *Profile)
		wantErr bool
	}{
		{"valid", func(p *Profile) {}, false},
		{"no hot pool and no hot queries", func(p *Profile) { p.HotPool, p.PHot = 0, 0 }, false},
		{"negative hot pool", func(p *Profile) { p.HotPool = -1 }, true},
		{"hot probability above one", func(p *Profile) { p.PHot = 1.5 }, true},
		{"negative update probability", func(p *Profile) { p.PUpdate = -0.1 }, true},
		{"hot queries without hot pool", func(p *Profile) { p.HotPool = 0 }, true},
		{"inverted value bounds", func(p *Profile) { p.MinValue = 10; p.MaxValue = 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProfile()
			tt.modify(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProfile)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewGenerator_InvalidProfile(t *testing.T) {
	p := testProfile()
	p.PUpdate = 2
	_, err := NewGenerator(p, 1)
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestGenerator_Array(t *testing.T) {
	g, err := NewGenerator(testProfile(), 42)
	require.NoError(t, err)

	values := g.Array(1000)
	require.Len(t, values, 1000)
	for _, v := range values {
		assert.GreaterOrEqual(t, v, int64(1))
		assert.LessOrEqual(t, v, int64(100))
	}
}

func TestGenerator_QueriesWithinBounds(t *testing.T) {
	const n = 50
	g, err := NewGenerator(testProfile(), 42)
	require.NoError(t, err)

	queries, err := g.Queries(n, 5000)
	require.NoError(t, err)
	require.Len(t, queries, 5000)

	for _, q := range queries {
		switch q.Op {
		case OpRange:
			assert.GreaterOrEqual(t, q.Left, 0)
			assert.LessOrEqual(t, q.Left, q.Right)
			assert.Less(t, q.Right, n)
		case OpUpdate:
			assert.GreaterOrEqual(t, q.Index, 0)
			assert.Less(t, q.Index, n)
			assert.GreaterOrEqual(t, q.Value, int64(1))
			assert.LessOrEqual(t, q.Value, int64(100))
		default:
			t.Fatalf("unexpected op %v", q.Op)
		}
	}

	ranges, updates := Count(queries)
	assert.Equal(t, 5000, ranges+updates)
	assert.InDelta(t, 500, updates, 150)
}

func TestGenerator_HotRanges(t *testing.T) {
	const n = 1000
	p := testProfile()
	p.PHot = 1
	p.PUpdate = 0
	g, err := NewGenerator(p, 3)
	require.NoError(t, err)

	queries, err := g.Queries(n, 2000)
	require.NoError(t, err)

	distinct := make(map[[2]int]bool)
	for _, q := range queries {
		require.Equal(t, OpRange, q.Op)
		assert.LessOrEqual(t, q.Left, n/2)
		assert.GreaterOrEqual(t, q.Right, n/2)
		distinct[[2]int{q.Left, q.Right}] = true
	}
	assert.LessOrEqual(t, len(distinct), p.HotPool)
}

func TestGenerator_Deterministic(t *testing.T) {
	gen := func(seed uint64) []Query {
		g, err := NewGenerator(testProfile(), seed)
		require.NoError(t, err)
		queries, err := g.Queries(100, 200)
		require.NoError(t, err)
		return queries
	}

	assert.Equal(t, gen(9), gen(9))
	assert.NotEqual(t, gen(9), gen(10))
}

func TestGenerator_QueriesErrors(t *testing.T) {
	g, err := NewGenerator(testProfile(), 1)
	require.NoError(t, err)

	_, err = g.Queries(0, 10)
	assert.Error(t, err)
	_, err = g.Queries(10, -1)
	assert.Error(t, err)

	queries, err := g.Queries(1, 10)
	require.NoError(t, err)
	for _, q := range queries {
		if q.Op == OpRange {
			assert.Equal(t, 0, q.Left)
			assert.Equal(t, 0, q.Right)
		}
	}
}

func TestOp_String(t *testing.T) {
	assert.Equal(t, "range", OpRange.String())
	assert.Equal(t, "update", OpUpdate.String())
	assert.Equal(t, "Op(7)", Op(7).String())
}
