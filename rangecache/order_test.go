package rangecache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvictionOrder_PushAndPop(t *testing.T) {
	o := newEvictionOrder(4)
	o.pushFront(Key{0, 1})
	o.pushFront(Key{2, 3})
	o.pushFront(Key{4, 5})

	assert.Equal(t, 3, o.len())
	assert.Equal(t, []Key{{4, 5}, {2, 3}, {0, 1}}, o.keys())

	for _, want := range []Key{{0, 1}, {2, 3}, {4, 5}} {
		_, key, ok := o.popBack()
		require.True(t, ok)
		assert.Equal(t, want, key)
	}

	_, _, ok := o.popBack()
	assert.False(t, ok)
	assert.Equal(t, 0, o.len())
	assert.Equal(t, nilSlot, o.head)
	assert.Equal(t, nilSlot, o.tail)
}

func TestEvictionOrder_MoveToFront(t *testing.T) {
	tests := []struct {
		name     string
		promote  int
		expected []Key
	}{
		{"tail", 0, []Key{{0, 0}, {2, 2}, {1, 1}}},
		{"middle", 1, []Key{{1, 1}, {2, 2}, {0, 0}}},
		{"head is a no-op", 2, []Key{{2, 2}, {1, 1}, {0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newEvictionOrder(3)
			var handles []handle
			for i := 0; i < 3; i++ {
				handles = append(handles, o.pushFront(Key{i, i}))
			}

			o.moveToFront(handles[tt.promote])
			assert.Equal(t, tt.expected, o.keys())

			_, key, ok := o.popBack()
			require.True(t, ok)
			assert.Equal(t, tt.expected[2], key)
		})
	}
}

func TestEvictionOrder_Remove(t *testing.T) {
	tests := []struct {
		name     string
		remove   int
		expected []Key
	}{
		{"tail", 0, []Key{{2, 2}, {1, 1}}},
		{"middle", 1, []Key{{2, 2}, {0, 0}}},
		{"head", 2, []Key{{1, 1}, {0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newEvictionOrder(3)
			var handles []handle
			for i := 0; i < 3; i++ {
				handles = append(handles, o.pushFront(Key{i, i}))
			}

			key := o.remove(handles[tt.remove])
			assert.Equal(t, Key{tt.remove, tt.remove}, key)
			assert.Equal(t, tt.expected, o.keys())
			assert.Equal(t, 2, o.len())
		})
	}
}

func TestEvictionOrder_SingleElement(t *testing.T) {
	o := newEvictionOrder(1)
	h := o.pushFront(Key{3, 7})
	assert.Equal(t, o.head, o.tail)

	o.moveToFront(h)
	assert.Equal(t, []Key{{3, 7}}, o.keys())

	o.remove(h)
	assert.Equal(t, nilSlot, o.head)
	assert.Equal(t, nilSlot, o.tail)
	assert.Empty(t, o.keys())
}

func TestEvictionOrder_ReusesSlots(t *testing.T) {
	o := newEvictionOrder(2)
	h1 := o.pushFront(Key{0, 0})
	o.pushFront(Key{1, 1})
	o.remove(h1)

	h3 := o.pushFront(Key{2, 2})
	assert.Equal(t, h1.slot, h3.slot)
	assert.NotEqual(t, h1.gen, h3.gen)
	assert.Len(t, o.nodes, 2)
	assert.Equal(t, []Key{{2, 2}, {1, 1}}, o.keys())
}

func TestEvictionOrder_StaleHandlePanics(t *testing.T) {
	o := newEvictionOrder(2)
	h := o.pushFront(Key{0, 0})
	o.remove(h)

	assert.PanicsWithValue(t, "rangecache: stale eviction handle", func() { o.moveToFront(h) })
	assert.PanicsWithValue(t, "rangecache: stale eviction handle", func() { o.remove(h) })

	// The slot is reused, but the old handle still refers to the old generation.
	o.pushFront(Key{1, 1})
	assert.Panics(t, func() { o.remove(h) })
	assert.PanicsWithValue(t, "rangecache: eviction handle out of range", func() {
		o.moveToFront(handle{slot: 5})
	})
}
