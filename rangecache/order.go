package rangecache

const nilSlot = -1

// handle addresses a node of an evictionOrder. gen must match the node's
// generation; a released slot gets a new generation so old handles fail.
type handle struct {
	slot int
	gen  uint32
}

type orderNode struct {
	key  Key
	prev int
	next int
	gen  uint32
	used bool
}

// evictionOrder is a doubly linked recency list stored in a slice.
// head is the most recently used key, tail the least recently used.
type evictionOrder struct {
	nodes []orderNode
	free  []int
	head  int
	tail  int
	n     int
}

func newEvictionOrder(capacity int) *evictionOrder {
	return &evictionOrder{
		nodes: make([]orderNode, 0, capacity),
		head:  nilSlot,
		tail:  nilSlot,
	}
}

func (o *evictionOrder) len() int {
	return o.n
}

func (o *evictionOrder) pushFront(key Key) handle {
	var slot int
	if last := len(o.free) - 1; last >= 0 {
		slot = o.free[last]
		o.free = o.free[:last]
	} else {
		o.nodes = append(o.nodes, orderNode{})
		slot = len(o.nodes) - 1
	}

	nd := &o.nodes[slot]
	nd.key = key
	nd.used = true
	o.linkFront(slot)
	o.n++
	return handle{slot: slot, gen: nd.gen}
}

func (o *evictionOrder) moveToFront(h handle) {
	o.check(h)
	if o.head == h.slot {
		return
	}
	o.unlink(h.slot)
	o.linkFront(h.slot)
}

func (o *evictionOrder) remove(h handle) Key {
	o.check(h)
	o.unlink(h.slot)

	nd := &o.nodes[h.slot]
	key := nd.key
	nd.key = Key{}
	nd.used = false
	nd.gen++
	o.free = append(o.free, h.slot)
	o.n--
	return key
}

func (o *evictionOrder) popBack() (handle, Key, bool) {
	if o.tail == nilSlot {
		return handle{}, Key{}, false
	}
	h := handle{slot: o.tail, gen: o.nodes[o.tail].gen}
	return h, o.remove(h), true
}

// keys returns the keys from most to least recently used.
func (o *evictionOrder) keys() []Key {
	keys := make([]Key, 0, o.n)
	for s := o.head; s != nilSlot; s = o.nodes[s].next {
		keys = append(keys, o.nodes[s].key)
	}
	return keys
}

func (o *evictionOrder) reset() {
	o.nodes = o.nodes[:0]
	o.free = o.free[:0]
	o.head = nilSlot
	o.tail = nilSlot
	o.n = 0
}

func (o *evictionOrder) check(h handle) {
	if h.slot < 0 || h.slot >= len(o.nodes) {
		panic("rangecache: eviction handle out of range")
	}
	if nd := &o.nodes[h.slot]; !nd.used || nd.gen != h.gen {
		panic("rangecache: stale eviction handle")
	}
}

func (o *evictionOrder) linkFront(slot int) {
	nd := &o.nodes[slot]
	nd.prev = nilSlot
	nd.next = o.head
	if o.head != nilSlot {
		o.nodes[o.head].prev = slot
	} else {
		o.tail = slot
	}
	o.head = slot
}

func (o *evictionOrder) unlink(slot int) {
	nd := &o.nodes[slot]
	if nd.prev != nilSlot {
		o.nodes[nd.prev].next = nd.next
	} else {
		o.head = nd.next
	}
	if nd.next != nilSlot {
		o.nodes[nd.next].prev = nd.prev
	} else {
		o.tail = nd.prev
	}
	nd.prev = nilSlot
	nd.next = nilSlot
}
