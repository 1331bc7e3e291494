package knapsack

// nodeQueue is a value-based ring-buffer deque of search nodes. Branch and
// bound pushes at the back and pops either the front (FIFO) or the back
// (LIFO) depending on the active traversal.
type nodeQueue struct {
	buf  []searchNode
	head int
	size int
}

func newNodeQueue(capacity int) *nodeQueue {
	if capacity < 4 {
		capacity = 4
	}

	return &nodeQueue{buf: make([]searchNode, capacity)}
}

func (q *nodeQueue) Len() int { return q.size }

// PushBack appends n, doubling the buffer when full.
func (q *nodeQueue) PushBack(n searchNode) {
	if q.size == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.size)%len(q.buf)] = n
	q.size++
}

// PopFront removes the oldest node. ok is false on an empty queue.
func (q *nodeQueue) PopFront() (n searchNode, ok bool) {
	if q.size == 0 {
		return searchNode{}, false
	}
	n = q.buf[q.head]
	q.buf[q.head] = searchNode{} // release the bitset for GC
	q.head = (q.head + 1) % len(q.buf)
	q.size--

	return n, true
}

// PopBack removes the newest node. ok is false on an empty queue.
func (q *nodeQueue) PopBack() (n searchNode, ok bool) {
	if q.size == 0 {
		return searchNode{}, false
	}
	i := (q.head + q.size - 1) % len(q.buf)
	n = q.buf[i]
	q.buf[i] = searchNode{}
	q.size--

	return n, true
}

func (q *nodeQueue) grow() {
	next := make([]searchNode, 2*len(q.buf))
	var i int
	for i = 0; i < q.size; i++ {
		next[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = next
	q.head = 0
}
