package main

import "container/heap"

// SearchNode is one entry on the A* frontier: a state paired with its path
// cost so far and the push list that reached it.
type SearchNode struct {
	State *State
	G     int
	Moves []Push

	index int
	seq   int
}

// Priority is g+h, the value the frontier orders on.
func (n *SearchNode) Priority() int {
	return n.G + n.State.Heuristic
}

// searchHeap is a min-heap on (priority, insertion order): lower priority
// wins, and among equal priorities the earlier-inserted node wins, so the
// search explores in a stable, reproducible order.
type searchHeap []*SearchNode

func (h searchHeap) Len() int { return len(h) }

func (h searchHeap) Less(i, j int) bool {
	pi, pj := h[i].Priority(), h[j].Priority()
	if pi != pj {
		return pi < pj
	}
	return h[i].seq < h[j].seq
}

func (h searchHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *searchHeap) Push(x interface{}) {
	n := len(*h)
	node := x.(*SearchNode)
	node.index = n
	*h = append(*h, node)
}

func (h *searchHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// PriorityQueue is the A* frontier: a container/heap wrapper that hands out
// a monotonically increasing sequence number to every pushed node so ties
// break FIFO.
type PriorityQueue struct {
	h       searchHeap
	nextSeq int
}

func NewPriorityQueue() *PriorityQueue {
	pq := &PriorityQueue{}
	heap.Init(&pq.h)
	return pq
}

func (pq *PriorityQueue) Enqueue(state *State, g int, moves []Push) {
	node := &SearchNode{State: state, G: g, Moves: moves, seq: pq.nextSeq}
	pq.nextSeq++
	heap.Push(&pq.h, node)
}

func (pq *PriorityQueue) Len() int {
	return pq.h.Len()
}

// Pop removes and returns the lowest-priority node. Callers must check Len()
// first; Pop on an empty queue panics, matching container/heap's contract.
func (pq *PriorityQueue) Pop() *SearchNode {
	return heap.Pop(&pq.h).(*SearchNode)
}
