package hbfs

import "container/heap"

// OpenNode is a suspended subproblem: its cost (lower bound, plus any
// cluster delta already folded in) and the choice-point log slice
// [FirstIdx, LastIdx) that replays the path from the current HBFS root to
// this node. Invariant: FirstIdx ≤ LastIdx ≤ log.Stop() at all times the
// node is live.
type OpenNode struct {
	Cost     Cost
	FirstIdx int
	LastIdx  int

	seq int // insertion order, breaks cost ties deterministically
}

// openHeap is the container/heap backing store: a slice ordered as a
// binary min-heap keyed on Cost, ties broken by insertion order so pop
// order is deterministic given a fixed insertion sequence.
type openHeap []OpenNode

func (h openHeap) Len() int { return len(h) }
func (h openHeap) Less(i, j int) bool {
	if h[i].Cost != h[j].Cost {
		return h[i].Cost < h[j].Cost
	}
	return h[i].seq < h[j].seq
}
func (h openHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *openHeap) Push(x any) {
	*h = append(*h, x.(OpenNode))
}

func (h *openHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// OpenList is the best-first frontier: a min-heap of OpenNodes keyed on
// cost, with a per-cluster additive delta (BTD cooperation, SPEC_FULL §9)
// and the incrementally maintained aggregate statistics spec §3 names:
// the minimum key over the whole frontier, and the minimum key restricted
// to nodes that have already been closed (their subtree fully explored
// with nothing left open underneath) — tracked here as closedMin, updated
// by the caller via MarkClosed since the open list itself cannot know
// which popped nodes finished clean versus re-suspended.
type OpenList struct {
	h         openHeap
	nextSeq   int
	delta     Cost
	closedMin Cost
	hasClosed bool
}

// NewOpenList returns an empty open list with zero delta.
func NewOpenList() *OpenList {
	return &OpenList{closedMin: MaxCost}
}

// Delta returns the cluster-relative additive offset.
func (o *OpenList) Delta() Cost { return o.delta }

// SetDelta sets the cluster-relative additive offset (BTD cooperation).
func (o *OpenList) SetDelta(d Cost) { o.delta = d }

// Len reports the number of nodes currently in the frontier.
func (o *OpenList) Len() int { return o.h.Len() }

// Push inserts a node, storing cost+delta as the absolute key per
// SPEC_FULL §9's BTD delta bookkeeping (clusters store absolute reachable
// cost even though their local search treats lb/ub as cluster-relative).
func (o *OpenList) Push(cost Cost, firstIdx, lastIdx int) {
	heap.Push(&o.h, OpenNode{
		Cost:     cost.Add(o.delta),
		FirstIdx: firstIdx,
		LastIdx:  lastIdx,
		seq:      o.nextSeq,
	})
	o.nextSeq++
}

// Pop removes and returns the minimum-cost node. ok is false if the list
// is empty.
func (o *OpenList) Pop() (OpenNode, bool) {
	if o.h.Len() == 0 {
		return OpenNode{}, false
	}
	nd := heap.Pop(&o.h).(OpenNode)
	return nd, true
}

// MinKey returns the minimum key over the whole frontier — the global
// lower bound contributed by still-open nodes. Returns MaxCost (feasible
// no longer bounded from below by the frontier) when empty.
func (o *OpenList) MinKey() Cost {
	if o.h.Len() == 0 {
		return MaxCost
	}
	return o.h[0].Cost
}

// MarkClosed records that a node with the given absolute cost finished
// with nothing left open beneath it, so ClosedMin can track the minimum
// key among already-closed children (spec §3's second open-list
// aggregate).
func (o *OpenList) MarkClosed(cost Cost) {
	if cost < o.closedMin {
		o.closedMin = cost
	}
}

// ClosedMin returns the minimum key among closed children seen so far.
func (o *OpenList) ClosedMin() Cost {
	return o.closedMin
}
