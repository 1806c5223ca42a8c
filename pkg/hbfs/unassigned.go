package hbfs

import "github.com/gitrdm/hbfssearch/pkg/trail"

// unassignedLink is one variable's position in the DAC-ordered doubly
// linked list. prev/next are trailed so erase/restore is backed by the
// same checkpoint discipline as everything else — restoring the store to
// an earlier depth automatically reinserts the link exactly where it was.
type unassignedLink struct {
	prev, next *trail.Var[int] // variable index, or -1 for list ends
	present    *trail.Var[bool]
}

// UnassignedSet is the backtrackable doubly-linked list over variable
// indices described in spec §3 / §4.4: allocated once at init in DAC
// order, with O(1) erase driven by the constraint store's assignment
// callback and O(1) restore via store backtracking.
type UnassignedSet struct {
	links []unassignedLink
	head  *trail.Var[int]
	tail  *trail.Var[int]
	store *trail.Store
}

// NewUnassignedSet allocates a list over the DAC order [0, n), all present,
// backed by store.
func NewUnassignedSet(store *trail.Store, n int) *UnassignedSet {
	u := &UnassignedSet{
		links: make([]unassignedLink, n),
		store: store,
	}
	for i := 0; i < n; i++ {
		prevIdx := i - 1
		nextIdx := i + 1
		if nextIdx >= n {
			nextIdx = -1
		}
		u.links[i] = unassignedLink{
			prev:    trail.NewVar(store, prevIdx),
			next:    trail.NewVar(store, nextIdx),
			present: trail.NewVar(store, true),
		}
	}
	head := 0
	if n == 0 {
		head = -1
	}
	u.head = trail.NewVar(store, head)
	u.tail = trail.NewVar(store, n-1)
	return u
}

// Erase removes v from the list. Safe to call on an already-absent v
// (no-op), since propagation may assign the same variable more than once
// along a path that never backtracked in between.
func (u *UnassignedSet) Erase(v int) {
	if !u.links[v].present.Get() {
		return
	}
	u.links[v].present.Set(false)

	prev := u.links[v].prev.Get()
	next := u.links[v].next.Get()

	if prev >= 0 {
		u.links[prev].next.Set(next)
	} else {
		u.head.Set(next)
	}
	if next >= 0 {
		u.links[next].prev.Set(prev)
	} else {
		u.tail.Set(prev)
	}
}

// Head returns the first unassigned variable in DAC order, or -1 if the
// set is empty.
func (u *UnassignedSet) Head() int {
	return u.head.Get()
}

// Next returns the next unassigned variable after v, or -1.
func (u *UnassignedSet) Next(v int) int {
	return u.links[v].next.Get()
}

// Empty reports whether no variables remain unassigned.
func (u *UnassignedSet) Empty() bool {
	return u.head.Get() == -1
}

// Contains reports whether v is currently in the unassigned set.
func (u *UnassignedSet) Contains(v int) bool {
	return u.links[v].present.Get()
}

// Each calls f for every unassigned variable, in DAC order.
func (u *UnassignedSet) Each(f func(v int)) {
	for v := u.Head(); v >= 0; v = u.Next(v) {
		f(v)
	}
}

// Len counts the unassigned variables by walking the list. Search code
// that needs this on a hot path should instead track its own counter;
// this is provided for tests and diagnostics.
func (u *UnassignedSet) Len() int {
	n := 0
	u.Each(func(int) { n++ })
	return n
}
