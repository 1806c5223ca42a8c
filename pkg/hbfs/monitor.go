package hbfs

import (
	"fmt"
	"time"
)

// Stats mirrors the teacher's SolverStats shape (fd_monitor.go) but drops
// the atomic counters: the core is single-threaded (spec §5), so plain
// fields are both correct and cheaper than atomic.Int64 loads/stores on
// every node.
type Stats struct {
	NodesExplored  int64
	Backtracks     int64
	SolutionsFound int64
	SearchTime     time.Duration
	MaxDepth       int64

	// HBFS-specific, not present in the teacher's FD monitor.
	RecomputationNodes int64 // nodes spent re-deriving state during replay
	OpenListSize       int64 // current frontier size
	PeakOpenListSize   int64
	CurrentB           int64 // current HBFS backtrack budget
	Restarts           int64
}

// Monitor accumulates Stats over a solve. A nil *Monitor is valid and every
// method is a no-op on it, matching the teacher's nil-safe monitor
// convention in fd_monitor.go (there to support an always-construct-but-
// maybe-discard calling style).
type Monitor struct {
	stats     Stats
	startTime time.Time
}

// NewMonitor creates a monitor with its clock started.
func NewMonitor() *Monitor {
	return &Monitor{startTime: time.Now()}
}

func (m *Monitor) RecordNode() {
	if m == nil {
		return
	}
	m.stats.NodesExplored++
}

func (m *Monitor) RecordBacktrack() {
	if m == nil {
		return
	}
	m.stats.Backtracks++
}

func (m *Monitor) RecordSolution() {
	if m == nil {
		return
	}
	m.stats.SolutionsFound++
}

func (m *Monitor) RecordDepth(d int64) {
	if m == nil {
		return
	}
	if d > m.stats.MaxDepth {
		m.stats.MaxDepth = d
	}
}

// AddRecomputationNodes adds n to the recomputation-node count. replay
// passes the length of the replayed choice-point-log slice, since
// recomputation cost scales with how much of the path is re-executed, not
// with the number of replay calls (spec §4.3 step 8's ρ =
// recomputationNodes/nodes).
func (m *Monitor) AddRecomputationNodes(n int64) {
	if m == nil {
		return
	}
	m.stats.RecomputationNodes += n
}

func (m *Monitor) RecordOpenListSize(n int64) {
	if m == nil {
		return
	}
	m.stats.OpenListSize = n
	if n > m.stats.PeakOpenListSize {
		m.stats.PeakOpenListSize = n
	}
}

func (m *Monitor) RecordB(b int64) {
	if m == nil {
		return
	}
	m.stats.CurrentB = b
}

func (m *Monitor) RecordRestart() {
	if m == nil {
		return
	}
	m.stats.Restarts++
}

// NodesExplored returns the running node count without stopping the clock,
// used by hybridSolve's per-dive ρ calculation.
func (m *Monitor) NodesExplored() int64 {
	if m == nil {
		return 0
	}
	return m.stats.NodesExplored
}

// RecomputationNodes returns the running recomputation-node count.
func (m *Monitor) RecomputationNodes() int64 {
	if m == nil {
		return 0
	}
	return m.stats.RecomputationNodes
}

// Finish stops the clock and returns a snapshot of the accumulated stats.
func (m *Monitor) Finish() Stats {
	if m == nil {
		return Stats{}
	}
	m.stats.SearchTime = time.Since(m.startTime)
	return m.stats
}

// String formats a one-line summary, matching the register of the
// teacher's SolverStats.String() in fd_monitor.go.
func (s Stats) String() string {
	return fmt.Sprintf(
		"nodes=%d backtracks=%d solutions=%d restarts=%d maxDepth=%d recomputation=%d time=%s",
		s.NodesExplored, s.Backtracks, s.SolutionsFound, s.Restarts, s.MaxDepth,
		s.RecomputationNodes, s.SearchTime,
	)
}
