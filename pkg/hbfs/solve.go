package hbfs

import (
	"context"
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/gitrdm/hbfssearch/pkg/btd"
	"github.com/gitrdm/hbfssearch/pkg/trail"
	"github.com/gitrdm/hbfssearch/pkg/wcsp"
)

// Engine drives the search over one wcsp.Store. It owns the mutable
// counters spec §9 says should stay off the immutable SearchConfig:
// nbNodes, nbBacktracks, and globalLowerBound live here, not in Config.
type Engine struct {
	Config *SearchConfig

	store      wcsp.Store
	trail      *trail.Store
	unassigned *UnassignedSet
	cpLog      *ChoicePointLog
	openList   *OpenList
	tree       btd.TreeDec // nil when BTDMode == 0

	heuristic VariableHeuristic
	rng       *rand.Rand
	monitor   *Monitor

	nbNodes          int64
	nbBacktracks     int64
	nbBacktracksLast int64 // backtracks at the start of the current HBFS dive
	globalLowerBound Cost
	currentB         int64
	solutionCount    int64
	foundSolution    bool

	lastConflictVar int // -1 when no conflict is pending
	bestValues      []int
	haveBestValue   []bool

	interrupted bool
	ctx         context.Context

	ldsLimited   bool  // set by recursiveSolveLDS when a pass was discrepancy-truncated
	restartLimit int64 // current nbBacktracksLimit, maintained by restartController
}

// NewEngine constructs an Engine over store with the given configuration.
// ts is the backtrackable trail store was built against (its domains are
// trail.Var cells registered on ts): the engine's own backtrackable state
// (the unassigned-variable set) is registered on the same ts, so one
// save/restore pair undoes both store and engine bookkeeping together. n
// is the number of decision variables, used to size the unassigned set
// and best-value cache.
func NewEngine(ctx context.Context, ts *trail.Store, store wcsp.Store, cfg *SearchConfig, n int) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultSearchConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "hbfs: invalid search configuration")
	}

	e := &Engine{
		Config:        cfg,
		store:         store,
		trail:         ts,
		unassigned:    NewUnassignedSet(ts, n),
		cpLog:         NewChoicePointLog(),
		openList:      NewOpenList(),
		rng:           rand.New(rand.NewSource(cfg.RandomSeed)),
		monitor:       NewMonitor(),
		currentB:      cfg.HBFSInit,
		lastConflictVar: -1,
		bestValues:    make([]int, n),
		haveBestValue: make([]bool, n),
		ctx:           ctx,
		restartLimit:  math.MaxInt64,
	}
	e.heuristic = BuildHeuristic(cfg)
	store.SetAssignListener(wcsp.AssignListenerFunc(func(v, val int) {
		e.unassigned.Erase(v)
	}))

	if cfg.BTDMode != 0 {
		tree := btd.NewRefDec(n)
		tree.SetCurrentCluster(tree.Root())
		e.tree = tree
		cluster := tree.Cluster(tree.CurrentCluster())
		e.openList.SetDelta(cluster.Delta())
		if cluster.HBFSLimit() > 0 {
			e.currentB = cluster.HBFSLimit()
		}
	}

	return e, nil
}

// ub returns the store's current upper bound.
func (e *Engine) ub() Cost { return e.store.Ub() }

// checkInterrupted converts the cooperative interrupt flag into ErrTimeOut,
// checked at every choice-point entry guard (spec §5).
func (e *Engine) checkInterrupted() error {
	if e.interrupted {
		return ErrTimeOut
	}
	if e.ctx != nil {
		select {
		case <-e.ctx.Done():
			e.interrupted = true
			return ErrTimeOut
		default:
		}
	}
	return nil
}

// Interrupt sets the cooperative interrupt flag, converted to ErrTimeOut at
// the next choice-point guard.
func (e *Engine) Interrupt() { e.interrupted = true }

// selectVariable materializes the current unassigned set as a candidate
// slice and runs the configured heuristic over it, threading the pending
// last-conflict variable through when the top-level heuristic is a
// *LastConflict decorator.
func (e *Engine) selectVariable() (int, bool) {
	candidates := make([]int, 0, 16)
	e.unassigned.Each(func(v int) { candidates = append(candidates, v) })
	if len(candidates) == 0 {
		return -1, false
	}
	if lc, ok := e.heuristic.(*LastConflict); ok {
		return lc.SelectWithConflict(e.store, candidates, e.Config, e.rng, e.lastConflictVar)
	}
	return e.heuristic.Select(e.store, candidates, e.Config, e.rng)
}

// Result is what BeginSolve returns: whether a solution was found, its cost,
// and search statistics.
type Result struct {
	Found         bool
	Cost          Cost
	Solutions     int64
	Stats         Stats
	Limited       bool // set by LDS when the last pass was discrepancy-truncated
	OptimumProved bool
}

// BeginSolve runs preprocessing, then the restart-wrapped driver loop
// (hybridSolve when Config.HBFS is set, recursiveSolve/recursiveSolveLDS
// otherwise), matching spec §2's control flow:
// solve → preprocessing → restart loop → hybridSolve (or recursiveSolveLDS)
// → branching → propagation → (solution | contradiction | suspend) → driver.
func (e *Engine) BeginSolve() (Result, error) {
	if e.trail == nil {
		return Result{}, errors.New("hbfs: engine not initialized via NewEngine")
	}

	if e.Config.SingletonConsistency {
		if err := e.preprocessing(); err != nil {
			return Result{}, errors.Wrap(err, "hbfs: preprocessing failed")
		}
	}

	res, err := e.solve()
	res.Stats = e.monitor.Finish()
	return res, err
}

// solve is the restart-wrapped top-level driver (§4.7). It is split out of
// BeginSolve so tests can call it directly against a pre-seeded store.
func (e *Engine) solve() (Result, error) {
	rc := newRestartController(e.Config)

	for {
		checkpoint := e.trail.Save()
		cpStart := e.cpLog.Index()

		if e.Config.LDSMax == 0 {
			rc.beginAttempt(e)
		}
		err := e.runOneAttempt(rc)

		if err == nil {
			return Result{
				Found:         e.foundSolution,
				Cost:          e.ub(),
				Solutions:     e.solutionCount,
				Limited:       e.ldsLimited,
				OptimumProved: e.openList.Len() == 0,
			}, nil
		}

		switch {
		case IsNbBacktracksOut(err):
			e.trail.Restore(checkpoint)
			e.cpLog.SetIndex(cpStart)
			e.monitor.RecordRestart()
			continue
		case IsNbSolutionsOut(err):
			return Result{
				Found:     e.foundSolution,
				Cost:      e.ub(),
				Solutions: e.solutionCount,
				Limited:   e.ldsLimited,
			}, nil
		case IsTimeOut(err):
			return Result{
				Found:     e.foundSolution,
				Cost:      e.ub(),
				Solutions: e.solutionCount,
				Limited:   true,
			}, nil
		case IsContradiction(err):
			// The whole search space was exhausted without ever reaching
			// handleSolution: no feasible assignment exists under ub.
			return Result{
				Found:         e.foundSolution,
				Cost:          e.ub(),
				Solutions:     e.solutionCount,
				OptimumProved: true,
			}, nil
		default:
			return Result{}, err
		}
	}
}

// runOneAttempt runs a single restart attempt to completion or until a
// typed signal unwinds it.
func (e *Engine) runOneAttempt(rc *restartController) error {
	if e.Config.LDSMax != 0 {
		return e.runLDS(rc)
	}
	if e.Config.HBFS {
		return e.hybridSolve(MinCost, e.ub())
	}
	return e.recursiveSolve(0)
}
