package hbfs

import "math"

// hybridSolve is the outer HBFS loop (spec §4.3): pop the cheapest
// suspended node, replay its path, dive with a local backtrack budget B,
// then adapt B from the ratio of recomputation work to real work.
func (e *Engine) hybridSolve(clb, cub Cost) error {
	// pureDFS runs the rest of this call as plain DFS: B is lifted to
	// infinity so no branch suspends into an open list nobody pops.
	pureDFS := func() error {
		saved := e.currentB
		e.currentB = math.MaxInt64
		defer func() { e.currentB = saved }()
		return e.recursiveSolve(0)
	}

	if e.cpLog.Stop() > e.Config.HBFSCPLimit || e.openList.Len() > e.Config.HBFSOpenNodeLimit {
		return pureDFS()
	}

	root := e.cpLog.Index()
	e.openList.Push(clb, root, root)

	for clb < cub && e.openList.Len() > 0 {
		if err := e.checkInterrupted(); err != nil {
			return err
		}

		if e.cpLog.Stop() > e.Config.HBFSCPLimit || e.openList.Len() > e.Config.HBFSOpenNodeLimit {
			return pureDFS()
		}

		nd, ok := e.openList.Pop()
		if !ok {
			break
		}

		checkpoint := e.trail.Save()
		cpStart := e.cpLog.Index()

		if err := e.replay(nd.FirstIdx, nd.LastIdx); err != nil {
			if !IsContradiction(err) {
				return err
			}
			e.trail.Restore(checkpoint)
			e.cpLog.SetIndex(cpStart)
			continue
		}

		nodesBefore := e.monitor.NodesExplored()
		recompBefore := e.monitor.RecomputationNodes()
		e.nbBacktracksLast = e.nbBacktracks

		err := e.recursiveSolve(0)
		if err != nil && !IsContradiction(err) {
			return err
		}

		e.trail.Restore(checkpoint)
		e.cpLog.SetIndex(cpStart)

		clb = maxCost(clb, e.openList.MinKey())
		cub = e.ub()
		e.globalLowerBound = clb

		e.adaptBudget(nodesBefore, recompBefore)
		logProgress(e.Config.logger(), e.Config.RunID, e, "hbfs-dive")
	}

	e.globalLowerBound = clb
	e.syncCluster(clb)
	return nil
}

// syncCluster pushes the just-finished call's bounds into the current BTD
// cluster (spec §4.3's "cluster upper bounds participate in the outer
// bounds update"). A no-op when BTD cooperation is off.
func (e *Engine) syncCluster(clb Cost) {
	if e.tree == nil {
		return
	}
	cluster := e.tree.Cluster(e.tree.CurrentCluster())
	if cluster == nil {
		return
	}
	cluster.SetLb(clb)
	cluster.SetUb(e.ub())
}

// adaptBudget implements spec §4.3 step 8: ρ = recomputationNodes/nodes
// over the dive just finished; ρ > 1/β doubles B (too much redundant
// recomputation), ρ < 1/α halves B floor 1 (too little — the budget is
// bigger than it needs to be), otherwise B is left alone.
func (e *Engine) adaptBudget(nodesBefore, recompBefore int64) {
	nodes := e.monitor.NodesExplored() - nodesBefore
	if nodes <= 0 {
		return
	}
	recomp := e.monitor.RecomputationNodes() - recompBefore
	rho := float64(recomp) / float64(nodes)

	switch {
	case rho > 1.0/float64(e.Config.HBFSBeta):
		e.currentB *= 2
	case rho < 1.0/float64(e.Config.HBFSAlpha):
		e.currentB /= 2
		if e.currentB < 1 {
			e.currentB = 1
		}
	}
	if e.Config.HBFSGlobalLimit > 0 && e.currentB > e.Config.HBFSGlobalLimit {
		e.currentB = e.Config.HBFSGlobalLimit
	}
	e.monitor.RecordB(e.currentB)
}

func maxCost(a, b Cost) Cost {
	if a > b {
		return a
	}
	return b
}
