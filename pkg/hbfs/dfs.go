package hbfs

// recursiveSolve is the depth-first driver (spec §2, §4.5): selects a
// variable, branches, handles contradictions via the error return, and
// reports solutions. It is genuine Go recursion — the source's
// recursiveSolve is itself recursive, unlike search.go's explicit-stack
// DFS this package's other pieces were otherwise grounded on.
func (e *Engine) recursiveSolve(depth int64) error {
	if err := e.checkInterrupted(); err != nil {
		return err
	}
	if e.Config.RestartNodeThreshold > 0 && e.nbBacktracks > e.restartLimit {
		return ErrNbBacktracksOut
	}

	if e.unassigned.Empty() {
		return e.handleSolution()
	}

	e.monitor.RecordNode()
	e.nbNodes++
	e.monitor.RecordDepth(depth)

	v, ok := e.selectVariable()
	if !ok {
		return e.handleSolution()
	}

	return e.branch(v, depth)
}

// recursiveSolveLDS is recursiveSolve's LDS-bounded twin (spec §4.2's LDS
// variants, §9's dead feature-vector branch explicitly not reproduced per
// SPEC_FULL §10.3). The conventional (assign) branch costs 0 discrepancies;
// the against-heuristic (remove) branch costs 1 and is only taken while
// d > 0. Exhausting d before the unassigned set is empty sets e.ldsLimited,
// the flag the restart controller reads to decide whether to escalate.
func (e *Engine) recursiveSolveLDS(depth int64, d int) error {
	if err := e.checkInterrupted(); err != nil {
		return err
	}
	if e.Config.RestartNodeThreshold > 0 && e.nbBacktracks > e.restartLimit {
		return ErrNbBacktracksOut
	}

	if e.unassigned.Empty() {
		return e.handleSolution()
	}

	e.monitor.RecordNode()
	e.nbNodes++
	e.monitor.RecordDepth(depth)

	v, ok := e.selectVariable()
	if !ok {
		return e.handleSolution()
	}
	val, ok := e.chooseValue(v)
	if !ok {
		return ErrContradiction
	}

	checkpoint := e.trail.Save()
	cpStart := e.cpLog.Index()

	e.cpLog.Append(ChoicePoint{Op: OpAssign, Var: v, Value: val})
	err := e.tryAssign(v, val)
	if err == nil {
		err = e.recursiveSolveLDS(depth+1, d)
	}
	if err != nil && !IsContradiction(err) {
		return err
	}
	conventionalOK := err == nil

	if rerr := e.afterFailedBranch(checkpoint, cpStart); rerr != nil {
		return rerr
	}

	if d == 0 {
		e.ldsLimited = true
		return nil
	}

	e.cpLog.Append(ChoicePoint{Op: OpRemove, Var: v, Value: val})
	err = e.tryRemove(v, val)
	if err == nil {
		err = e.recursiveSolveLDS(depth+1, d-1)
	}
	if err != nil && !IsContradiction(err) {
		return err
	}
	againstOK := err == nil

	e.trail.Restore(checkpoint)
	e.cpLog.SetIndex(cpStart)

	if !conventionalOK && !againstOK {
		return ErrContradiction
	}
	return nil
}

// handleSolution implements spec §4.5: tighten ub (or count the
// enumeration), persist best values, and decide whether to unwind via a
// typed signal.
func (e *Engine) handleSolution() error {
	lb := e.store.Lb()
	if e.Config.AllSolutions == 0 {
		e.store.SetUb(lb)
	} else {
		e.solutionCount++
	}
	e.foundSolution = true
	e.recordBestValues()
	e.monitor.RecordSolution()

	if e.Config.RestartNodeThreshold > 0 && e.Config.LDSMax == 0 {
		return ErrNbBacktracksOut
	}
	if e.Config.AllSolutions > 0 && e.solutionCount >= e.Config.AllSolutions {
		return ErrNbSolutionsOut
	}
	return nil
}

// recordBestValues snapshots the current assignment so later branches can
// prefer each variable's most recently seen solution value (spec §4.5).
func (e *Engine) recordBestValues() {
	n := e.store.NumberOfVariables()
	for v := 0; v < n; v++ {
		if !e.store.Assigned(v) {
			continue
		}
		e.bestValues[v] = e.store.Inf(v)
		e.haveBestValue[v] = true
	}
}
