package hbfs

import (
	"sort"

	"github.com/gitrdm/hbfssearch/pkg/wcsp"
)

// branch dispatches to the configured choice-point kind for variable v
// (spec §4.2). binaryChoicePoint is the default; dichotomic and SCP
// variants are opt-in via SearchConfig, and BinaryBranching = false selects
// the n-ary sorted choice point.
func (e *Engine) branch(v int, depth int64) error {
	switch {
	case e.Config.SCPOracle != nil:
		return e.scpChoicePoint(v, depth)
	case e.Config.DichotomicBranching > 0:
		return e.dichotomicChoicePoint(v, depth)
	case !e.Config.BinaryBranching:
		return e.naryChoicePoint(v, depth)
	default:
		return e.binaryChoicePoint(v, depth)
	}
}

// chooseValue picks the value to try first for v: the recorded best value
// from an earlier solution if it is still in-domain (spec §4.5's "persist
// per-variable best values, for value-ordering reuse in later branches"),
// otherwise the domain's current infimum.
func (e *Engine) chooseValue(v int) (int, bool) {
	if v < len(e.haveBestValue) && e.haveBestValue[v] {
		bv := e.bestValues[v]
		if e.store.Canbe(v, bv) {
			return bv, true
		}
	}
	dom := e.store.EnumDomain(v)
	if len(dom) == 0 {
		return 0, false
	}
	return dom[0], true
}

// localBacktracksExceeded reports whether the current dive has used up its
// local backtrack budget B. Only meaningful under HBFS; DFS alone never
// suspends.
func (e *Engine) localBacktracksExceeded() bool {
	if !e.Config.HBFS {
		return false
	}
	return e.nbBacktracks-e.nbBacktracksLast >= e.currentB
}

func (e *Engine) tryAssign(v, val int) error {
	if err := e.store.Assign(v, val); err != nil {
		return err
	}
	return e.store.Propagate()
}

func (e *Engine) tryRemove(v, val int) error {
	if err := e.store.Remove(v, val); err != nil {
		return err
	}
	return e.store.Propagate()
}

// suspend emits an open node for the path [cpStart, e.cpLog.Index()).
// Callers append the log entry of the postponed branch, marked Reverse,
// before calling it (spec §4.2's choice-point logging rule and §4.3's
// "driver... calls addOpenNode").
func (e *Engine) suspend(cpStart int) {
	e.openList.Push(e.store.Lb(), cpStart, e.cpLog.Index())
	e.monitor.RecordOpenListSize(int64(e.openList.Len()))
}

// afterFailedBranch restores to checkpoint, enforces ub, and counts the
// backtrack — spec §4.2 step 3-4. Choice points call it after each branch
// that another branch follows, whether that branch failed or succeeded.
func (e *Engine) afterFailedBranch(checkpoint, cpStart int) error {
	e.trail.Restore(checkpoint)
	e.cpLog.SetIndex(cpStart)
	if err := e.store.EnforceUb(); err != nil {
		return err
	}
	e.nbBacktracks++
	e.monitor.RecordBacktrack()
	return nil
}

// binaryChoicePoint implements spec §4.2's binary choice point: assign
// left, remove right, suspending on the right branch if the backtrack
// budget is exhausted first.
func (e *Engine) binaryChoicePoint(v int, depth int64) error {
	val, ok := e.chooseValue(v)
	if !ok {
		return ErrContradiction
	}

	checkpoint := e.trail.Save()
	cpStart := e.cpLog.Index()

	e.cpLog.Append(ChoicePoint{Op: OpAssign, Var: v, Value: val})
	err := e.tryAssign(v, val)
	if err == nil {
		err = e.recursiveSolve(depth + 1)
	}
	if err != nil && !IsContradiction(err) {
		return err
	}
	leftOK := err == nil
	if !leftOK {
		e.lastConflictVar = v
	}

	if rerr := e.afterFailedBranch(checkpoint, cpStart); rerr != nil {
		return rerr
	}

	if e.localBacktracksExceeded() {
		e.cpLog.Append(ChoicePoint{Op: OpRemove, Var: v, Value: val, Reverse: true})
		e.suspend(cpStart)
		return nil
	}

	e.cpLog.Append(ChoicePoint{Op: OpRemove, Var: v, Value: val})
	err = e.tryRemove(v, val)
	if err == nil {
		err = e.recursiveSolve(depth + 1)
	}
	if err != nil && !IsContradiction(err) {
		return err
	}
	rightOK := err == nil

	e.trail.Restore(checkpoint)
	e.cpLog.SetIndex(cpStart)

	if !leftOK && !rightOK {
		e.lastConflictVar = v
		return ErrContradiction
	}
	return nil
}

type boundBranch struct {
	op    ChoicePointOp
	bound int
}

func (e *Engine) applyBound(v int, b boundBranch) error {
	var err error
	switch b.op {
	case OpDecrease:
		err = e.store.Decrease(v, b.bound)
	case OpIncrease:
		err = e.store.Increase(v, b.bound)
	}
	if err != nil {
		return err
	}
	return e.store.Propagate()
}

// dichotomicChoicePoint splits the domain by midpoint (mode 1) instead of
// by a single value: decrease(v, mid) and increase(v, mid+1), ordered by
// whether the heuristic's chosen value falls at or below the midpoint.
// Mode 2 (sort-by-unary-cost) reorders which half is tried first by
// comparing the aggregate unary cost of each half, approximating the
// source's cost-sorted two-phase removal without materializing a full
// per-value cost sort on every call.
func (e *Engine) dichotomicChoicePoint(v int, depth int64) error {
	val, ok := e.chooseValue(v)
	if !ok {
		return ErrContradiction
	}
	lo, hi := e.store.Inf(v), e.store.Sup(v)
	mid := (lo + hi) / 2

	first := boundBranch{OpDecrease, mid}
	second := boundBranch{OpIncrease, mid + 1}
	if val > mid {
		first, second = second, first
	}
	if e.Config.DichotomicBranching == 2 && costOfLowerHalf(e.store, v, mid) > costOfUpperHalf(e.store, v, mid) {
		first, second = second, first
	}

	checkpoint := e.trail.Save()
	cpStart := e.cpLog.Index()

	e.cpLog.Append(ChoicePoint{Op: first.op, Var: v, Value: first.bound})
	err := e.applyBound(v, first)
	if err == nil {
		err = e.recursiveSolve(depth + 1)
	}
	if err != nil && !IsContradiction(err) {
		return err
	}
	firstOK := err == nil

	if rerr := e.afterFailedBranch(checkpoint, cpStart); rerr != nil {
		return rerr
	}

	if e.localBacktracksExceeded() {
		e.cpLog.Append(ChoicePoint{Op: second.op, Var: v, Value: second.bound, Reverse: true})
		e.suspend(cpStart)
		return nil
	}

	e.cpLog.Append(ChoicePoint{Op: second.op, Var: v, Value: second.bound})
	err = e.applyBound(v, second)
	if err == nil {
		err = e.recursiveSolve(depth + 1)
	}
	if err != nil && !IsContradiction(err) {
		return err
	}
	secondOK := err == nil

	e.trail.Restore(checkpoint)
	e.cpLog.SetIndex(cpStart)

	if !firstOK && !secondOK {
		return ErrContradiction
	}
	return nil
}

// halfCosts sums unary costs on either side of mid, used by dichotomic
// mode 2 to decide which half to try first.
func halfCosts(store costQuerier, v, mid int) (lower, upper Cost) {
	for _, vc := range store.EnumDomainAndCost(v) {
		if vc.Value <= mid {
			lower = lower.Add(vc.Cost)
		} else {
			upper = upper.Add(vc.Cost)
		}
	}
	return lower, upper
}

func costOfLowerHalf(store costQuerier, v, mid int) Cost {
	lower, _ := halfCosts(store, v, mid)
	return lower
}

// scpChoicePoint splits the ordered domain into three regions around val:
// a left branch (if val has room to its left), the single-value
// assign/remove middle, and a right branch (if val has room to its
// right) — spec §4.2. FindNewSequence escapes all three pending frames
// when the caller (through the solution reporter) requests the next
// distinct enumeration.
func (e *Engine) scpChoicePoint(v int, depth int64) error {
	val, ok := e.chooseValue(v)
	if !ok {
		return ErrContradiction
	}
	lo, hi := e.store.Inf(v), e.store.Sup(v)
	hasLeft := val > lo
	hasRight := val < hi

	anyOK := false

	tryBranch := func(op ChoicePointOp, bound int) (bool, error) {
		checkpoint := e.trail.Save()
		cpStart := e.cpLog.Index()
		e.cpLog.Append(ChoicePoint{Op: op, Var: v, Value: bound})

		var err error
		switch op {
		case OpIncrease:
			err = e.store.Increase(v, bound)
		case OpDecrease:
			err = e.store.Decrease(v, bound)
		case OpAssign:
			err = e.store.Assign(v, bound)
		case OpRemove:
			err = e.store.Remove(v, bound)
		}
		if err == nil {
			err = e.store.Propagate()
		}
		if err == nil {
			err = e.recursiveSolve(depth + 1)
		}
		if IsFindNewSequence(err) {
			_ = e.afterFailedBranch(checkpoint, cpStart)
			return false, err
		}
		if err != nil && !IsContradiction(err) {
			return false, err
		}
		ok := err == nil
		if rerr := e.afterFailedBranch(checkpoint, cpStart); rerr != nil {
			return false, rerr
		}
		return ok, nil
	}

	if hasLeft {
		ok, err := tryBranch(OpIncrease, val)
		if err != nil {
			if IsFindNewSequence(err) {
				return nil
			}
			return err
		}
		anyOK = anyOK || ok
	}

	if e.localBacktracksExceeded() {
		checkpoint := e.trail.Save()
		cpStart := e.cpLog.Index()
		e.cpLog.Append(ChoicePoint{Op: OpRemove, Var: v, Value: val, Reverse: true})
		e.suspend(cpStart)
		e.trail.Restore(checkpoint)
		return nil
	}

	ok, err := tryBranch(OpAssign, val)
	if err != nil {
		if IsFindNewSequence(err) {
			return nil
		}
		return err
	}
	anyOK = anyOK || ok

	if hasRight {
		ok, err := tryBranch(OpDecrease, val)
		if err != nil {
			if IsFindNewSequence(err) {
				return nil
			}
			return err
		}
		anyOK = anyOK || ok
	}

	if !anyOK {
		return ErrContradiction
	}
	return nil
}

func costOfUpperHalf(store costQuerier, v, mid int) Cost {
	_, upper := halfCosts(store, v, mid)
	return upper
}

// costQuerier is the slice of wcsp.Store that dichotomic mode-2 ordering
// needs; kept minimal so this file does not need to import wcsp just for
// a type name already satisfied structurally by wcsp.Store.
type costQuerier interface {
	EnumDomainAndCost(v int) []wcsp.ValueCost
}

// naryChoicePoint sorts the domain by unary cost ascending and tries each
// value in turn, terminating early once the domain is exhausted or
// lb ≥ ub (spec §4.2).
func (e *Engine) naryChoicePoint(v int, depth int64) error {
	dc := e.store.EnumDomainAndCost(v)
	sort.Slice(dc, func(i, j int) bool { return dc[i].Cost < dc[j].Cost })

	anyOK := false
	for _, vc := range dc {
		if e.store.Lb() >= e.store.Ub() {
			break
		}
		checkpoint := e.trail.Save()
		cpStart := e.cpLog.Index()
		e.cpLog.Append(ChoicePoint{Op: OpAssign, Var: v, Value: vc.Value})

		err := e.tryAssign(v, vc.Value)
		if err == nil {
			err = e.recursiveSolve(depth + 1)
		}
		if err != nil && !IsContradiction(err) {
			return err
		}
		if err == nil {
			anyOK = true
		}
		if rerr := e.afterFailedBranch(checkpoint, cpStart); rerr != nil {
			return rerr
		}
	}
	if !anyOK {
		return ErrContradiction
	}
	return nil
}
