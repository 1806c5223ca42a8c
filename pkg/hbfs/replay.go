package hbfs

// replay reconstructs the path from the current HBFS root to a suspended
// open node by re-executing the log slice [first, last) (spec §4.6).
//
// 1. Pre-scan for effective assignments (ASSIGN not-reverse, or REMOVE
//    reverse) and collect them into a batch.
// 2. Batch-assign through the store's multi-assignment path — an
//    optimization that shifts work from O(slice × propagate) toward
//    O(propagate-once).
// 3. Walk the slice again to append equivalent records to the current log
//    (so the new dive under this node is itself loggable) and to apply
//    every non-assignment operation (range-bound narrowing).
// 4. Propagate once at the end.
//
// Invariant: after replay, the store's lb equals the open node's stored
// cost minus delta (modulo ties broken by new information in a shared
// bound) — callers are expected to have already subtracted delta from
// the node's cost before comparing, since OpenList stores absolute keys.
func (e *Engine) replay(first, last int) error {
	vars := make([]int, 0, last-first)
	vals := make([]int, 0, last-first)

	isEffectiveAssign := func(cp ChoicePoint) bool {
		if cp.Op == OpAssign && !cp.Reverse {
			return true
		}
		if cp.Op == OpRemove && cp.Reverse {
			return true
		}
		return false
	}

	for i := first; i < last; i++ {
		cp := e.cpLog.At(i)
		if isEffectiveAssign(cp) {
			vars = append(vars, cp.Var)
			vals = append(vals, cp.Value)
		}
	}

	if len(vars) > 0 {
		if err := e.store.AssignLS(vars, vals); err != nil {
			return err
		}
	}
	e.monitor.AddRecomputationNodes(int64(last - first))

	for i := first; i < last; i++ {
		cp := e.cpLog.At(i)
		e.cpLog.Append(cp)

		if isEffectiveAssign(cp) {
			continue // already applied via the batch AssignLS above
		}

		var err error
		switch cp.Op {
		case OpRemove:
			err = e.store.Remove(cp.Var, cp.Value)
		case OpIncrease:
			err = e.store.Increase(cp.Var, cp.Value)
		case OpDecrease:
			err = e.store.Decrease(cp.Var, cp.Value)
		case OpRangeRemoval:
			err = e.store.Remove(cp.Var, cp.Value)
		case OpAssign:
			err = e.store.Assign(cp.Var, cp.Value)
		}
		if err != nil {
			return err
		}
	}

	return e.store.Propagate()
}
