package hbfs

import "sort"

// preprocessing implements spec §4.8's singleton-consistency sweep: for
// every still-unassigned variable, try each domain value in unary-cost
// order; a value that drives propagation to contradiction is dead and
// removed once the sweep over that variable finishes. The outer sweep
// repeats until a full pass removes nothing (fixpoint).
func (e *Engine) preprocessing() error {
	for {
		changed := false

		n := e.store.NumberOfVariables()
		for v := 0; v < n; v++ {
			if e.store.Assigned(v) {
				continue
			}

			dc := e.store.EnumDomainAndCost(v)
			sort.Slice(dc, func(i, j int) bool { return dc[i].Cost < dc[j].Cost })

			dead := make([]int, 0, len(dc))
			for _, vc := range dc {
				if !e.store.Canbe(v, vc.Value) {
					continue
				}

				checkpoint := e.trail.Save()
				cpStart := e.cpLog.Index()

				err := e.store.Assign(v, vc.Value)
				if err == nil {
					err = e.store.Propagate()
				}

				e.trail.Restore(checkpoint)
				e.cpLog.SetIndex(cpStart)

				if err != nil {
					if !IsContradiction(err) {
						return err
					}
					dead = append(dead, vc.Value)
				}
			}

			for _, val := range dead {
				if !e.store.Canbe(v, val) {
					continue
				}
				if err := e.store.Remove(v, val); err != nil {
					if !IsContradiction(err) {
						return err
					}
				}
				changed = true
			}
		}

		if changed {
			if err := e.store.Propagate(); err != nil {
				return err
			}
		} else {
			return nil
		}
	}
}
