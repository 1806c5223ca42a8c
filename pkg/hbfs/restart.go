package hbfs

import "math"

// luby returns the i-th term of the Luby restart sequence
// (1,1,2,1,1,2,4,1,...), i ≥ 1.
func luby(i int64) int64 {
	k := int64(1)
	for {
		pk := int64(1) << uint(k)
		pk1 := int64(1) << uint(k-1)
		if i == pk-1 {
			return pk1
		}
		if pk1 <= i && i < pk-1 {
			return luby(i - pk1 + 1)
		}
		k++
	}
}

// restartController implements spec §4.7's restart loop, following
// tb2solver.cpp's two-tier limit (SPEC_FULL §9): nbBacktracksLimit starts
// at 1, every later attempt gets nbBacktracks + 100·luby(k),
// nbBacktracksLimitTop records the largest Luby term used so far, and once
// the cumulative node count passes the user's restart threshold the limit
// is dropped to infinity for good.
type restartController struct {
	cfg      *SearchConfig
	nbrestart int64
	limitTop  int64
	disabled  bool
}

func newRestartController(cfg *SearchConfig) *restartController {
	return &restartController{cfg: cfg, limitTop: 1}
}

// beginAttempt sets e.restartLimit for the upcoming attempt. Called once
// before every attempt, including the first (which gets nbBacktracksLimit
// = 1, per spec §4.7).
func (rc *restartController) beginAttempt(e *Engine) {
	if rc.cfg.RestartNodeThreshold <= 0 {
		e.restartLimit = math.MaxInt64
		return
	}
	if rc.disabled {
		e.restartLimit = math.MaxInt64
		return
	}
	if rc.nbrestart == 0 {
		rc.nbrestart = 1
		e.restartLimit = 1
		return
	}
	rc.nbrestart++
	cur := luby(rc.nbrestart)
	if cur > rc.limitTop {
		rc.limitTop = cur
	}
	if e.nbNodes >= rc.cfg.RestartNodeThreshold {
		rc.disabled = true
		e.restartLimit = math.MaxInt64
		return
	}
	e.restartLimit = e.nbBacktracks + cur*100
}

// runLDS drives recursiveSolveLDS with an escalating discrepancy budget
// (spec §4.7): after the first truncated pass the budget goes up by one,
// after each further truncated pass it doubles (0, 1, 2, 4, ...), until
// discrepancy exceeds |LDSMax| or a pass completes without being
// truncated. The sign of LDSMax is not consulted: once |LDSMax| is
// exceeded runLDS returns without a complete, unbounded pass.
func (e *Engine) runLDS(rc *restartController) error {
	d := 0
	max := e.Config.LDSMax
	if max < 0 {
		max = -max
	}
	lastLimited := false
	for {
		rc.beginAttempt(e)
		e.ldsLimited = false

		checkpoint := e.trail.Save()
		cpStart := e.cpLog.Index()

		err := e.recursiveSolveLDS(0, d)
		if err != nil {
			return err
		}
		if !e.ldsLimited {
			return nil
		}

		e.trail.Restore(checkpoint)
		e.cpLog.SetIndex(cpStart)

		if lastLimited {
			if d == 0 {
				d = 1
			} else {
				d *= 2
			}
		} else {
			d++
		}
		lastLimited = e.ldsLimited
		if d > max {
			return nil
		}
	}
}
