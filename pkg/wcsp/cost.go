package wcsp

import "math"

// Cost is the unit of both unary and global bound arithmetic. It is kept a
// single concrete integer type, per the source's numeric-types note: no
// floating point, no implicit overflow, one saturating sentinel for
// infeasibility. It lives in pkg/wcsp (the package that owns cost-function
// semantics) rather than pkg/hbfs so that both the store interface and the
// engine that consumes it can share one type without an import cycle;
// pkg/hbfs re-exports it as hbfs.Cost.
type Cost int64

const (
	// MinCost is the zero cost.
	MinCost Cost = 0
	// MaxCost is the infeasibility sentinel. It leaves room to add two
	// MaxCosts together without wrapping around int64, so callers never
	// need to special-case overflow themselves.
	MaxCost Cost = math.MaxInt64 / 2
)

// Add returns a + b, saturating at MaxCost instead of overflowing.
func (a Cost) Add(b Cost) Cost {
	if a >= MaxCost-b {
		return MaxCost
	}
	return a + b
}

// Sub returns a - b, floored at MinCost.
func (a Cost) Sub(b Cost) Cost {
	if b >= a {
		return MinCost
	}
	return a - b
}

// Feasible reports whether a cost is below the infeasibility sentinel.
func (a Cost) Feasible() bool {
	return a < MaxCost
}
