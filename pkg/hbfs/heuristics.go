package hbfs

import (
	"math/rand"
	"sort"

	"github.com/gitrdm/hbfssearch/pkg/wcsp"
)

// VariableHeuristic selects the next variable to branch on from a slice of
// candidate variable indices (the current unassigned set, or an
// SCP-filtered subset of it). Implementations follow the teacher's
// labeling.go decorator shape (FirstFailLabeling, CompositeLabeling, ...):
// each is a small struct with one Select method, so heuristics compose by
// wrapping rather than by a single god-function with mode flags.
type VariableHeuristic interface {
	Select(store wcsp.Store, candidates []int, cfg *SearchConfig, rng *rand.Rand) (varIndex int, ok bool)
	Name() string
}

// BuildHeuristic assembles the configured heuristic stack: the scoring
// family named by cfg, optionally wrapped in SCPHeuristic and then
// LastConflict, matching the teacher's CompositeLabeling-over-
// FirstFailLabeling composition.
func BuildHeuristic(cfg *SearchConfig) VariableHeuristic {
	var base VariableHeuristic
	switch {
	case cfg.StaticVariableOrdering:
		base = StaticOrder{}
	case cfg.WeightedDegree:
		base = MinDomainMaxWeightedDegree{}
	default:
		base = MinDomainMaxDegree{}
	}
	if cfg.SCPOracle != nil {
		base = &SCPHeuristic{Inner: base}
	}
	if cfg.LastConflict {
		return &LastConflict{Inner: base}
	}
	return base
}

// tieBreak returns the index of the best-scoring candidate in vars/scores,
// preferring the larger MaxUnaryCost among near-ties within relative
// tolerance epsilon (spec §4.1's tie-break rule).
func tieBreak(store wcsp.Store, vars []int, scores []float64, epsilon float64) int {
	best := 0
	for i := 1; i < len(vars); i++ {
		if scores[i] < scores[best]-epsilon*scores[best] {
			best = i
			continue
		}
		if scores[i] <= scores[best]+epsilon*scores[best] {
			if store.MaxUnaryCost(vars[i]) > store.MaxUnaryCost(vars[best]) {
				best = i
			}
		}
	}
	return best
}

// MinDomainMaxDegree implements score = domainSize(v) / (degree(v) + 1),
// minimized, the teacher's first-fail heuristic (labeling.go
// FirstFailLabeling) generalized with the spec's tie-break.
type MinDomainMaxDegree struct{}

func (MinDomainMaxDegree) Name() string { return "min-domain/max-degree" }

func (MinDomainMaxDegree) Select(store wcsp.Store, candidates []int, cfg *SearchConfig, rng *rand.Rand) (int, bool) {
	if len(candidates) == 0 {
		return -1, false
	}
	scores := make([]float64, len(candidates))
	for i, v := range candidates {
		scores[i] = float64(store.DomainSize(v)) / float64(store.Degree(v)+1)
	}
	best := tieBreak(store, candidates, scores, 1e-9)
	return candidates[best], true
}

// MinDomainMaxWeightedDegree uses weightedDegree(v) + 1 + τ(v), where τ(v)
// is the median unary cost over the current domain — the "weighted
// tightness" option of spec §4.1.
type MinDomainMaxWeightedDegree struct{}

func (MinDomainMaxWeightedDegree) Name() string { return "min-domain/max-weighted-degree" }

func medianUnaryCost(store wcsp.Store, v int) Cost {
	dc := store.EnumDomainAndCost(v)
	if len(dc) == 0 {
		return MinCost
	}
	costs := make([]Cost, len(dc))
	for i, vc := range dc {
		costs[i] = vc.Cost
	}
	sort.Slice(costs, func(i, j int) bool { return costs[i] < costs[j] })
	return costs[len(costs)/2]
}

func (MinDomainMaxWeightedDegree) Select(store wcsp.Store, candidates []int, cfg *SearchConfig, rng *rand.Rand) (int, bool) {
	if len(candidates) == 0 {
		return -1, false
	}
	scores := make([]float64, len(candidates))
	for i, v := range candidates {
		tau := medianUnaryCost(store, v)
		denom := float64(store.WeightedDegree(v)) + 1 + float64(tau)
		scores[i] = float64(store.DomainSize(v)) / denom
	}
	best := tieBreak(store, candidates, scores, 1e-9)
	return candidates[best], true
}

// StaticOrder returns the DAC order head — the first element of the
// candidate slice — with no scoring at all.
type StaticOrder struct{}

func (StaticOrder) Name() string { return "static" }

func (StaticOrder) Select(store wcsp.Store, candidates []int, cfg *SearchConfig, rng *rand.Rand) (int, bool) {
	if len(candidates) == 0 {
		return -1, false
	}
	return candidates[0], true
}

// BEPMostUrgent minimizes inf(v) (earliest start time), tie-breaking on
// maxUnaryCost — named for the source's "bep" (branch-and-bound earliest
// processing) scheduling heuristic.
type BEPMostUrgent struct{}

func (BEPMostUrgent) Name() string { return "bep-most-urgent" }

func (BEPMostUrgent) Select(store wcsp.Store, candidates []int, cfg *SearchConfig, rng *rand.Rand) (int, bool) {
	if len(candidates) == 0 {
		return -1, false
	}
	scores := make([]float64, len(candidates))
	for i, v := range candidates {
		scores[i] = float64(store.Inf(v))
	}
	best := tieBreak(store, candidates, scores, 0)
	return candidates[best], true
}

// RandomizedDomDeg reproduces the source's first-tie comparison literally:
// `heuristic < epsilon * best` rather than the relative-tolerance form
// used elsewhere. SPEC_FULL §10.1 records this as a faithfully-reproduced
// quirk, not a bug fix — see RandomizedDomDegTol for the corrected form.
type RandomizedDomDeg struct{ Epsilon float64 }

func (RandomizedDomDeg) Name() string { return "randomized-dom-deg" }

func (h RandomizedDomDeg) Select(store wcsp.Store, candidates []int, cfg *SearchConfig, rng *rand.Rand) (int, bool) {
	if len(candidates) == 0 {
		return -1, false
	}
	eps := h.Epsilon
	if eps == 0 {
		eps = 1e-9
	}
	scores := make([]float64, len(candidates))
	for i, v := range candidates {
		scores[i] = float64(store.DomainSize(v)) / float64(store.Degree(v)+1)
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s < best {
			best = s
		}
	}
	var ties []int
	for i, s := range scores {
		if s < eps*best {
			ties = append(ties, candidates[i])
		}
	}
	if len(ties) == 0 {
		// no candidate satisfied the (degenerate, near-zero) literal
		// tie bound; fall back to the plain minimum.
		minIdx := 0
		for i, s := range scores {
			if s < scores[minIdx] {
				minIdx = i
			}
		}
		return candidates[minIdx], true
	}
	return ties[rng.Intn(len(ties))], true
}

// RandomizedDomDegTol is the corrected relative-tolerance comparison
// (`score < best - epsilon*best`) exposed alongside RandomizedDomDeg per
// SPEC_FULL §10.1, so callers can pick either without this implementation
// silently choosing for them.
type RandomizedDomDegTol struct{ Epsilon float64 }

func (RandomizedDomDegTol) Name() string { return "randomized-dom-deg-tol" }

func (h RandomizedDomDegTol) Select(store wcsp.Store, candidates []int, cfg *SearchConfig, rng *rand.Rand) (int, bool) {
	if len(candidates) == 0 {
		return -1, false
	}
	eps := h.Epsilon
	if eps == 0 {
		eps = 1e-9
	}
	scores := make([]float64, len(candidates))
	for i, v := range candidates {
		scores[i] = float64(store.DomainSize(v)) / float64(store.Degree(v)+1)
	}
	best := scores[0]
	for _, s := range scores[1:] {
		if s < best {
			best = s
		}
	}
	var ties []int
	for i, s := range scores {
		if s < best-eps*best {
			ties = append(ties, candidates[i])
		}
	}
	if len(ties) == 0 {
		ties = append(ties, candidates[0])
	}
	return ties[rng.Intn(len(ties))], true
}

// SCPHeuristic filters the candidate set to variables whose domain
// intersects multiple amino-acid groups, as judged by cfg.SCPOracle, and
// scores only those with Inner. When no variable qualifies it falls
// through to Inner over the whole candidate set (spec §4.1).
type SCPHeuristic struct {
	Inner VariableHeuristic
}

func (s *SCPHeuristic) Name() string { return "scp/" + s.Inner.Name() }

func (s *SCPHeuristic) Select(store wcsp.Store, candidates []int, cfg *SearchConfig, rng *rand.Rand) (int, bool) {
	oracle := cfg.SCPOracle
	if oracle == nil {
		oracle = func(v, val int) bool { return true }
	}
	var qualifying []int
	for _, v := range candidates {
		for _, val := range store.EnumDomain(v) {
			if oracle(v, val) {
				qualifying = append(qualifying, v)
				break
			}
		}
	}
	if len(qualifying) == 0 {
		return s.Inner.Select(store, candidates, cfg, rng)
	}
	return s.Inner.Select(store, qualifying, cfg, rng)
}

// LastConflict wraps any VariableHeuristic: if the most recent branch that
// failed was on a variable still in the candidate set, return it
// immediately, otherwise defer to Inner (spec §4.1). Matches the teacher's
// CompositeLabeling/AdaptiveLabeling decorator shape in labeling.go.
//
// Select alone (used by tests constructing a bare heuristic, or by any
// caller with no conflict variable to thread through) just defers to
// Inner; the engine calls SelectWithConflict, which is the real entry
// point for last-conflict behavior.
type LastConflict struct {
	Inner VariableHeuristic
}

func (l *LastConflict) Name() string { return "last-conflict/" + l.Inner.Name() }

func (l *LastConflict) Select(store wcsp.Store, candidates []int, cfg *SearchConfig, rng *rand.Rand) (int, bool) {
	return l.Inner.Select(store, candidates, cfg, rng)
}

// SelectWithConflict checks the last-conflict variable before falling
// through to Inner.
func (l *LastConflict) SelectWithConflict(store wcsp.Store, candidates []int, cfg *SearchConfig, rng *rand.Rand, conflictVar int) (int, bool) {
	if conflictVar >= 0 {
		for _, v := range candidates {
			if v == conflictVar {
				return conflictVar, true
			}
		}
	}
	return l.Inner.Select(store, candidates, cfg, rng)
}
