package hbfs

import (
	"github.com/sirupsen/logrus"
)

// SearchConfig is the immutable-by-convention options struct spec §9 asks
// for in place of the source's global mutable options struct: build one,
// pass it by reference into NewEngine, and never mutate it mid-search. Only
// nbNodes/nbBacktracks/globalLowerBound-style counters live on *Engine
// itself (see solve.go), matching the teacher's split between
// StrategyConfig (stable) and a monitor carrying counters (strategy.go /
// fd_monitor.go).
type SearchConfig struct {
	// HBFS enables hybrid best-first/depth-first search. When false the
	// engine runs pure recursive DFS (or LDS, if LDSMax is set).
	HBFS bool
	// HBFSInit is the initial backtrack budget B.
	HBFSInit int64
	// HBFSAlpha and HBFSBeta are the α/β ratios in hybridSolve's adaptive
	// budget rule (spec §4.3 step 8). Classic values: 20 and 5.
	HBFSAlpha int64
	HBFSBeta  int64
	// HBFSCPLimit and HBFSOpenNodeLimit are the resource caps of spec
	// §4.3: exceeding either disables HBFS for the remainder of the call
	// and falls through to pure DFS.
	HBFSCPLimit      int
	HBFSOpenNodeLimit int
	// HBFSGlobalLimit caps the adaptive budget B: after each HBFS dive,
	// when positive, B is clamped to at most this value. It does not
	// disable HBFS.
	HBFSGlobalLimit int64

	// LDSMax is the discrepancy ceiling. Zero disables LDS. Its sign is
	// not consulted: |LDSMax| is the ceiling, and once it is exceeded the
	// controller returns without running an unbounded complete pass.
	LDSMax int

	// RestartNodeThreshold is the cumulative node count past which the
	// restart controller drops its backtrack limit to infinity (spec
	// §4.7). Zero disables restarting.
	RestartNodeThreshold int64

	WeightedDegree bool
	LastConflict   bool

	// DichotomicBranching selects the binary choice point's domain-split
	// mode: 0 disabled (use plain binary/value branching), 1 midpoint
	// split, 2 sort-by-unary-cost-then-split.
	DichotomicBranching     int
	DichotomicBranchingSize int
	BinaryBranching         bool
	StaticVariableOrdering  bool

	// AllSolutions is the enumeration cap. Zero means "find one optimum
	// and stop" (no enumeration).
	AllSolutions int64

	VerifyOpt             bool
	SingletonConsistency  bool
	// BTDMode selects tree-decomposition cooperation: 0 off, 1..3 the
	// source's BTD/RDS/RDS-hybrid variants (the core only needs to know
	// whether cooperation is active; cluster semantics live in pkg/btd).
	BTDMode int

	// SCPOracle judges, for a candidate (variable, value) pair, whether
	// the value still has room to belong to more than one amino-acid
	// group. Non-nil makes branch use scpChoicePoint; nil leaves the SCP
	// path unused and branch picks the dichotomic, n-ary or binary choice
	// point instead.
	SCPOracle func(v, val int) bool

	// RandomSeed drives every randomized heuristic and value ordering
	// through one explicit PRNG (spec §5's ordering note: "randomized
	// tie-breaks use a single explicit PRNG").
	RandomSeed int64

	// Logger receives structured progress fields. Nil defaults to
	// logrus.StandardLogger() (see logger below).
	Logger logrus.FieldLogger

	// RunID correlates log lines across restart attempts. Left empty,
	// the engine does not stamp one (cmd/hbfssolve populates it from
	// google/uuid).
	RunID string
}

// DefaultSearchConfig returns the empirically dominant default
// configuration named in spec §4.1's rationale: min-domain/weighted-degree
// with last-conflict, HBFS on with the classic α=20/β=5 adaptation.
func DefaultSearchConfig() *SearchConfig {
	return &SearchConfig{
		HBFS:                  true,
		HBFSInit:              10000,
		HBFSAlpha:             20,
		HBFSBeta:              5,
		HBFSCPLimit:           1 << 24,
		HBFSOpenNodeLimit:     1 << 20,
		HBFSGlobalLimit:       1 << 30,
		WeightedDegree:        true,
		LastConflict:          true,
		RestartNodeThreshold:  0,
		BinaryBranching:       true,
		RandomSeed:            1,
	}
}

// Validate checks option compatibility the way spec §7 names as a fatal,
// pre-search error class ("option incompatibility... fatal: emit a
// diagnostic to stderr and exit with status 1"). The open-question
// decision in SPEC_FULL §10.2 rejects HBFS combined with an active SCP
// oracle rather than attempting to specify their bound-tightening
// interaction.
func (c *SearchConfig) Validate() error {
	if c.HBFS && c.SCPOracle != nil {
		return errUnsupportedCombination
	}
	if c.HBFSAlpha <= 0 || c.HBFSBeta <= 0 {
		return errInvalidBudgetRatio
	}
	return nil
}

// logger returns c.Logger, or the package default when nil.
func (c *SearchConfig) logger() logrus.FieldLogger {
	if c.Logger != nil {
		return c.Logger
	}
	return logrus.StandardLogger()
}
