package hbfs

import (
	"github.com/pkg/errors"

	"github.com/gitrdm/hbfssearch/pkg/wcsp"
)

// The five typed non-local exits spec §7 names. The source raises these as
// exceptions caught at specific stack frames; here they are sentinel
// errors propagated by ordinary Go error returns and matched with
// errors.Is, so every branching frame's signature is honest about what it
// can signal instead of hiding a throw inside otherwise-normal control
// flow.
var (
	// ErrContradiction re-exports wcsp.ErrContradiction (the store is what
	// detects contradictions). Caught by the nearest branching frame:
	// restore to checkpoint, take the other branch.
	ErrContradiction = wcsp.ErrContradiction

	// ErrNbBacktracksOut is raised when a local backtrack budget is
	// exceeded. Caught by the restart controller, which begins the next
	// attempt.
	ErrNbBacktracksOut = errors.New("backtrack limit reached")

	// ErrNbSolutionsOut is raised by the solution reporter when the
	// enumeration cap is reached. Caught by top-level solve.
	ErrNbSolutionsOut = errors.New("solution cap reached")

	// ErrTimeOut is raised at a choice-point entry guard when the
	// cooperative interrupt flag is set. Caught by top-level solve.
	ErrTimeOut = errors.New("search interrupted")

	// ErrFindNewSequence is raised by the solution reporter under SCP
	// enumeration. Caught by the SCP branching ancestors, which skip the
	// remaining values of the current amino-acid group.
	ErrFindNewSequence = errors.New("find new sequence")
)

// IsContradiction reports whether err is (or wraps) ErrContradiction.
func IsContradiction(err error) bool { return errors.Is(err, ErrContradiction) }

// IsNbBacktracksOut reports whether err is (or wraps) ErrNbBacktracksOut.
func IsNbBacktracksOut(err error) bool { return errors.Is(err, ErrNbBacktracksOut) }

// IsNbSolutionsOut reports whether err is (or wraps) ErrNbSolutionsOut.
func IsNbSolutionsOut(err error) bool { return errors.Is(err, ErrNbSolutionsOut) }

// IsTimeOut reports whether err is (or wraps) ErrTimeOut.
func IsTimeOut(err error) bool { return errors.Is(err, ErrTimeOut) }

// IsFindNewSequence reports whether err is (or wraps) ErrFindNewSequence.
func IsFindNewSequence(err error) bool { return errors.Is(err, ErrFindNewSequence) }

// Fatal configuration errors (spec §7: "option incompatibility... fatal").
// These never occur mid-search; Validate rejects them before BeginSolve
// does any work.
var (
	errUnsupportedCombination = errors.New("hbfs: HBFS and an active SCP oracle cannot be combined")
	errInvalidBudgetRatio     = errors.New("hbfs: HBFSAlpha and HBFSBeta must be positive")
)
