package hbfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/hbfssearch/pkg/hbfs"
	"github.com/gitrdm/hbfssearch/pkg/trail"
	"github.com/gitrdm/hbfssearch/pkg/wcsp"
)

// plainConfig returns a SearchConfig with HBFS/LDS/restart all disabled,
// so BeginSolve runs a single pure-DFS pass — the configuration the
// concrete scenarios in spec §8 are phrased against.
func plainConfig() *hbfs.SearchConfig {
	cfg := hbfs.DefaultSearchConfig()
	cfg.HBFS = false
	cfg.LDSMax = 0
	cfg.RestartNodeThreshold = 0
	return cfg
}

// TestScenarioEmptyProblem covers spec §8 scenario 1: zero variables
// solves immediately with cost 0 and explores no nodes.
func TestScenarioEmptyProblem(t *testing.T) {
	ts := trail.NewStore()
	store := wcsp.NewRefStore(ts, nil, wcsp.Cost(10))

	e, err := hbfs.NewEngine(context.Background(), ts, store, plainConfig(), 0)
	require.NoError(t, err)

	res, err := e.BeginSolve()
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, wcsp.Cost(0), res.Cost)
	assert.Equal(t, int64(0), res.Stats.NodesExplored)
	assert.Equal(t, int64(0), res.Stats.Backtracks)
}

// TestScenarioSingleUnary covers spec §8 scenario 2: one variable, domain
// {0,1}, unary costs {0: 3, 1: 1}, ub = 10. Optimum is 1, reached by
// assigning the variable to 1.
func TestScenarioSingleUnary(t *testing.T) {
	ts := trail.NewStore()
	store := wcsp.NewRefStore(ts, []int{2}, wcsp.Cost(10))
	store.SetUnaryCost(0, 0, wcsp.Cost(3))
	store.SetUnaryCost(0, 1, wcsp.Cost(1))

	e, err := hbfs.NewEngine(context.Background(), ts, store, plainConfig(), 1)
	require.NoError(t, err)

	res, err := e.BeginSolve()
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, wcsp.Cost(1), res.Cost)
}

// TestScenarioForcedInfeasibility covers spec §8 scenario 3: two
// variables joined by a binary constraint forbidding every pair, ub high
// enough that only the structural conflict can prune. Expected: no
// solution.
func TestScenarioForcedInfeasibility(t *testing.T) {
	ts := trail.NewStore()
	store := wcsp.NewRefStore(ts, []int{2, 2}, wcsp.Cost(10))
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			store.AddBinaryCost(0, a, 1, b, wcsp.Cost(10))
		}
	}

	e, err := hbfs.NewEngine(context.Background(), ts, store, plainConfig(), 2)
	require.NoError(t, err)

	res, err := e.BeginSolve()
	require.NoError(t, err)
	assert.False(t, res.Found)
}

// TestSolveHBFSMatchesPlainDFSOptimum covers spec §8's "HBFS sound
// pruning" property on a small chain instance: HBFS and plain DFS must
// agree on the optimum.
func TestSolveHBFSMatchesPlainDFSOptimum(t *testing.T) {
	build := func() (*trail.Store, *wcsp.RefStore) {
		ts := trail.NewStore()
		s := wcsp.NewRefStore(ts, []int{2, 2, 2}, wcsp.Cost(1000))
		for v := 0; v < 3; v++ {
			s.SetUnaryCost(v, 0, wcsp.Cost(0))
			s.SetUnaryCost(v, 1, wcsp.Cost(1))
		}
		for v := 0; v < 2; v++ {
			for a := 0; a < 2; a++ {
				for b := 0; b < 2; b++ {
					cost := wcsp.Cost(0)
					if a != b {
						cost = 5
					}
					s.AddBinaryCost(v, a, v+1, b, cost)
				}
			}
		}
		return ts, s
	}

	tsDFS, storeDFS := build()
	dfsEngine, err := hbfs.NewEngine(context.Background(), tsDFS, storeDFS, plainConfig(), 3)
	require.NoError(t, err)
	dfsRes, err := dfsEngine.BeginSolve()
	require.NoError(t, err)

	tsHBFS, storeHBFS := build()
	hbfsCfg := hbfs.DefaultSearchConfig()
	hbfsCfg.HBFS = true
	hbfsCfg.HBFSInit = 2
	hbfsEngine, err := hbfs.NewEngine(context.Background(), tsHBFS, storeHBFS, hbfsCfg, 3)
	require.NoError(t, err)
	hbfsRes, err := hbfsEngine.BeginSolve()
	require.NoError(t, err)

	assert.True(t, dfsRes.Found)
	assert.True(t, hbfsRes.Found)
	assert.Equal(t, dfsRes.Cost, hbfsRes.Cost)
}

// TestSolveRestartEquivalence covers spec §8 scenario 5: the same
// instance solved with restarting enabled and disabled must agree on the
// optimum (seed fixed by DefaultSearchConfig's RandomSeed).
func TestSolveRestartEquivalence(t *testing.T) {
	build := func() (*trail.Store, *wcsp.RefStore) {
		ts := trail.NewStore()
		s := wcsp.NewRefStore(ts, []int{3, 3}, wcsp.Cost(1000))
		s.SetUnaryCost(0, 0, 0)
		s.SetUnaryCost(0, 1, 2)
		s.SetUnaryCost(0, 2, 4)
		s.SetUnaryCost(1, 0, 1)
		s.SetUnaryCost(1, 1, 0)
		s.SetUnaryCost(1, 2, 3)
		s.AddBinaryCost(0, 0, 1, 0, wcsp.Cost(5))
		return ts, s
	}

	tsPlain, storePlain := build()
	plainEngine, err := hbfs.NewEngine(context.Background(), tsPlain, storePlain, plainConfig(), 2)
	require.NoError(t, err)
	plainRes, err := plainEngine.BeginSolve()
	require.NoError(t, err)

	tsRestart, storeRestart := build()
	restartCfg := plainConfig()
	restartCfg.RestartNodeThreshold = 100
	restartEngine, err := hbfs.NewEngine(context.Background(), tsRestart, storeRestart, restartCfg, 2)
	require.NoError(t, err)
	restartRes, err := restartEngine.BeginSolve()
	require.NoError(t, err)

	assert.Equal(t, plainRes.Found, restartRes.Found)
	assert.Equal(t, plainRes.Cost, restartRes.Cost)
}
