package hbfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/hbfssearch/pkg/trail"
	"github.com/gitrdm/hbfssearch/pkg/wcsp"
)

// TestReplayReconstructsAssignmentsAndCost covers spec §8's "replay
// round-trip" property: replaying a logged [first,last) slice against a
// fresh checkpoint reproduces the same assignment and lb as direct
// execution did.
func TestReplayReconstructsAssignmentsAndCost(t *testing.T) {
	ts := trail.NewStore()
	store := wcsp.NewRefStore(ts, []int{2, 2}, wcsp.Cost(100))
	store.SetUnaryCost(0, 0, wcsp.Cost(1))
	store.SetUnaryCost(0, 1, wcsp.Cost(3))
	store.SetUnaryCost(1, 0, wcsp.Cost(2))
	store.SetUnaryCost(1, 1, wcsp.Cost(4))

	cfg := DefaultSearchConfig()
	cfg.HBFS = false
	e, err := NewEngine(context.Background(), ts, store, cfg, 2)
	require.NoError(t, err)

	checkpoint := e.trail.Save()
	first := e.cpLog.Index()
	e.cpLog.Append(ChoicePoint{Op: OpAssign, Var: 0, Value: 0})
	require.NoError(t, store.Assign(0, 0))
	e.cpLog.Append(ChoicePoint{Op: OpAssign, Var: 1, Value: 1})
	require.NoError(t, store.Assign(1, 1))
	require.NoError(t, store.Propagate())
	last := e.cpLog.Index()

	directLb := store.Lb()

	// Roll back to before the dive, simulating a suspension and later pop.
	e.trail.Restore(checkpoint)
	e.cpLog.SetIndex(first)

	require.NoError(t, e.replay(first, last))

	assert.True(t, store.Assigned(0))
	assert.True(t, store.Assigned(1))
	assert.Equal(t, 0, store.Inf(0))
	assert.Equal(t, 1, store.Inf(1))
	assert.Equal(t, directLb, store.Lb())
}
