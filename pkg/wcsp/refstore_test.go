package wcsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/hbfssearch/pkg/trail"
	"github.com/gitrdm/hbfssearch/pkg/wcsp"
)

func newTestStore() *wcsp.RefStore {
	return wcsp.NewRefStore(trail.NewStore(), []int{3, 3}, wcsp.Cost(100))
}

// TestAssignNarrowsToSingleton verifies Assign leaves exactly one value in
// the domain and notifies the registered listener.
func TestAssignNarrowsToSingleton(t *testing.T) {
	s := newTestStore()

	var notified []int
	s.SetAssignListener(wcsp.AssignListenerFunc(func(v, val int) {
		notified = append(notified, v, val)
	}))

	require.NoError(t, s.Assign(0, 1))
	assert.True(t, s.Assigned(0))
	assert.Equal(t, 1, s.Inf(0))
	assert.Equal(t, []int{0, 1}, notified)
}

// TestAssignOutOfDomainContradicts verifies assigning a value already
// excluded from the domain raises a contradiction.
func TestAssignOutOfDomainContradicts(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Remove(0, 1))
	err := s.Assign(0, 1)
	assert.ErrorIs(t, err, wcsp.ErrContradiction)
}

// TestRemoveLastValueContradicts verifies emptying a domain raises a
// contradiction.
func TestRemoveLastValueContradicts(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Remove(0, 0))
	require.NoError(t, s.Remove(0, 1))
	err := s.Remove(0, 2)
	assert.ErrorIs(t, err, wcsp.ErrContradiction)
}

// TestIncreaseAndDecreaseNarrowBounds verifies dichotomic branching's
// bound operations prune the expected halves.
func TestIncreaseAndDecreaseNarrowBounds(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.Increase(0, 1))
	assert.False(t, s.Canbe(0, 0))
	assert.True(t, s.Canbe(0, 1))
	assert.True(t, s.Canbe(0, 2))

	require.NoError(t, s.Decrease(0, 1))
	assert.True(t, s.Canbe(0, 1))
	assert.False(t, s.Canbe(0, 2))
	assert.True(t, s.Assigned(0))
}

// TestLbSumsUnaryAndAssignedBinaryCosts verifies Lb aggregates per-variable
// minimum unary cost plus binary costs between fully-assigned pairs.
func TestLbSumsUnaryAndAssignedBinaryCosts(t *testing.T) {
	s := newTestStore()
	s.SetUnaryCost(0, 0, 0)
	s.SetUnaryCost(0, 1, 5)
	s.SetUnaryCost(1, 0, 0)
	s.SetUnaryCost(1, 1, 5)
	s.AddBinaryCost(0, 1, 1, 1, wcsp.Cost(7))

	assert.Equal(t, wcsp.Cost(0), s.Lb())

	require.NoError(t, s.Assign(0, 1))
	require.NoError(t, s.Assign(1, 1))
	assert.Equal(t, wcsp.Cost(5+5+7), s.Lb())
}

// TestPropagateDetectsBoundViolation verifies Propagate raises a
// contradiction once lb reaches or exceeds ub.
func TestPropagateDetectsBoundViolation(t *testing.T) {
	s := wcsp.NewRefStore(trail.NewStore(), []int{2}, wcsp.Cost(3))
	s.SetUnaryCost(0, 0, 5)
	s.SetUnaryCost(0, 1, 5)

	err := s.Propagate()
	assert.ErrorIs(t, err, wcsp.ErrContradiction)
}

// TestCheckpointRestoreRoundTrip verifies the store's own
// Checkpoint/RestoreTo pair undoes domain mutations.
func TestCheckpointRestoreRoundTrip(t *testing.T) {
	s := newTestStore()
	depth := s.Checkpoint()
	require.NoError(t, s.Assign(0, 2))
	assert.True(t, s.Assigned(0))

	s.RestoreTo(depth)
	assert.False(t, s.Assigned(0))
	assert.Equal(t, 3, s.DomainSize(0))
}
