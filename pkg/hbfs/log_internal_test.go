package hbfs

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/hbfssearch/pkg/trail"
	"github.com/gitrdm/hbfssearch/pkg/wcsp"
)

// TestLogProgressEmitsExpectedFields verifies logProgress writes one debug
// entry carrying the engine's current counters and the supplied event/run
// ID.
func TestLogProgressEmitsExpectedFields(t *testing.T) {
	ts := trail.NewStore()
	store := wcsp.NewRefStore(ts, []int{2}, wcsp.Cost(10))
	cfg := DefaultSearchConfig()
	cfg.HBFS = false
	e, err := NewEngine(context.Background(), ts, store, cfg, 1)
	require.NoError(t, err)

	e.nbNodes = 7
	e.nbBacktracks = 3
	e.globalLowerBound = Cost(1)

	logger, hook := logrustest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	logProgress(logger, "run-42", e, "dive")

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, "hbfs search progress", entry.Message)
	assert.Equal(t, "dive", entry.Data["event"])
	assert.Equal(t, int64(7), entry.Data["nodes"])
	assert.Equal(t, int64(3), entry.Data["backtracks"])
	assert.Equal(t, "run-42", entry.Data["run_id"])
	assert.Equal(t, int64(1), entry.Data["lb"])
	assert.Equal(t, int64(10), entry.Data["ub"])
}

// TestLogProgressNilLoggerNoOp verifies a nil logger is safely ignored.
func TestLogProgressNilLoggerNoOp(t *testing.T) {
	ts := trail.NewStore()
	store := wcsp.NewRefStore(ts, []int{2}, wcsp.Cost(10))
	cfg := DefaultSearchConfig()
	cfg.HBFS = false
	e, err := NewEngine(context.Background(), ts, store, cfg, 1)
	require.NoError(t, err)

	assert.NotPanics(t, func() { logProgress(nil, "", e, "dive") })
}
