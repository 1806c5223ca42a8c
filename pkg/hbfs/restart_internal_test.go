package hbfs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLubySequence verifies the first terms of the Luby restart sequence
// (1,1,2,1,1,2,4,1,...), spec §9's glossary definition.
func TestLubySequence(t *testing.T) {
	want := []int64{1, 1, 2, 1, 1, 2, 4, 1}
	for i, w := range want {
		got := luby(int64(i + 1))
		assert.Equalf(t, w, got, "luby(%d)", i+1)
	}
}

// TestRestartControllerDisabledWhenThresholdZero verifies beginAttempt
// hands out an unbounded limit when restarting is off.
func TestRestartControllerDisabledWhenThresholdZero(t *testing.T) {
	cfg := DefaultSearchConfig()
	cfg.RestartNodeThreshold = 0
	rc := newRestartController(cfg)
	e := &Engine{Config: cfg}

	rc.beginAttempt(e)
	assert.Equal(t, int64(math.MaxInt64), e.restartLimit)
}

// TestRestartControllerFirstAttemptGetsLimitOne verifies the first attempt
// under an active restart schedule is given exactly nbBacktracksLimit = 1,
// per tb2solver.cpp's restart loop.
func TestRestartControllerFirstAttemptGetsLimitOne(t *testing.T) {
	cfg := DefaultSearchConfig()
	cfg.RestartNodeThreshold = 1000
	rc := newRestartController(cfg)
	e := &Engine{Config: cfg}

	rc.beginAttempt(e)
	assert.Equal(t, int64(1), e.restartLimit)
}

// TestRestartControllerDisablesPermanentlyPastThreshold verifies that once
// nbNodes reaches the configured threshold, every subsequent attempt gets
// an unbounded limit for the rest of the run.
func TestRestartControllerDisablesPermanentlyPastThreshold(t *testing.T) {
	cfg := DefaultSearchConfig()
	cfg.RestartNodeThreshold = 5
	rc := newRestartController(cfg)
	e := &Engine{Config: cfg}

	rc.beginAttempt(e) // first attempt: limit 1
	e.nbNodes = 10
	rc.beginAttempt(e) // second attempt: past threshold, disables
	assert.Equal(t, int64(math.MaxInt64), e.restartLimit)

	e.nbNodes = 0
	rc.beginAttempt(e) // stays disabled even if nbNodes later looks low
	assert.Equal(t, int64(math.MaxInt64), e.restartLimit)
}

// TestRestartControllerLimitGrowsRelativeToCurrentBacktracks verifies each
// new limit is nbBacktracks + cur*100, not a fixed absolute value.
func TestRestartControllerLimitGrowsRelativeToCurrentBacktracks(t *testing.T) {
	cfg := DefaultSearchConfig()
	cfg.RestartNodeThreshold = 1000
	rc := newRestartController(cfg)
	e := &Engine{Config: cfg}

	rc.beginAttempt(e)
	e.nbBacktracks = 50
	rc.beginAttempt(e)
	assert.Greater(t, e.restartLimit, e.nbBacktracks)
}
