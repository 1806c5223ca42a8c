package hbfs

import "github.com/sirupsen/logrus"

// logProgress emits one structured line summarizing the engine's current
// state, the fielded equivalent of the teacher's SolverStats.String()
// block in fd_monitor.go — but as logrus.WithFields, matching the corpus's
// structured-logging idiom rather than a single formatted string.
func logProgress(log logrus.FieldLogger, runID string, e *Engine, event string) {
	if log == nil {
		return
	}
	fields := logrus.Fields{
		"event":      event,
		"nodes":      e.nbNodes,
		"backtracks": e.nbBacktracks,
		"lb":         int64(e.globalLowerBound),
		"ub":         int64(e.ub()),
	}
	if e.openList != nil {
		fields["B"] = e.currentB
	}
	if runID != "" {
		fields["run_id"] = runID
	}
	log.WithFields(fields).Debug("hbfs search progress")
}
