package wcsp

import "github.com/pkg/errors"

// ErrContradiction is raised by propagation or EnforceUb when no value
// remains consistent with the current bound. It lives here rather than in
// pkg/hbfs because the store is what actually detects contradictions;
// pkg/hbfs re-exports it (signals.go) the same way it re-exports Cost.
var ErrContradiction = errors.New("contradiction")
