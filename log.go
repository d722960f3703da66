package bvh

import "github.com/sirupsen/logrus"

// SetLogger attaches a structured logger to the tree. The teacher's
// engine never logs anything; logrus is pulled in from
// newbthenewbd-btrfs-rec's stack instead. A Tree with no attached
// logger behaves identically to one with logging enabled — attaching a
// logger only adds observability, never changes behavior (spec.md §6:
// the library is embedded, no hidden I/O by default).
func (t *Tree) SetLogger(logger *logrus.Logger) {
	t.logger = logger
}

func (t *Tree) logDebugf(format string, args ...interface{}) {
	if t.logger == nil {
		return
	}
	t.logger.Debugf(format, args...)
}

func (t *Tree) logWarnf(format string, args ...interface{}) {
	if t.logger == nil {
		return
	}
	t.logger.Warnf(format, args...)
}

// checkDegraded logs a warning when the tree's balance factor exceeds
// the 2.0 threshold spec.md's state machine (§4.3) flags as "degraded" —
// a signal for the caller to call Rebuild, not an error.
func (t *Tree) checkDegraded() {
	if t.logger == nil {
		return
	}
	stats := t.Stats()
	if stats.BalanceFactor > 2.0 {
		t.logWarnf("bvh: tree degraded, balance_factor=%.2f node_count=%d max_depth=%d; consider Rebuild",
			stats.BalanceFactor, stats.NodeCount, stats.MaxDepth)
	}
}
