package bvh

import (
	"github.com/sirupsen/logrus"
)

// capturingLogger wires a logrus hook that records whether any
// Warn-level (or above) entry was logged, for tests that assert on
// checkDegraded's behavior without parsing log output.
type capturingLogger struct {
	*logrus.Logger
	sawWarning bool
}

type warnSpyHook struct {
	target *capturingLogger
}

func (h *warnSpyHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *warnSpyHook) Fire(entry *logrus.Entry) error {
	if entry.Level <= logrus.WarnLevel {
		h.target.sawWarning = true
	}
	return nil
}

func newCapturingLogger() *capturingLogger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	c := &capturingLogger{Logger: l}
	l.AddHook(&warnSpyHook{target: c})
	return c
}
