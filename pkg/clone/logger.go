package clone

import "go.uber.org/zap"

var logSink = zap.NewNop().Sugar()

// SetLogger allows callers/tests to inject a zap logger instead of the
// default no-op one. Passing nil resets to the default.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		logSink = zap.NewNop().Sugar()
		return
	}
	logSink = l
}
