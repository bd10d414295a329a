package px

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/physx-binding/handle"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the binding's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the binding's logger.
// This must be called before creating a Binding.
func SetLogger(l *zap.Logger) {
	logger = l
}

// logObserver reports handle lifecycle events at debug level.
type logObserver struct {
	log *zap.Logger
}

func (o *logObserver) OnHandleEvent(e handle.Event) {
	o.log.Debug("handle "+e.Type.String(),
		zap.Stringer("kind", e.Kind),
		zap.Uint32("handle", uint32(e.Handle)))
}
