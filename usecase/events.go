package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Event names emitted by the session store.
const (
	EventLoggedIn  = "session.logged-in"
	EventLoggedOut = "session.logged-out"
)

// EventHandler reacts to a session lifecycle event.
type EventHandler func(ctx context.Context) error

type subscription struct {
	name string
	fn   EventHandler
}

// Emitter is a minimal observer registry. It keeps cross-store side effects
// one-directional: the session store emits, dependent stores subscribe, and
// nothing ever calls back into the emitter's owner. Handler failures are
// logged and swallowed so an emit can never corrupt the emitting transition.
type Emitter struct {
	logger *zap.Logger

	mu       sync.RWMutex
	handlers map[string][]subscription
}

func NewEmitter(logger *zap.Logger) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Emitter{
		logger:   logger,
		handlers: make(map[string][]subscription),
	}
}

// Subscribe registers a named handler for the event.
func (e *Emitter) Subscribe(event, name string, fn EventHandler) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[event] = append(e.handlers[event], subscription{name: name, fn: fn})
}

// Emit invokes every handler registered for the event, in subscription
// order. The emit itself never fails.
func (e *Emitter) Emit(ctx context.Context, event string) {
	e.mu.RLock()
	subs := append([]subscription(nil), e.handlers[event]...)
	e.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.fn(ctx); err != nil {
			e.logger.Warn("event handler failed",
				zap.String("event", event),
				zap.String("handler", sub.name),
				zap.Error(err))
		}
	}
}
