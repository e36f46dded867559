// Package progress fans pipeline status updates out to registered listeners.
// Listeners are fire-and-forget: a panicking listener is isolated and can
// never abort the pipeline.
package progress

import "log/slog"

// Update is one progress event emitted by the pipeline coordinator.
type Update struct {
	Status   string
	Message  string
	Progress int
	Err      error
}

// Listener receives progress updates. Return values and panics are ignored.
type Listener func(Update)

// Emitter holds the listener list. A nil *Emitter is valid and drops every
// update, so callers never need nil checks.
type Emitter struct {
	listeners []Listener
}

// NewEmitter builds an emitter over the given listeners.
func NewEmitter(listeners ...Listener) *Emitter {
	return &Emitter{listeners: listeners}
}

// Subscribe appends a listener. Not safe for concurrent use with Emit;
// register listeners before the pipeline starts.
func (e *Emitter) Subscribe(l Listener) {
	if e == nil || l == nil {
		return
	}
	e.listeners = append(e.listeners, l)
}

// Emit delivers the update to every listener, recovering panics.
func (e *Emitter) Emit(update Update) {
	if e == nil {
		return
	}
	for _, listener := range e.listeners {
		deliver(listener, update)
	}
}

func deliver(l Listener, update Update) {
	defer func() {
		_ = recover()
	}()
	l(update)
}

// SlogListener logs every update through the given logger.
func SlogListener(logger *slog.Logger) Listener {
	return func(u Update) {
		if u.Err != nil {
			logger.Error("pipeline progress", "status", u.Status, "progress", u.Progress, "message", u.Message, "error", u.Err)
			return
		}
		logger.Info("pipeline progress", "status", u.Status, "progress", u.Progress, "message", u.Message)
	}
}
