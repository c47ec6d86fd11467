// internal/game/notify.go
//
// Snapshot broadcast to presentation-layer subscribers.
// Every mutating operation publishes the replaced State to all subscriber
// channels. Sends never block: a subscriber that stops draining its channel
// misses snapshots instead of stalling the engine.

package game

// subscriberBuffer bounds how many unread snapshots a subscriber may lag
// behind before updates start dropping.
const subscriberBuffer = 8

// Subscribe registers a new observer and returns its channel. The channel
// receives every snapshot published after the call.
func (e *Engine) Subscribe() <-chan State {
	e.mu.Lock()
	defer e.mu.Unlock()
	ch := make(chan State, subscriberBuffer)
	e.subs = append(e.subs, ch)
	return ch
}

// Unsubscribe detaches a channel previously returned by Subscribe and
// closes it. Unknown channels are ignored.
func (e *Engine) Unsubscribe(ch <-chan State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, sub := range e.subs {
		if (<-chan State)(sub) == ch {
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			close(sub)
			return
		}
	}
}

// publish pushes the current snapshot to every subscriber without blocking.
// Callers hold e.mu.
func (e *Engine) publish() {
	for _, sub := range e.subs {
		select {
		case sub <- e.state:
		default:
		}
	}
}
