package game

// EventKind identifies what changed.
type EventKind int

const (
	// EventUpdate follows any change to the cells or generation counter.
	EventUpdate EventKind = iota
	// EventResize follows a change of grid dimensions.
	EventResize
	EventStart
	EventStop
	// EventSettings follows a change of rule, edge, speed or auto-stop.
	EventSettings
)

func (k EventKind) String() string {
	switch k {
	case EventUpdate:
		return "update"
	case EventResize:
		return "resize"
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventSettings:
		return "settings"
	}
	return "unknown"
}

// Event carries the controller state right after a change.
type Event struct {
	Kind  EventKind
	State State
}

// Subscribe registers a listener with a buffer of buf events. Delivery never
// blocks the controller: events that do not fit in the buffer are dropped.
// cancel unregisters the listener and closes the channel; it may be called
// more than once.
func (c *Controller) Subscribe(buf int) (<-chan Event, func()) {
	ch := make(chan Event, max(buf, 0))
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = ch
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (c *Controller) emitLocked(kind EventKind) {
	if len(c.subs) == 0 {
		return
	}
	ev := Event{Kind: kind, State: c.stateLocked()}
	for _, ch := range c.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
