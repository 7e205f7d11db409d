package session

// EventKind says which part of the controller state changed.
type EventKind int

const (
	EventQuery EventKind = iota
	EventHighlight
	EventSelection
	EventRecents
	EventLoad
)

func (k EventKind) String() string {
	switch k {
	case EventQuery:
		return "query"
	case EventHighlight:
		return "highlight"
	case EventSelection:
		return "selection"
	case EventRecents:
		return "recents"
	case EventLoad:
		return "load"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after a state change.
type Event struct {
	Kind EventKind
}

// Subscribe registers fn to be called after every state change. The
// returned function removes the subscription.
func (c *Controller) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := c.nextListener
	c.nextListener++
	c.listeners = append(c.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range c.listeners {
			if l.id == id {
				c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

type listener struct {
	id int
	fn func(Event)
}

func (c *Controller) emit(kinds ...EventKind) {
	for _, k := range kinds {
		for _, l := range c.listeners {
			l.fn(Event{Kind: k})
		}
	}
}
