package race

type EventType int

const (
	EventLapCompleted EventType = iota
	EventBestLap
	EventBoundaryHit
	EventPhaseChanged
)

// Event carries the frame's notable moments to front-ends (sound, HUD flash).
type Event struct {
	Type  EventType
	X, Y  float64 // car position on screen
	Lap   int     // one-based lap number for lap events
	Time  float64 // lap time in seconds for lap events
	Speed float64
	Phase Phase
}

type EventHandler func(Event)

type subscription struct {
	id int
	fn EventHandler
}

// EventBus fans session events out to the front-end. Handlers run
// synchronously inside Session.Frame, in subscription order.
type EventBus struct {
	handlers map[EventType][]subscription
	nextID   int
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]subscription),
	}
}

// Subscribe registers fn for events of type t. The returned func detaches
// it again; calling it more than once is harmless.
func (eb *EventBus) Subscribe(t EventType, fn EventHandler) (unsubscribe func()) {
	eb.nextID++
	id := eb.nextID
	eb.handlers[t] = append(eb.handlers[t], subscription{id: id, fn: fn})
	return func() {
		subs := eb.handlers[t]
		for i, s := range subs {
			if s.id == id {
				eb.handlers[t] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (eb *EventBus) Emit(e Event) {
	for _, s := range eb.handlers[e.Type] {
		s.fn(e)
	}
}
