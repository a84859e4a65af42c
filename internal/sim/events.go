package sim

// EventType identifies an outbound signal raised during a frame.
type EventType int

const (
	EventEngine      EventType = iota // engine running, Volume follows speed
	EventTireScreech                  // one-shot while cornering fast
	EventStartEngine                  // one-shot at race start
	EventOffTrack                     // HUD warning, vehicle is on a masked pixel
	EventLapStarted                   // first finish-line crossing
	EventLapCompleted                 // second crossing, Seconds holds the lap time
)

type Event struct {
	Type    EventType
	Volume  float64
	Seconds float64
}

type EventHandler func(Event)

// EventBus queues events raised by the simulation and hands them to
// subscribers when flushed, so playback never runs inside a physics step.
type EventBus struct {
	handlers map[EventType][]EventHandler
	pending  []Event
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// Emit queues e. A nil bus drops it.
func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	eb.pending = append(eb.pending, e)
}

// Pending returns the queued events in emission order.
func (eb *EventBus) Pending() []Event {
	return eb.pending
}

// Flush delivers queued events in order and clears the queue.
func (eb *EventBus) Flush() {
	for _, e := range eb.pending {
		for _, fn := range eb.handlers[e.Type] {
			fn(e)
		}
	}
	eb.pending = eb.pending[:0]
}
