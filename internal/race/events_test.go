package race

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBusDelivery(t *testing.T) {
	eb := NewEventBus()
	var got []string

	eb.Subscribe(EventLapCompleted, func(e Event) { got = append(got, "first") })
	drop := eb.Subscribe(EventLapCompleted, func(e Event) { got = append(got, "second") })
	eb.Subscribe(EventBestLap, func(e Event) { got = append(got, "best") })

	eb.Emit(Event{Type: EventLapCompleted, Lap: 1})
	assert.Equal(t, []string{"first", "second"}, got)

	got = nil
	drop()
	drop()
	eb.Emit(Event{Type: EventLapCompleted, Lap: 2})
	eb.Emit(Event{Type: EventBestLap})
	assert.Equal(t, []string{"first", "best"}, got)

	// Nothing subscribed.
	assert.NotPanics(t, func() { eb.Emit(Event{Type: EventBoundaryHit}) })
}

func TestEventBusUnsubscribeKeepsOrder(t *testing.T) {
	eb := NewEventBus()
	var got []int
	var drops []func()
	for i := range 4 {
		drops = append(drops, eb.Subscribe(EventPhaseChanged, func(Event) { got = append(got, i) }))
	}
	drops[1]()
	eb.Emit(Event{Type: EventPhaseChanged})
	assert.Equal(t, []int{0, 2, 3}, got)
}
