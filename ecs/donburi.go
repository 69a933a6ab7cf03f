package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/deskpet"
)

// GestureEventType is the Donburi event type for deskpet gestures.
var GestureEventType = events.NewEventType[deskpet.GestureEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on GestureEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) deskpet.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event deskpet.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}
