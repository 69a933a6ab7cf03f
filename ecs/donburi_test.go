package ecs

import (
	"testing"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/deskpet"
)

func TestDonburiSinkEmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []deskpet.GestureEvent
	GestureEventType.Subscribe(world, func(w donburi.World, e deskpet.GestureEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(deskpet.GestureEvent{
		Type:    deskpet.GestureTap,
		Region:  deskpet.RegionHead,
		Clip:    deskpet.ClipTouchHead,
		ScreenX: 100,
		ScreenY: 200,
	})
	sink.EmitEvent(deskpet.GestureEvent{
		Type:     deskpet.GestureDrop,
		Clip:     deskpet.ClipDown,
		Position: deskpet.Vec2{X: 40, Y: 50},
	})

	if len(received) != 0 {
		t.Fatal("events delivered before ProcessEvents")
	}
	GestureEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != deskpet.GestureTap || e0.Region != deskpet.RegionHead || e0.Clip != deskpet.ClipTouchHead {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.ScreenX != 100 || e0.ScreenY != 200 {
		t.Errorf("event 0 position: (%v,%v)", e0.ScreenX, e0.ScreenY)
	}
	e1 := received[1]
	if e1.Type != deskpet.GestureDrop || e1.Position != (deskpet.Vec2{X: 40, Y: 50}) {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSinkMultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	GestureEventType.Subscribe(world, func(w donburi.World, e deskpet.GestureEvent) {
		count1++
	})
	GestureEventType.Subscribe(world, func(w donburi.World, e deskpet.GestureEvent) {
		count2++
	})

	sink.EmitEvent(deskpet.GestureEvent{Type: deskpet.GestureDragStart})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

// Events arrive in publish order.
func TestDonburiSinkPreservesOrder(t *testing.T) {
	world := donburi.NewWorld()
	var got []deskpet.GestureType
	GestureEventType.Subscribe(world, func(w donburi.World, e deskpet.GestureEvent) {
		got = append(got, e.Type)
	})

	sink := NewDonburiSink(world)
	sink.EmitEvent(deskpet.GestureEvent{Type: deskpet.GestureDragStart})
	sink.EmitEvent(deskpet.GestureEvent{Type: deskpet.GestureDrag})
	sink.EmitEvent(deskpet.GestureEvent{Type: deskpet.GestureDrop})
	GestureEventType.ProcessEvents(world)

	want := []deskpet.GestureType{deskpet.GestureDragStart, deskpet.GestureDrag, deskpet.GestureDrop}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}
