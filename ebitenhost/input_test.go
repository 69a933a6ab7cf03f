package ebitenhost

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/phanxgames/deskpet"
)

type recorder struct {
	events []deskpet.PointerEvent
}

func (r *recorder) subscribe(h *Host, ctx context.Context) {
	for _, t := range []deskpet.EventType{
		deskpet.EventPointerEnter, deskpet.EventPointerLeave,
		deskpet.EventPointerDown, deskpet.EventPointerMove, deskpet.EventPointerUp,
	} {
		h.Subscribe(ctx, t, func(ev deskpet.PointerEvent) { r.events = append(r.events, ev) })
	}
}

func (r *recorder) types() []string {
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type.String()
	}
	return out
}

func hostWithArtwork(t *testing.T) (*Host, *recorder) {
	t.Helper()
	h := newTestHost(&testClock{})
	// A 400x400 frame fills the 500x500 surface at scale 1.25.
	h.DrawScaledCentered(deskpet.Frame{Width: 400, Height: 400})
	r := &recorder{}
	r.subscribe(h, context.Background())
	return h, r
}

func TestInjectClick(t *testing.T) {
	h, r := hostWithArtwork(t)

	h.InjectClick(250, 300)
	if len(h.injectQueue) != 2 {
		t.Fatalf("queued = %d, want 2", len(h.injectQueue))
	}

	_ = h.Update()
	if want := []string{"enter", "move", "down"}; !slices.Equal(r.types(), want) {
		t.Fatalf("frame 1 events = %v, want %v", r.types(), want)
	}
	_ = h.Update()
	if got := r.types(); got[len(got)-1] != "up" {
		t.Errorf("frame 2 events = %v, want trailing up", got)
	}

	down := r.events[2]
	if down.LocalX != 250 || down.LocalY != 300 {
		t.Errorf("local = (%v, %v), want (250, 300)", down.LocalX, down.LocalY)
	}
	if down.ScreenX != 1125 || down.ScreenY != 1150 {
		t.Errorf("screen = (%v, %v), want (1125, 1150)", down.ScreenX, down.ScreenY)
	}
}

func TestPointerLeaveAndOutsidePress(t *testing.T) {
	h, r := hostWithArtwork(t)

	h.InjectHover(250, 250)
	h.InjectPress(-20, 250)
	h.InjectRelease(-20, 250)
	for range 3 {
		_ = h.Update()
	}
	want := []string{"enter", "move", "leave", "move"}
	if !slices.Equal(r.types(), want) {
		t.Errorf("events = %v, want %v", r.types(), want)
	}
}

func TestArtworkBounds(t *testing.T) {
	h := newTestHost(&testClock{})
	// A wide frame letterboxed into the surface: 500x250 at y=125.
	h.DrawScaledCentered(deskpet.Frame{Width: 1000, Height: 500})
	tests := []struct {
		x, y float64
		want bool
	}{
		{250, 250, true},
		{250, 125, true},
		{250, 124, false},
		{250, 375, false},
		{0, 200, true},
	}
	for _, tt := range tests {
		if got := h.overArtwork(deskpet.Vec2{X: tt.x, Y: tt.y}); got != tt.want {
			t.Errorf("overArtwork(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
	h.Clear()
	if h.overArtwork(deskpet.Vec2{X: 250, Y: 250}) {
		t.Error("cleared canvas reported artwork")
	}
}

func TestInjectDragFollowsMovingWindow(t *testing.T) {
	h, r := hostWithArtwork(t)
	// Move the window with the pointer the way a drag controller does.
	var anchor, origin deskpet.Vec2
	h.Subscribe(context.Background(), deskpet.EventPointerDown, func(ev deskpet.PointerEvent) {
		anchor, origin = ev.Screen(), h.Position()
	})
	h.Subscribe(context.Background(), deskpet.EventPointerMove, func(ev deskpet.PointerEvent) {
		if h.pointer.down {
			h.SetPosition(origin.Add(ev.Screen().Sub(anchor)))
		}
	})

	h.InjectDrag(100, 100, 300, 100, 5)
	for range 5 {
		_ = h.Update()
	}
	// 200 surface pixels at scale 0.5.
	if got := h.Position(); got != (deskpet.Vec2{X: 1100, Y: 1000}) {
		t.Errorf("Position = %v, want {1100 1000}", got)
	}
	// The window followed the cursor, so it is still over the grab point.
	last := r.events[len(r.events)-1]
	if last.Type != deskpet.EventPointerUp || last.LocalX != 100 {
		t.Errorf("release = %+v, want up at local x 100", last)
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	h := newTestHost(&testClock{})
	h.InjectDrag(0, 0, 10, 10, 0)
	if len(h.injectQueue) != 2 {
		t.Errorf("queued = %d, want 2", len(h.injectQueue))
	}
}

// A Pet driven end to end through the host: long press, drag, release.
func TestPetOnHost(t *testing.T) {
	clock := &testClock{}
	h := newTestHost(clock)
	pet := deskpet.New(h.Collaborators(), nil, deskpet.Config{Logger: discard})
	for _, name := range []string{deskpet.IdleClip, deskpet.ClipRise, deskpet.ClipDown} {
		pet.Registry().Register(&deskpet.Clip{Name: name, Frames: []deskpet.Frame{
			{Width: 500, Height: 500}, {Width: 500, Height: 500},
		}})
	}
	pet.Start()
	h.SetIgnoreMouseEvent(true, deskpet.ForwardOptions{Forward: true})
	_ = h.Update()

	current := func() string {
		name, _, _ := pet.Player().Current()
		return name
	}

	h.InjectPress(250, 300)
	clock.now = 16 * time.Millisecond
	_ = h.Update()
	if h.Passthrough() {
		t.Error("pass-through still on over the artwork")
	}

	clock.now = 600 * time.Millisecond
	_ = h.Update()
	if current() != deskpet.ClipRise {
		t.Fatalf("active = %q after long press, want rise", current())
	}
	lifted := h.Position()

	// The physical cursor stayed put while the window lifted; nudge it
	// 25 screen pixels right.
	cursor := deskpet.Vec2{X: 1125 + 25, Y: 1150}
	local := cursor.Sub(lifted).Scale(1 / h.Scale())
	h.InjectMove(local.X, local.Y)
	h.InjectRelease(local.X, local.Y)
	clock.now = 616 * time.Millisecond
	_ = h.Update()
	if got := h.Position(); got != lifted.Add(deskpet.Vec2{X: 25}) {
		t.Errorf("Position = %v, want %v", got, lifted.Add(deskpet.Vec2{X: 25}))
	}

	clock.now = 632 * time.Millisecond
	_ = h.Update()
	if current() != deskpet.ClipDown {
		t.Errorf("active = %q after release, want down", current())
	}

	pet.Stop()
	if n := h.Subscriptions(); n != 0 {
		t.Errorf("subscriptions after Stop = %d", n)
	}
}
