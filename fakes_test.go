package deskpet

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"
)

var discard = log.New(io.Discard, "", 0)

// --- canvas / surface ---

type fakeSurface struct {
	width, height int
	scale         float64
	pos           Vec2
	moves         []Vec2

	clears int
	drawn  []Frame

	subs []fakeSub
}

type fakeSub struct {
	ctx context.Context
	t   EventType
	fn  func(PointerEvent)
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{width: 500, height: 500, scale: 0.5, pos: Vec2{1000, 1000}}
}

func (s *fakeSurface) Clear() { s.clears++ }
func (s *fakeSurface) DrawScaledCentered(f Frame) { s.drawn = append(s.drawn, f) }
func (s *fakeSurface) Size() (int, int) { return s.width, s.height }
func (s *fakeSurface) Scale() float64 { return s.scale }
func (s *fakeSurface) Position() Vec2 { return s.pos }
func (s *fakeSurface) SetPosition(p Vec2) { s.pos = p; s.moves = append(s.moves, p) }
func (s *fakeSurface) Subscribe(ctx context.Context, t EventType, fn func(PointerEvent)) {
	s.subs = append(s.subs, fakeSub{ctx: ctx, t: t, fn: fn})
}

// live counts subscriptions whose context is still alive.
func (s *fakeSurface) live() int {
	n := 0
	for _, sub := range s.subs {
		if sub.ctx.Err() == nil {
			n++
		}
	}
	return n
}

// emit delivers ev to live subscribers of its type. Local coordinates are
// derived from the screen position, scale and placement.
func (s *fakeSurface) emit(t EventType, screenX, screenY float64) {
	local := Vec2{screenX, screenY}.Sub(s.pos).Scale(1 / s.scale)
	ev := PointerEvent{Type: t, LocalX: local.X, LocalY: local.Y, ScreenX: screenX, ScreenY: screenY}
	for _, sub := range append([]fakeSub(nil), s.subs...) {
		if sub.t == t && sub.ctx.Err() == nil {
			sub.fn(ev)
		}
	}
}

// emitLocal delivers an event at surface-local coordinates.
func (s *fakeSurface) emitLocal(t EventType, x, y float64) {
	screen := s.pos.Add(Vec2{x, y}.Scale(s.scale))
	s.emit(t, screen.X, screen.Y)
}

type boundedSurface struct {
	*fakeSurface
	area Rect
}

func (s boundedSurface) WorkArea() Rect { return s.area }

type fakeCanvas struct {
	clears int
	drawn  []Frame
}

func (c *fakeCanvas) Clear() { c.clears++ }
func (c *fakeCanvas) DrawScaledCentered(f Frame) { c.drawn = append(c.drawn, f) }

// --- bridge ---

type ignoreCall struct {
	ignore bool
	opts   ForwardOptions
}

type fakeBridge struct {
	calls []ignoreCall
}

func (b *fakeBridge) SetIgnoreMouseEvent(ignore bool, opts ForwardOptions) {
	b.calls = append(b.calls, ignoreCall{ignore, opts})
}

func (b *fakeBridge) ListAssets(context.Context, string) ([]string, error) {
	return nil, nil
}

// --- scheduler / timers ---

type fakeScheduler struct {
	next    FrameID
	pending map[FrameID]func(time.Duration)
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: make(map[FrameID]func(time.Duration))}
}

func (s *fakeScheduler) RequestFrame(fn func(time.Duration)) FrameID {
	s.next++
	s.pending[s.next] = fn
	return s.next
}

func (s *fakeScheduler) CancelFrame(id FrameID) { delete(s.pending, id) }

// run invokes every pending callback once with now.
func (s *fakeScheduler) run(now time.Duration) {
	pending := s.pending
	s.pending = make(map[FrameID]func(time.Duration))
	for _, fn := range pending {
		fn(now)
	}
}

type fakeTimer struct {
	ctx context.Context
	d   time.Duration
	fn  func()
}

type fakeTimers struct {
	armed []fakeTimer
}

func (t *fakeTimers) AfterFunc(ctx context.Context, d time.Duration, fn func()) {
	t.armed = append(t.armed, fakeTimer{ctx, d, fn})
}

// fire runs every timer whose context is alive and forgets all of them.
func (t *fakeTimers) fire() {
	armed := t.armed
	t.armed = nil
	for _, tm := range armed {
		if tm.ctx.Err() == nil {
			tm.fn()
		}
	}
}

func (t *fakeTimers) live() int {
	n := 0
	for _, tm := range t.armed {
		if tm.ctx.Err() == nil {
			n++
		}
	}
	return n
}

// --- image source ---

type fakeSource struct {
	mu     sync.Mutex
	frames map[string]Frame
	fail   map[string]error
	calls  []string
}

func (s *fakeSource) LoadFrame(ctx context.Context, location string) (Frame, error) {
	s.mu.Lock()
	s.calls = append(s.calls, location)
	s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	if err, ok := s.fail[location]; ok {
		return Frame{}, err
	}
	if f, ok := s.frames[location]; ok {
		return f, nil
	}
	return Frame{Width: len(location), Height: 1}, nil
}

// --- helpers ---

// clipOf builds a clip of n placeholder frames; frame i is i+1 pixels wide so
// tests can tell frames apart.
func clipOf(name string, n int) *Clip {
	c := &Clip{Name: name}
	for i := range n {
		c.Frames = append(c.Frames, Frame{Width: i + 1, Height: 1})
	}
	return c
}

func registryWith(clips ...*Clip) *Registry {
	r := NewRegistry()
	for _, c := range clips {
		r.Register(c)
	}
	return r
}

type petRig struct {
	pet     *Pet
	surface *fakeSurface
	bridge  *fakeBridge
	sched   *fakeScheduler
	timers  *fakeTimers
	sink    *recordingSink
}

type recordingSink struct{ events []GestureEvent }

func (s *recordingSink) EmitEvent(ev GestureEvent) { s.events = append(s.events, ev) }

func (s *recordingSink) types() []string {
	out := make([]string, len(s.events))
	for i, ev := range s.events {
		out[i] = fmt.Sprint(ev.Type)
	}
	return out
}

// newPetRig builds a started-ready Pet with every gesture clip registered.
// surface may wrap the fake (e.g. boundedSurface); nil uses the fake directly.
func newPetRig(wrap func(*fakeSurface) Surface) *petRig {
	rig := &petRig{
		surface: newFakeSurface(),
		bridge:  &fakeBridge{},
		sched:   newFakeScheduler(),
		timers:  &fakeTimers{},
		sink:    &recordingSink{},
	}
	var surface Surface = rig.surface
	if wrap != nil {
		surface = wrap(rig.surface)
	}
	host := Host{Surface: surface, Bridge: rig.bridge, Scheduler: rig.sched, Timers: rig.timers}
	rig.pet = New(host, &fakeSource{}, Config{Logger: discard})
	for _, c := range []*Clip{
		clipOf(IdleClip, 4),
		clipOf(ClipRise, 3),
		clipOf(ClipDown, 3),
		clipOf(ClipTouchHead, 3),
		clipOf(ClipTouchBody1, 3),
		clipOf(ClipTouchBody2, 3),
	} {
		rig.pet.Registry().Register(c)
	}
	rig.pet.SetEventSink(rig.sink)
	return rig
}

func (r *petRig) current() (string, bool) {
	name, loop, _ := r.pet.Player().Current()
	return name, loop
}
