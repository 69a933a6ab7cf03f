package deskpet

import (
	"context"
	"log"
	"math"
	"time"
)

const (
	// DefaultLongPress is how long the body must be held before a drag starts.
	DefaultLongPress = 500 * time.Millisecond

	// DefaultMoveTolerance is how far, in screen pixels, the pointer may wander
	// during a long press before the press is abandoned.
	DefaultMoveTolerance = 4.0
)

// Clip names the gesture controller switches to.
const (
	ClipRise       = "rise"
	ClipDown       = "down"
	ClipTouchHead  = "touchHead"
	ClipTouchBody1 = "touchBody1"
	ClipTouchBody2 = "touchBody2"
)

type gestureState uint8

const (
	gestureIdle gestureState = iota
	gesturePressPending
	gestureDragging
)

func (s gestureState) String() string {
	switch s {
	case gestureIdle:
		return "idle"
	case gesturePressPending:
		return "press-pending"
	case gestureDragging:
		return "dragging"
	}
	return "unknown"
}

type inputKind uint8

const (
	inputDown inputKind = iota
	inputUp
	inputMove
	inputEnter
	inputLeave
	inputLongPress
)

type gestureInput struct {
	kind inputKind
	ev   PointerEvent
	seq  uint64 // press sequence a long-press fire belongs to
}

// dragSession exists only while dragging.
type dragSession struct {
	anchorScreen Vec2 // pointer screen position when the drag started
	origin       Vec2 // surface placement when the drag started
}

// Gestures turns raw pointer events into taps, drags and drops, and toggles
// host pass-through on enter/leave. It is driven from the host's event
// thread only.
type Gestures struct {
	player    *Player
	surface   Surface
	bridge    Bridge
	timers    Timers
	anatomy   Anatomy
	longPress time.Duration
	tolerance float64
	coin      func() bool
	logger    *log.Logger
	sink      EventSink

	ctx   context.Context
	state gestureState

	// tapArmed is set by a press over the surface that did not start a long
	// press; the matching release is still a tap.
	tapArmed    bool
	pressSeq    uint64
	pressCancel context.CancelFunc
	pressLocal  Vec2
	pressScreen Vec2
	lastScreen  Vec2

	drag   dragSession
	rest   Vec2
	settle *settleTween
}

// Handle feeds one raw pointer event through the state machine.
func (g *Gestures) Handle(ev PointerEvent) {
	var kind inputKind
	switch ev.Type {
	case EventPointerDown:
		kind = inputDown
	case EventPointerUp:
		kind = inputUp
	case EventPointerMove:
		kind = inputMove
	case EventPointerEnter:
		kind = inputEnter
	case EventPointerLeave:
		kind = inputLeave
	default:
		return
	}
	g.dispatch(gestureInput{kind: kind, ev: ev})
}

func (g *Gestures) dispatch(in gestureInput) {
	g.state = g.transition(g.state, in)
}

// transition applies in to state s, performs the side effects and returns the
// next state.
func (g *Gestures) transition(s gestureState, in gestureInput) gestureState {
	switch in.kind {
	case inputEnter:
		g.bridge.SetIgnoreMouseEvent(false, ForwardOptions{})
		return s
	case inputLeave:
		g.bridge.SetIgnoreMouseEvent(true, ForwardOptions{Forward: true})
		return s
	case inputMove, inputDown, inputUp:
		g.lastScreen = in.ev.Screen()
	}

	switch s {
	case gestureIdle:
		switch in.kind {
		case inputDown:
			g.settle = nil
			if g.anatomy.Regions.Classify(in.ev.LocalX, in.ev.LocalY) == RegionBody {
				g.armLongPress(in.ev)
				return gesturePressPending
			}
			g.tapArmed = true
		case inputUp:
			if g.tapArmed {
				g.tapArmed = false
				g.tap(in.ev)
			}
		}
		return gestureIdle

	case gesturePressPending:
		switch in.kind {
		case inputLongPress:
			if in.seq != g.pressSeq {
				return s
			}
			g.disarmLongPress()
			g.promote()
			return gestureDragging
		case inputUp:
			g.disarmLongPress()
			g.tap(in.ev)
			return gestureIdle
		case inputMove:
			if g.tolerance > 0 && distance(in.ev.Screen(), g.pressScreen) > g.tolerance {
				g.disarmLongPress()
				return gestureIdle
			}
		}
		return s

	case gestureDragging:
		switch in.kind {
		case inputMove:
			g.dragTo(in.ev.Screen())
		case inputUp:
			g.drop(in.ev)
			return gestureIdle
		}
		return s
	}
	return s
}

func (g *Gestures) armLongPress(ev PointerEvent) {
	g.disarmLongPress()
	g.tapArmed = false
	g.pressSeq++
	g.pressLocal = ev.Local()
	g.pressScreen = ev.Screen()

	parent := g.ctx
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	g.pressCancel = cancel
	seq := g.pressSeq
	g.timers.AfterFunc(ctx, g.longPress, func() {
		g.dispatch(gestureInput{kind: inputLongPress, seq: seq})
	})
}

func (g *Gestures) disarmLongPress() {
	if g.pressCancel != nil {
		g.pressCancel()
		g.pressCancel = nil
	}
}

func (g *Gestures) promote() {
	g.play(ClipRise, PlayOptions{ApplyNow: true, Loop: true})

	offset := g.pressLocal.Sub(g.anatomy.RisePoint).Scale(g.surface.Scale())
	origin := g.surface.Position().Add(offset)
	g.surface.SetPosition(origin)
	g.drag = dragSession{anchorScreen: g.lastScreen, origin: origin}

	g.emit(GestureEvent{
		Type: GestureDragStart, Region: RegionBody, Clip: ClipRise,
		ScreenX: g.lastScreen.X, ScreenY: g.lastScreen.Y, Position: origin,
	})
}

func (g *Gestures) dragTo(screen Vec2) {
	pos := g.drag.origin.Add(screen.Sub(g.drag.anchorScreen))
	g.surface.SetPosition(pos)
	g.emit(GestureEvent{Type: GestureDrag, ScreenX: screen.X, ScreenY: screen.Y, Position: pos})
}

func (g *Gestures) drop(ev PointerEvent) {
	g.play(ClipDown, PlayOptions{ApplyNow: true})
	g.rest = g.surface.Position()
	g.drag = dragSession{}

	if wa, ok := g.surface.(WorkAreaProvider); ok {
		w, h := g.surface.Size()
		size := Vec2{float64(w), float64(h)}.Scale(g.surface.Scale())
		if target := clampInto(g.rest, size, wa.WorkArea()); target != g.rest {
			g.settle = newSettleTween(g.surface, g.rest, target, SettleDuration)
			g.rest = target
		}
	}

	g.emit(GestureEvent{
		Type: GestureDrop, Clip: ClipDown,
		ScreenX: ev.ScreenX, ScreenY: ev.ScreenY, Position: g.rest,
	})
}

func (g *Gestures) tap(ev PointerEvent) {
	region := g.anatomy.Regions.Classify(ev.LocalX, ev.LocalY)
	var clip string
	switch region {
	case RegionPinch, RegionHead:
		clip = ClipTouchHead
	case RegionBody:
		clip = ClipTouchBody2
		if g.coin() {
			clip = ClipTouchBody1
		}
	default:
		return
	}
	g.play(clip, PlayOptions{ApplyNow: true})
	g.emit(GestureEvent{
		Type: GestureTap, Region: region, Clip: clip,
		ScreenX: ev.ScreenX, ScreenY: ev.ScreenY, Position: g.surface.Position(),
	})
}

// play switches clips; an unknown clip is logged and otherwise ignored.
func (g *Gestures) play(name string, opts PlayOptions) {
	if err := g.player.SetAnimation(name, opts); err != nil {
		g.logger.Printf("deskpet: gesture: %v", err)
	}
}

func (g *Gestures) emit(ev GestureEvent) {
	if g.sink != nil {
		g.sink.EmitEvent(ev)
	}
}

// advance steps time-driven gesture effects. Called from the render tick.
func (g *Gestures) advance(dt time.Duration) {
	if g.settle == nil {
		return
	}
	g.settle.Update(dt)
	if g.settle.Done {
		g.settle = nil
	}
}

// reset abandons any press or drag in progress. A held character is put
// down where it is.
func (g *Gestures) reset() {
	if g.state == gestureDragging {
		g.play(ClipDown, PlayOptions{ApplyNow: true})
		g.rest = g.surface.Position()
	}
	g.disarmLongPress()
	g.state = gestureIdle
	g.tapArmed = false
	g.drag = dragSession{}
	g.settle = nil
}

// RestPosition is the surface placement the last drop left the character at.
func (g *Gestures) RestPosition() Vec2 { return g.rest }

func distance(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
