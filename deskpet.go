package deskpet

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Vec2 is a 2D vector used for positions and offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Frame is one decoded image of a clip. Frames are immutable once loaded.
type Frame struct {
	Image  *ebiten.Image
	Width  int
	Height int
}

// Clip is a named, ordered sequence of frames. The loop flag is chosen per
// activation, see PlayOptions.
type Clip struct {
	Name   string
	Frames []Frame
}

// EventType identifies a kind of raw pointer event.
type EventType uint8

const (
	EventPointerDown  EventType = iota // a pointer button was pressed over the surface
	EventPointerUp                     // a pointer button was released
	EventPointerMove                   // the pointer moved, anywhere on screen
	EventPointerEnter                  // the pointer entered the character's artwork
	EventPointerLeave                  // the pointer left the character's artwork
)

func (t EventType) String() string {
	switch t {
	case EventPointerDown:
		return "down"
	case EventPointerUp:
		return "up"
	case EventPointerMove:
		return "move"
	case EventPointerEnter:
		return "enter"
	case EventPointerLeave:
		return "leave"
	}
	return "unknown"
}

// PointerEvent carries one raw pointer event. Local coordinates are relative
// to the surface's top-left corner in untransformed surface pixels; screen
// coordinates are desktop pixels.
type PointerEvent struct {
	Type    EventType
	LocalX  float64
	LocalY  float64
	ScreenX float64
	ScreenY float64
}

// Local returns the surface-local position of the event.
func (e PointerEvent) Local() Vec2 { return Vec2{e.LocalX, e.LocalY} }

// Screen returns the screen position of the event.
func (e PointerEvent) Screen() Vec2 { return Vec2{e.ScreenX, e.ScreenY} }

// ForwardOptions controls what the host does with pointer events while the
// surface ignores them.
type ForwardOptions struct {
	// Forward keeps move events flowing to the surface so it can notice the
	// pointer coming back over the artwork.
	Forward bool
}

// Bridge is the host-window capability the engine toggles pass-through on.
type Bridge interface {
	SetIgnoreMouseEvent(ignore bool, opts ForwardOptions)
	ListAssets(ctx context.Context, folder string) ([]string, error)
}

// Canvas is the drawing half of a Surface.
type Canvas interface {
	Clear()
	DrawScaledCentered(f Frame)
}

// Surface is the transparent rendering surface the character lives on.
//
// Subscribe registers fn for events of type t until ctx is canceled. A
// canceled subscription must never be invoked again.
type Surface interface {
	Canvas
	Size() (width, height int)
	// Scale is the visual scale factor between surface pixels and screen pixels.
	Scale() float64
	Position() Vec2
	SetPosition(p Vec2)
	Subscribe(ctx context.Context, t EventType, fn func(PointerEvent))
}

// WorkAreaProvider is implemented by surfaces that know the screen area the
// character should stay inside.
type WorkAreaProvider interface {
	WorkArea() Rect
}

// FrameID identifies a requested frame callback.
type FrameID uint64

// Scheduler is the host's per-frame callback, in the style of
// requestAnimationFrame. now is a monotonic timestamp.
type Scheduler interface {
	RequestFrame(fn func(now time.Duration)) FrameID
	CancelFrame(id FrameID)
}

// Timers schedules one-shot callbacks on the host's event thread. fn must not
// run once ctx is canceled, and runs at most once.
type Timers interface {
	AfterFunc(ctx context.Context, d time.Duration, fn func())
}

// Host bundles the collaborators a Pet is built on.
type Host struct {
	Surface   Surface
	Bridge    Bridge
	Scheduler Scheduler
	Timers    Timers
}
