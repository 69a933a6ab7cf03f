package deskpet

// GestureType identifies a semantic gesture recognized from raw pointer input.
type GestureType uint8

const (
	GestureTap       GestureType = iota // press and release before the long press fires
	GestureDragStart                    // long press promoted to a drag
	GestureDrag                         // surface moved while dragging
	GestureDrop                         // pointer released while dragging
)

func (t GestureType) String() string {
	switch t {
	case GestureTap:
		return "tap"
	case GestureDragStart:
		return "drag-start"
	case GestureDrag:
		return "drag"
	case GestureDrop:
		return "drop"
	}
	return "unknown"
}

// GestureEvent carries a recognized gesture to an EventSink.
type GestureEvent struct {
	Type    GestureType
	Region  Region // region under the pointer; RegionNone for drags
	Clip    string // clip the gesture switched to, empty if none
	ScreenX float64
	ScreenY float64
	// Position is the surface placement after the gesture.
	Position Vec2
}

// EventSink receives gesture events, for example to feed an ECS world.
type EventSink interface {
	EmitEvent(event GestureEvent)
}
