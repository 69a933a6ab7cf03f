package deskpet

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// SettleDuration is how long a dropped surface takes to ease back into the
// work area.
const SettleDuration = 250 * time.Millisecond

// settleTween eases the surface placement from one point to another. It is
// advanced by the render tick; there is no timer of its own.
type settleTween struct {
	x, y    *gween.Tween
	surface Surface
	Done    bool
}

func newSettleTween(s Surface, from, to Vec2, d time.Duration) *settleTween {
	secs := float32(d.Seconds())
	return &settleTween{
		x:       gween.New(float32(from.X), float32(to.X), secs, ease.OutCubic),
		y:       gween.New(float32(from.Y), float32(to.Y), secs, ease.OutCubic),
		surface: s,
	}
}

// Update advances the tween by dt and moves the surface.
func (t *settleTween) Update(dt time.Duration) {
	if t.Done {
		return
	}
	secs := float32(dt.Seconds())
	x, doneX := t.x.Update(secs)
	y, doneY := t.y.Update(secs)
	t.surface.SetPosition(Vec2{X: float64(x), Y: float64(y)})
	t.Done = doneX && doneY
}

// clampInto returns the placement closest to pos that keeps a box of the
// given size inside area. A box larger than the area is aligned to its
// top-left corner.
func clampInto(pos, size Vec2, area Rect) Vec2 {
	clamp := func(v, extent, lo, span float64) float64 {
		if extent >= span {
			return lo
		}
		return min(max(v, lo), lo+span-extent)
	}
	return Vec2{
		X: clamp(pos.X, size.X, area.X, area.Width),
		Y: clamp(pos.Y, size.Y, area.Y, area.Height),
	}
}
