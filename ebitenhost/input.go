package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/deskpet"
)

// pointerState is the per-frame pointer bookkeeping that edge detection and
// enter/leave need.
type pointerState struct {
	seen   bool
	down   bool
	over   bool
	screen deskpet.Vec2
}

// processInput feeds one injected event if any are queued, otherwise polls
// the real mouse.
func (h *Host) processInput() {
	if h.processInjectedInput() {
		return
	}
	if !h.live {
		return
	}
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	h.processPointer(h.localToScreen(float64(mx), float64(my)), pressed)
}

// processPointer derives enter/leave, move, down and up events from one
// pointer sample in screen pixels.
func (h *Host) processPointer(screen deskpet.Vec2, pressed bool) {
	ps := &h.pointer

	over := h.overArtwork(h.screenToLocal(screen))
	if over != ps.over {
		ps.over = over
		if over {
			h.fire(deskpet.EventPointerEnter, screen)
		} else {
			h.fire(deskpet.EventPointerLeave, screen)
		}
	}

	if !ps.seen || screen != ps.screen {
		ps.seen = true
		ps.screen = screen
		h.fire(deskpet.EventPointerMove, screen)
	}

	switch {
	case pressed && !ps.down:
		// Presses outside the surface belong to whatever is beneath it.
		if h.insideSurface(h.screenToLocal(screen)) {
			ps.down = true
			h.fire(deskpet.EventPointerDown, screen)
		}
	case !pressed && ps.down:
		ps.down = false
		h.fire(deskpet.EventPointerUp, screen)
	}
}

// fire delivers an event at screen position p. Local coordinates are taken
// against the current placement, which an earlier handler may have moved.
func (h *Host) fire(t deskpet.EventType, p deskpet.Vec2) {
	local := h.screenToLocal(p)
	ev := deskpet.PointerEvent{Type: t, LocalX: local.X, LocalY: local.Y, ScreenX: p.X, ScreenY: p.Y}
	// Copy: a handler may subscribe or cancel while we iterate.
	subs := append([]subscription(nil), h.prune(t)...)
	for _, s := range subs {
		if s.ctx.Err() == nil {
			s.fn(ev)
		}
	}
}

func (h *Host) localToScreen(x, y float64) deskpet.Vec2 {
	return h.position.Add(deskpet.Vec2{X: x, Y: y}.Scale(h.cfg.Scale))
}

func (h *Host) screenToLocal(p deskpet.Vec2) deskpet.Vec2 {
	return p.Sub(h.position).Scale(1 / h.cfg.Scale)
}

func (h *Host) insideSurface(local deskpet.Vec2) bool {
	return local.X >= 0 && local.Y >= 0 &&
		local.X < float64(h.cfg.Width) && local.Y < float64(h.cfg.Height)
}

// overArtwork reports whether local lies on the drawn frame. Once the window
// is live, fully transparent pixels do not count.
func (h *Host) overArtwork(local deskpet.Vec2) bool {
	d := h.drawn
	if !d.ok {
		return false
	}
	fx := (local.X - d.x) / d.scal
	fy := (local.Y - d.y) / d.scal
	if fx < 0 || fy < 0 || fx >= float64(d.frame.Width) || fy >= float64(d.frame.Height) {
		return false
	}
	if !h.live || d.frame.Image == nil {
		return true
	}
	_, _, _, a := d.frame.Image.At(int(fx), int(fy)).RGBA()
	return a > 0
}
