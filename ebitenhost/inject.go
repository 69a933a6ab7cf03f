package ebitenhost

import "github.com/phanxgames/deskpet"

// syntheticPointerEvent is one injected pointer sample. The position is
// stored in screen pixels, resolved from surface coordinates when queued, so
// a drag that moves the window behaves like a physical cursor.
type syntheticPointerEvent struct {
	screen  deskpet.Vec2
	pressed bool
}

// InjectPress queues a left-button press at surface coordinates (x, y). The
// event is consumed on the next Update.
func (h *Host) InjectPress(x, y float64) {
	h.inject(x, y, true)
}

// InjectMove queues a pointer move with the button held. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (h *Host) InjectMove(x, y float64) {
	h.inject(x, y, true)
}

// InjectHover queues a pointer move with the button up.
func (h *Host) InjectHover(x, y float64) {
	h.inject(x, y, false)
}

// InjectRelease queues a left-button release at surface coordinates (x, y).
func (h *Host) InjectRelease(x, y float64) {
	h.inject(x, y, false)
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (h *Host) InjectClick(x, y float64) {
	h.InjectPress(x, y)
	h.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves
// and a release at (toX, toY). Minimum frames is 2.
func (h *Host) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	h.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		h.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	h.InjectRelease(toX, toY)
}

func (h *Host) inject(x, y float64, pressed bool) {
	h.injectQueue = append(h.injectQueue, syntheticPointerEvent{
		screen:  h.localToScreen(x, y),
		pressed: pressed,
	})
}

// processInjectedInput pops one queued event and feeds it through
// processPointer. It reports whether real input should be skipped.
func (h *Host) processInjectedInput() bool {
	if len(h.injectQueue) == 0 {
		return false
	}
	evt := h.injectQueue[0]
	copy(h.injectQueue, h.injectQueue[1:])
	h.injectQueue = h.injectQueue[:len(h.injectQueue)-1]

	h.processPointer(evt.screen, evt.pressed)
	return true
}
