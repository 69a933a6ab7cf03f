package ebitenhost

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugText is the overlay drawn in the top-left corner when Config.Debug is
// set.
func (h *Host) debugText() string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\npass-through: %v\nsubs: %d timers: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), h.passthrough, h.Subscriptions(), h.PendingTimers())
}

func (h *Host) drawDebug(screen *ebiten.Image) {
	if !h.cfg.Debug {
		return
	}
	ebitenutil.DebugPrint(screen, h.debugText())
}
