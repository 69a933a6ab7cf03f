package ebitenhost

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	// Title is the window title, shown by task switchers.
	Title string
	// Decorated keeps the OS title bar and border. A desktop pet usually
	// runs without them.
	Decorated bool
	// ShowInTaskbar lists the window in the taskbar.
	ShowInTaskbar bool
}

// Run opens a transparent, floating window sized to the surface and blocks
// until it closes.
func Run(h *Host, cfg RunConfig) error {
	w := int(math.Ceil(float64(h.cfg.Width) * h.cfg.Scale))
	hh := int(math.Ceil(float64(h.cfg.Height) * h.cfg.Scale))

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, hh)
	ebiten.SetWindowDecorated(cfg.Decorated)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowPosition(int(math.Round(h.position.X)), int(math.Round(h.position.Y)))
	ebiten.SetWindowMousePassthrough(h.passthrough)
	ebiten.SetRunnableOnUnfocused(true)

	h.live = true
	defer func() { h.live = false }()

	return ebiten.RunGameWithOptions(h, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       !cfg.ShowInTaskbar,
	})
}
