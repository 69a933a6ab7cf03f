package ebitenhost

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/deskpet"
)

// unboundedArea is the work area reported when neither a configured area nor
// a live monitor is available.
var unboundedArea = deskpet.Rect{X: -1 << 30, Y: -1 << 30, Width: 1 << 31, Height: 1 << 31}

// Config describes the surface a Host provides.
type Config struct {
	// Width and Height are the surface size in surface pixels.
	Width, Height int
	// Scale is the visual scale between surface pixels and screen pixels
	// (default 1).
	Scale float64
	// Position is the initial window placement in screen pixels.
	Position deskpet.Vec2
	// WorkArea bounds where a dropped character settles. Zero means the
	// current monitor.
	WorkArea deskpet.Rect
	// Assets backs Bridge.ListAssets.
	Assets fs.FS
	// ScreenshotDir is where Screenshot writes PNGs (default "screenshots").
	ScreenshotDir string
	// Clock returns a monotonic timestamp. Defaults to time since New.
	Clock func() time.Duration
	// Logger receives host diagnostics (log.Default()).
	Logger *log.Logger
	// Debug draws an FPS and input-state overlay. Screenshots are taken
	// before it is drawn.
	Debug bool
}

type subscription struct {
	ctx context.Context
	fn  func(deskpet.PointerEvent)
}

type frameRequest struct {
	id deskpet.FrameID
	fn func(now time.Duration)
}

type timer struct {
	due time.Duration
	ctx context.Context
	fn  func()
}

// placement of the last drawn frame on the canvas, used for artwork hit tests.
type drawnFrame struct {
	frame      deskpet.Frame
	x, y, scal float64
	ok         bool
}

// Host is an Ebitengine window that implements every collaborator a
// deskpet.Pet needs, and ebiten.Game. All methods except Post must be called
// from the game goroutine.
type Host struct {
	cfg    Config
	logger *log.Logger
	start  time.Time
	now    time.Duration
	live   bool

	canvas *ebiten.Image
	drawn  drawnFrame

	position    deskpet.Vec2
	passthrough bool

	subs      map[deskpet.EventType][]subscription
	frames    []frameRequest
	nextFrame deskpet.FrameID
	timers    []timer

	postMu sync.Mutex
	posted []func()

	pointer         pointerState
	injectQueue     []syntheticPointerEvent
	runner          *ScriptRunner
	screenshotQueue []string
}

// New creates a Host. The window is not opened until Run.
func New(cfg Config) *Host {
	if cfg.Width <= 0 {
		cfg.Width = 1
	}
	if cfg.Height <= 0 {
		cfg.Height = 1
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	h := &Host{
		cfg:      cfg,
		logger:   cfg.Logger,
		start:    time.Now(),
		canvas:   ebiten.NewImage(cfg.Width, cfg.Height),
		position: cfg.Position,
		subs:     make(map[deskpet.EventType][]subscription),
	}
	if h.cfg.Clock == nil {
		h.cfg.Clock = func() time.Duration { return time.Since(h.start) }
	}
	return h
}

// Collaborators returns the Host wired into every deskpet.Host slot.
func (h *Host) Collaborators() deskpet.Host {
	return deskpet.Host{Surface: h, Bridge: h, Scheduler: h, Timers: h}
}

// --- Surface ---

// Clear implements deskpet.Canvas.
func (h *Host) Clear() {
	h.canvas.Clear()
	h.drawn = drawnFrame{}
}

// DrawScaledCentered implements deskpet.Canvas.
func (h *Host) DrawScaledCentered(f deskpet.Frame) {
	scale, x, y := deskpet.FitCentered(float64(f.Width), float64(f.Height),
		float64(h.cfg.Width), float64(h.cfg.Height))
	if scale == 0 {
		return
	}
	h.drawn = drawnFrame{frame: f, x: x, y: y, scal: scale, ok: true}
	if f.Image == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	h.canvas.DrawImage(f.Image, &op)
}

// Size implements deskpet.Surface.
func (h *Host) Size() (int, int) { return h.cfg.Width, h.cfg.Height }

// Scale implements deskpet.Surface.
func (h *Host) Scale() float64 { return h.cfg.Scale }

// Position implements deskpet.Surface.
func (h *Host) Position() deskpet.Vec2 { return h.position }

// SetPosition implements deskpet.Surface by moving the window.
func (h *Host) SetPosition(p deskpet.Vec2) {
	h.position = p
	if h.live {
		ebiten.SetWindowPosition(int(math.Round(p.X)), int(math.Round(p.Y)))
	}
}

// WorkArea implements deskpet.WorkAreaProvider.
func (h *Host) WorkArea() deskpet.Rect {
	if h.cfg.WorkArea != (deskpet.Rect{}) {
		return h.cfg.WorkArea
	}
	if h.live {
		w, hh := ebiten.Monitor().Size()
		return deskpet.Rect{Width: float64(w), Height: float64(hh)}
	}
	return unboundedArea
}

// Subscribe implements deskpet.Surface. The subscription lives until ctx is
// canceled.
func (h *Host) Subscribe(ctx context.Context, t deskpet.EventType, fn func(deskpet.PointerEvent)) {
	if ctx.Err() != nil {
		return
	}
	h.subs[t] = append(h.subs[t], subscription{ctx: ctx, fn: fn})
}

// Subscriptions prunes canceled subscriptions and returns how many remain.
func (h *Host) Subscriptions() int {
	n := 0
	for t := range h.subs {
		n += len(h.prune(t))
	}
	return n
}

func (h *Host) prune(t deskpet.EventType) []subscription {
	list := slices.DeleteFunc(h.subs[t], func(s subscription) bool {
		return s.ctx.Err() != nil
	})
	h.subs[t] = list
	return list
}

// --- Bridge ---

// SetIgnoreMouseEvent implements deskpet.Bridge. Ebitengine keeps reporting
// the cursor position while passthrough is on, so forwarding needs no extra
// work.
func (h *Host) SetIgnoreMouseEvent(ignore bool, _ deskpet.ForwardOptions) {
	h.passthrough = ignore
	if h.live {
		ebiten.SetWindowMousePassthrough(ignore)
	}
}

// Passthrough reports the last pass-through state requested by the engine.
func (h *Host) Passthrough() bool { return h.passthrough }

// ListAssets implements deskpet.Bridge.
func (h *Host) ListAssets(ctx context.Context, folder string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h.cfg.Assets == nil {
		return nil, errors.New("ebitenhost: no asset filesystem configured")
	}
	entries, err := fs.ReadDir(h.cfg.Assets, folder)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// --- Scheduler ---

// RequestFrame implements deskpet.Scheduler. fn runs on the next Update.
func (h *Host) RequestFrame(fn func(now time.Duration)) deskpet.FrameID {
	h.nextFrame++
	h.frames = append(h.frames, frameRequest{id: h.nextFrame, fn: fn})
	return h.nextFrame
}

// CancelFrame implements deskpet.Scheduler.
func (h *Host) CancelFrame(id deskpet.FrameID) {
	h.frames = slices.DeleteFunc(h.frames, func(r frameRequest) bool { return r.id == id })
}

// --- Timers ---

// AfterFunc implements deskpet.Timers. fn runs from Update once d has
// elapsed, unless ctx is canceled first.
func (h *Host) AfterFunc(ctx context.Context, d time.Duration, fn func()) {
	if ctx.Err() != nil {
		return
	}
	h.timers = append(h.timers, timer{due: h.now + d, ctx: ctx, fn: fn})
}

// PendingTimers returns the number of timers that can still fire.
func (h *Host) PendingTimers() int {
	h.timers = slices.DeleteFunc(h.timers, func(t timer) bool { return t.ctx.Err() != nil })
	return len(h.timers)
}

// Post queues fn to run on the game goroutine during the next Update. It is
// safe to call from any goroutine.
func (h *Host) Post(fn func()) {
	h.postMu.Lock()
	h.posted = append(h.posted, fn)
	h.postMu.Unlock()
}

// --- ebiten.Game ---

// Update advances the clock, fires due timers and posted functions,
// processes input, then runs the requested frame callbacks.
func (h *Host) Update() error {
	h.now = h.cfg.Clock()

	if h.runner != nil {
		h.runner.step(h)
	}
	h.fireTimers()
	h.drainPosted()
	h.processInput()
	h.runFrames()
	return nil
}

// Draw copies the canvas to the screen.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.DrawImage(h.canvas, nil)
	h.flushScreenshots(screen)
	h.drawDebug(screen)
}

// Layout keeps the logical screen at surface size; Ebitengine scales it to
// the window.
func (h *Host) Layout(_, _ int) (int, int) {
	return h.cfg.Width, h.cfg.Height
}

func (h *Host) fireTimers() {
	if len(h.timers) == 0 {
		return
	}
	var due []timer
	h.timers = slices.DeleteFunc(h.timers, func(t timer) bool {
		if t.ctx.Err() != nil {
			return true
		}
		if t.due <= h.now {
			due = append(due, t)
			return true
		}
		return false
	})
	for _, t := range due {
		// An earlier timer's callback may have canceled this one.
		if t.ctx.Err() == nil {
			t.fn()
		}
	}
}

func (h *Host) drainPosted() {
	h.postMu.Lock()
	posted := h.posted
	h.posted = nil
	h.postMu.Unlock()
	for _, fn := range posted {
		fn()
	}
}

func (h *Host) runFrames() {
	if len(h.frames) == 0 {
		return
	}
	frames := h.frames
	h.frames = nil
	for _, r := range frames {
		r.fn(h.now)
	}
}
