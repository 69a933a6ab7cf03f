package deskpet

import (
	"context"
	"log"
	"math/rand/v2"
	"time"
)

// Config tunes a Pet. The zero value selects the defaults.
type Config struct {
	// FrameDuration is the display time of one frame (DefaultFrameDuration).
	FrameDuration time.Duration
	// LongPress is the hold time that turns a press on the body into a drag
	// (DefaultLongPress).
	LongPress time.Duration
	// MoveTolerance is the pointer travel, in screen pixels, that abandons a
	// long press. Zero selects DefaultMoveTolerance; negative disables it.
	MoveTolerance float64
	// Anatomy holds the hit regions and rise point (DefaultAnatomy).
	Anatomy *Anatomy
	// Logger receives load and playback diagnostics (log.Default()).
	Logger *log.Logger
	// Rand drives the choice between the two body-touch clips.
	Rand *rand.Rand
	// Debug enables per-lifecycle and per-load chatter on Logger.
	Debug bool
}

func (c Config) withDefaults() Config {
	if c.FrameDuration <= 0 {
		c.FrameDuration = DefaultFrameDuration
	}
	if c.LongPress <= 0 {
		c.LongPress = DefaultLongPress
	}
	if c.MoveTolerance == 0 {
		c.MoveTolerance = DefaultMoveTolerance
	}
	if c.Anatomy == nil {
		a := DefaultAnatomy()
		c.Anatomy = &a
	}
	if c.Logger == nil {
		c.Logger = log.Default()
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return c
}

// Pet ties the registry, loader, player and gesture controller to a host and
// owns the render loop and input subscriptions.
type Pet struct {
	host     Host
	cfg      Config
	logger   *log.Logger
	registry *Registry
	loader   *Loader
	player   *Player
	gestures *Gestures

	running bool
	cancel  context.CancelFunc
	frame   FrameID
	lastNow time.Duration
	hasNow  bool
}

// New creates a stopped Pet on host, decoding clips through src.
func New(host Host, src ImageSource, cfg Config) *Pet {
	cfg = cfg.withDefaults()
	reg := NewRegistry()
	player := NewPlayer(reg, cfg.FrameDuration, cfg.Logger)
	r := cfg.Rand
	return &Pet{
		host:     host,
		cfg:      cfg,
		logger:   cfg.Logger,
		registry: reg,
		loader:   NewLoader(src, reg, cfg.Logger),
		player:   player,
		gestures: &Gestures{
			player:    player,
			surface:   host.Surface,
			bridge:    host.Bridge,
			timers:    host.Timers,
			anatomy:   *cfg.Anatomy,
			longPress: cfg.LongPress,
			tolerance: moveTolerance(cfg.MoveTolerance),
			coin:      func() bool { return r.IntN(2) == 0 },
			logger:    cfg.Logger,
		},
	}
}

// Registry returns the clip registry.
func (p *Pet) Registry() *Registry { return p.registry }

// Player returns the playback engine.
func (p *Pet) Player() *Player { return p.player }

// Gestures returns the gesture controller.
func (p *Pet) Gestures() *Gestures { return p.gestures }

// Running reports whether the render loop and subscriptions are active.
func (p *Pet) Running() bool { return p.running }

// Load decodes m and registers it as clip name. See Loader.Load.
func (p *Pet) Load(ctx context.Context, name string, m Mapping) (*Clip, error) {
	return p.loader.Load(ctx, name, m)
}

// SetAnimation activates or queues a registered clip. See Player.SetAnimation.
func (p *Pet) SetAnimation(name string, opts PlayOptions) error {
	return p.player.SetAnimation(name, opts)
}

// SetAnatomy replaces the hit regions and rise point.
func (p *Pet) SetAnatomy(a Anatomy) {
	p.gestures.anatomy = a
}

// SetLongPress changes the hold time that starts a drag. Non-positive values
// are ignored.
func (p *Pet) SetLongPress(d time.Duration) {
	if d > 0 {
		p.gestures.longPress = d
	}
}

// SetMoveTolerance changes how far the pointer may travel during a long
// press. Zero selects DefaultMoveTolerance; negative disables the check.
func (p *Pet) SetMoveTolerance(px float64) {
	p.gestures.tolerance = moveTolerance(px)
}

// moveTolerance maps a configured tolerance to the gesture controller's,
// where 0 means unchecked.
func moveTolerance(px float64) float64 {
	switch {
	case px == 0:
		return DefaultMoveTolerance
	case px < 0:
		return 0
	}
	return px
}

// SetEventSink sets the optional receiver of gesture events.
func (p *Pet) SetEventSink(sink EventSink) {
	p.gestures.sink = sink
}

// Start subscribes to pointer events and starts the render loop. Calling
// Start on a running Pet does nothing.
func (p *Pet) Start() {
	if p.running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.running = true

	p.gestures.ctx = ctx
	for _, t := range [...]EventType{
		EventPointerEnter,
		EventPointerLeave,
		EventPointerDown,
		EventPointerMove,
		EventPointerUp,
	} {
		p.host.Surface.Subscribe(ctx, t, p.gestures.Handle)
	}

	p.player.Reset()
	p.hasNow = false
	p.frame = p.host.Scheduler.RequestFrame(p.tick)
	p.debugf("started")
}

// Stop cancels the pending frame, every subscription and any long press in
// progress. Calling Stop on a stopped Pet does nothing.
func (p *Pet) Stop() {
	if !p.running {
		return
	}
	p.running = false
	p.host.Scheduler.CancelFrame(p.frame)
	p.cancel()
	p.cancel = nil
	p.gestures.reset()
	p.gestures.ctx = nil
	p.debugf("stopped")
}

func (p *Pet) tick(now time.Duration) {
	if !p.running {
		return
	}
	var dt time.Duration
	if p.hasNow && now > p.lastNow {
		dt = now - p.lastNow
	}
	p.lastNow, p.hasNow = now, true

	p.gestures.advance(dt)
	p.player.Tick(now, p.host.Surface)

	// A callback during this tick may have stopped the pet.
	if p.running {
		p.frame = p.host.Scheduler.RequestFrame(p.tick)
	}
}

func (p *Pet) debugf(format string, args ...any) {
	if p.cfg.Debug {
		p.logger.Printf("deskpet: "+format, args...)
	}
}
