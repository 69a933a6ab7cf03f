package deskpet

import (
	"log"
	"time"
)

const (
	// DefaultFrameDuration is how long each frame stays on screen.
	DefaultFrameDuration = 120 * time.Millisecond

	// IdleClip is the looping clip played whenever nothing else is.
	IdleClip = "idle"
)

// PlayOptions controls how SetAnimation activates a clip.
type PlayOptions struct {
	// ApplyNow preempts the current clip instead of queueing.
	ApplyNow bool
	// Loop makes the clip wrap forever instead of finishing.
	Loop bool
}

// PendingClip is a queued activation, resolved against the registry when it
// is dequeued.
type PendingClip struct {
	Name string
	Loop bool
}

// Player drives clip playback one tick at a time. It is not safe for
// concurrent use; the host calls it from its event thread.
type Player struct {
	registry      *Registry
	frameDuration time.Duration
	logger        *log.Logger

	active      *Clip
	loop        bool
	frameIndex  int
	accumulated time.Duration
	last        time.Duration
	hasBaseline bool
	queue       []PendingClip

	// idleMissing is set once the missing idle clip has been logged.
	idleMissing bool
}

// NewPlayer creates a Player reading clips from reg. A non-positive
// frameDuration selects DefaultFrameDuration.
func NewPlayer(reg *Registry, frameDuration time.Duration, logger *log.Logger) *Player {
	if frameDuration <= 0 {
		frameDuration = DefaultFrameDuration
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Player{registry: reg, frameDuration: frameDuration, logger: logger}
}

// FrameDuration returns the per-frame display time.
func (p *Player) FrameDuration() time.Duration { return p.frameDuration }

// SetFrameDuration changes the per-frame display time. Non-positive values
// are ignored.
func (p *Player) SetFrameDuration(d time.Duration) {
	if d > 0 {
		p.frameDuration = d
	}
}

// SetAnimation activates or queues the clip called name. An unregistered
// name returns *UnknownAnimationError and leaves playback untouched.
func (p *Player) SetAnimation(name string, opts PlayOptions) error {
	clip, ok := p.registry.Lookup(name)
	if !ok {
		return &UnknownAnimationError{Name: name}
	}
	if opts.ApplyNow {
		p.activate(clip, opts.Loop)
		p.hasBaseline = false
		return nil
	}
	p.queue = append(p.queue, PendingClip{Name: name, Loop: opts.Loop})
	return nil
}

// Reset makes the next tick re-establish the time baseline. Called when
// playback (re)starts so the time spent stopped is not replayed.
func (p *Player) Reset() {
	p.hasBaseline = false
}

// Tick advances playback to now and draws the current frame onto c.
func (p *Player) Tick(now time.Duration, c Canvas) {
	if !p.hasBaseline {
		p.last = now
		p.hasBaseline = true
	}
	if now > p.last {
		p.accumulated += now - p.last
	}
	p.last = now

	if p.active == nil {
		p.fallbackToIdle()
		p.draw(c)
		return
	}

	if !p.loop && p.frameIndex >= len(p.active.Frames)-1 {
		if !p.next() {
			// Nothing to switch to: hold the last frame.
			p.accumulated = 0
			p.draw(c)
			return
		}
	}

	if n := p.activeLen(); n > 0 {
		for p.accumulated >= p.frameDuration {
			p.frameIndex = (p.frameIndex + 1) % n
			p.accumulated -= p.frameDuration
		}
	}

	p.draw(c)
}

// next takes the following clip from the queue, or idle when it is empty.
// It reports whether a clip was activated.
func (p *Player) next() bool {
	if len(p.queue) > 0 {
		pc := p.queue[0]
		p.queue = p.queue[1:]
		if clip, ok := p.registry.Lookup(pc.Name); ok {
			p.activate(clip, pc.Loop)
			return true
		}
		p.logger.Printf("deskpet: %v", &UnknownAnimationError{Name: pc.Name})
	}
	return p.fallbackToIdle()
}

// fallbackToIdle activates idle looping. A missing idle clip is logged once
// until it is registered again.
func (p *Player) fallbackToIdle() bool {
	idle, ok := p.registry.Lookup(IdleClip)
	if !ok {
		if !p.idleMissing {
			p.logger.Printf("deskpet: %v", &UnknownAnimationError{Name: IdleClip})
			p.idleMissing = true
		}
		return false
	}
	p.idleMissing = false
	p.activate(idle, true)
	return true
}

func (p *Player) activate(clip *Clip, loop bool) {
	p.active = clip
	p.loop = loop
	p.frameIndex = 0
	p.accumulated = 0
}

func (p *Player) activeLen() int {
	if p.active == nil {
		return 0
	}
	return len(p.active.Frames)
}

// draw skips the frame when there is nothing valid to show, so the surface
// keeps its last pose.
func (p *Player) draw(c Canvas) {
	f, ok := p.CurrentFrame()
	if !ok || c == nil {
		return
	}
	c.Clear()
	c.DrawScaledCentered(f)
}

// CurrentFrame returns the frame that the last tick drew.
func (p *Player) CurrentFrame() (Frame, bool) {
	if p.frameIndex < 0 || p.frameIndex >= p.activeLen() {
		return Frame{}, false
	}
	return p.active.Frames[p.frameIndex], true
}

// Current returns the active clip name, its loop flag and frame index. name
// is empty when nothing has been activated yet.
func (p *Player) Current() (name string, loop bool, frameIndex int) {
	if p.active == nil {
		return "", false, 0
	}
	return p.active.Name, p.loop, p.frameIndex
}

// Pending returns a copy of the queued activations in FIFO order.
func (p *Player) Pending() []PendingClip {
	out := make([]PendingClip, len(p.queue))
	copy(out, p.queue)
	return out
}

// FitCentered returns the uniform scale that fits a src-sized image inside a
// dst-sized area, and the offset that centers it on both axes.
func FitCentered(srcW, srcH, dstW, dstH float64) (scale, x, y float64) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0, 0
	}
	scale = min(dstW/srcW, dstH/srcH)
	x = (dstW - srcW*scale) / 2
	y = (dstH - srcH*scale) / 2
	return scale, x, y
}
