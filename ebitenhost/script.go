package ebitenhost

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/phanxgames/deskpet"
)

// scriptStep is one action of an input script. Coordinates are surface
// pixels; Duration is a Go duration string ("600ms") measured on the host
// clock.
type scriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Duration string  `json:"duration,omitempty"`

	wait time.Duration
}

// ScriptRunner replays pointer gestures and takes screenshots, so a pet can
// be exercised without a human at the mouse. Attach it with Host.SetScript.
//
// Actions:
//
//	press, move, hover, release, click  at x,y
//	drag                                fromX,fromY to toX,toY over frames
//	hold                                press at x,y and keep the button down
//	                                    for duration (default the long press)
//	wait                                frames updates, or duration
//	screenshot                          label
type ScriptRunner struct {
	steps  []scriptStep
	cursor int

	// A step may block the runner for a number of updates or until a host
	// time is reached.
	frames int
	until  time.Duration
	done   bool
}

// LoadScript parses a JSON input script of the form {"steps": [...]}.
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var s struct {
		Steps []scriptStep `json:"steps"`
	}
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("ebitenhost: input script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("ebitenhost: input script has no steps")
	}
	for i := range s.Steps {
		if err := s.Steps[i].validate(); err != nil {
			return nil, fmt.Errorf("ebitenhost: input script step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

func (st *scriptStep) validate() error {
	switch st.Action {
	case "press", "move", "hover", "release", "click", "drag", "screenshot":
		return nil
	case "hold", "wait":
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if st.Duration != "" {
		d, err := time.ParseDuration(st.Duration)
		if err != nil {
			return err
		}
		if d < 0 {
			return fmt.Errorf("negative duration %v", d)
		}
		st.wait = d
	}
	if st.Action == "hold" && st.Duration == "" {
		st.wait = deskpet.DefaultLongPress
	}
	return nil
}

// SetScript attaches r; its steps run from Update before timers and input.
func (h *Host) SetScript(r *ScriptRunner) {
	h.runner = r
}

// Done reports whether every step has run and its input has drained.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// pending reports whether the previous step is still in effect: queued
// input, a frame count or a hold on the host clock.
func (r *ScriptRunner) pending(h *Host) bool {
	return len(h.injectQueue) > 0 || r.frames > 0 || h.now < r.until
}

func (r *ScriptRunner) step(h *Host) {
	if r.done || len(h.injectQueue) > 0 || h.now < r.until {
		return
	}
	if r.frames > 0 {
		r.frames--
		return
	}
	if r.cursor == len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	switch st.Action {
	case "press":
		h.InjectPress(st.X, st.Y)
	case "move":
		h.InjectMove(st.X, st.Y)
	case "hover":
		h.InjectHover(st.X, st.Y)
	case "release":
		h.InjectRelease(st.X, st.Y)
	case "click":
		h.InjectClick(st.X, st.Y)
	case "drag":
		h.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "hold":
		h.InjectPress(st.X, st.Y)
		r.until = h.now + st.wait
	case "wait":
		if st.wait > 0 {
			r.until = h.now + st.wait
		} else if st.Frames > 0 {
			r.frames = st.Frames - 1
		}
	case "screenshot":
		h.Screenshot(st.Label)
	}

	if r.cursor == len(r.steps) && !r.pending(h) {
		r.done = true
	}
}
