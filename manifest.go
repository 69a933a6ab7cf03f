package deskpet

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest declares a clip set: its clips, timings, surface size and the
// anatomy the gesture controller uses.
type Manifest struct {
	FrameDuration time.Duration       `yaml:"frame_duration"`
	LongPress     time.Duration       `yaml:"long_press"`
	MoveTolerance float64             `yaml:"move_tolerance"`
	Size          SizeSpec            `yaml:"size"`
	Scale         float64             `yaml:"scale"`
	RisePoint     *PointSpec          `yaml:"rise_point"`
	Regions       map[string]RectSpec `yaml:"regions"`
	Clips         []ClipSpec          `yaml:"clips"`
}

// SizeSpec is a width/height pair in surface pixels.
type SizeSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PointSpec is a point in surface pixels.
type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// RectSpec is a rectangle in surface pixels.
type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ClipSpec declares one clip. Frames are glob patterns relative to the asset
// root; each pattern's matches are sorted and appended in pattern order.
type ClipSpec struct {
	Name   string   `yaml:"name"`
	Frames []string `yaml:"frames"`
}

// ParseManifest decodes and validates a YAML manifest.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("deskpet: parse manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.Size.Width < 0 || m.Size.Height < 0 {
		return fmt.Errorf("deskpet: manifest: negative size %dx%d", m.Size.Width, m.Size.Height)
	}
	if m.Scale < 0 {
		return fmt.Errorf("deskpet: manifest: negative scale %v", m.Scale)
	}
	for name, r := range m.Regions {
		if _, err := ParseRegion(name); err != nil {
			return fmt.Errorf("deskpet: manifest: %w", err)
		}
		if r.Width < 0 || r.Height < 0 {
			return fmt.Errorf("deskpet: manifest: region %q has negative size", name)
		}
	}
	seen := make(map[string]bool, len(m.Clips))
	for i, c := range m.Clips {
		if c.Name == "" {
			return fmt.Errorf("deskpet: manifest: clip %d has no name", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("deskpet: manifest: duplicate clip %q", c.Name)
		}
		seen[c.Name] = true
		if len(c.Frames) == 0 {
			return fmt.Errorf("deskpet: manifest: clip %q has no frames", c.Name)
		}
	}
	return nil
}

// Anatomy returns the declared regions and rise point. Without any declared
// region the stock artwork's regions are used, and without a rise point the
// stock rise point.
func (m *Manifest) Anatomy() Anatomy {
	def := DefaultAnatomy()
	if m.RisePoint != nil {
		def.RisePoint = Vec2{X: m.RisePoint.X, Y: m.RisePoint.Y}
	}
	if len(m.Regions) == 0 {
		return def
	}
	a := Anatomy{
		Regions:   make(HitMap, len(m.Regions)),
		RisePoint: def.RisePoint,
	}
	for name, r := range m.Regions {
		region, err := ParseRegion(name)
		if err != nil {
			continue
		}
		a.Regions[region] = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
	}
	return a
}

// Config returns a Config carrying the manifest's timings and anatomy.
func (m *Manifest) Config() Config {
	a := m.Anatomy()
	return Config{
		FrameDuration: m.FrameDuration,
		LongPress:     m.LongPress,
		MoveTolerance: m.MoveTolerance,
		Anatomy:       &a,
	}
}

// Mapping expands clip c's frame patterns against fsys.
func (m *Manifest) Mapping(fsys fs.FS, c ClipSpec) (Mapping, error) {
	var out Mapping
	seen := make(map[string]bool)
	for _, pattern := range c.Frames {
		matches, err := fs.Glob(fsys, path.Clean(pattern))
		if err != nil {
			return nil, fmt.Errorf("deskpet: clip %q: pattern %q: %w", c.Name, pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("deskpet: clip %q: pattern %q matched no files", c.Name, pattern)
		}
		sort.Strings(matches)
		for _, p := range matches {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, Asset{Key: p, Location: p})
		}
	}
	return out, nil
}

// LoadManifest loads every clip of m from fsys and applies the manifest's
// anatomy and timings. Clips that load are registered even when others fail;
// the returned error joins every failure.
func (p *Pet) LoadManifest(ctx context.Context, m *Manifest, fsys fs.FS) error {
	err := p.LoadClips(ctx, m, fsys)
	p.ApplyManifest(m)
	return err
}

// LoadClips loads and registers every clip of m. Unlike the rest of Pet it
// only touches the registry, so it may run off the host thread.
func (p *Pet) LoadClips(ctx context.Context, m *Manifest, fsys fs.FS) error {
	var errs []error
	for _, c := range m.Clips {
		mapping, err := m.Mapping(fsys, c)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := p.Load(ctx, c.Name, mapping); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ApplyManifest applies the anatomy and timings of m. Omitted (zero) values
// select the package defaults, as they do in Config.
func (p *Pet) ApplyManifest(m *Manifest) {
	cfg := m.Config().withDefaults()
	p.SetAnatomy(*cfg.Anatomy)
	p.player.SetFrameDuration(cfg.FrameDuration)
	p.SetLongPress(cfg.LongPress)
	p.SetMoveTolerance(cfg.MoveTolerance)
}
