package deskpet

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"
)

// Asset maps one logical frame key to the location it is loaded from.
type Asset struct {
	Key      string
	Location string
}

// Mapping is an ordered list of assets. Its order is the clip's playback
// order.
type Mapping []Asset

// ImageSource fetches and decodes a single frame. Implementations must be
// safe to call from multiple goroutines.
type ImageSource interface {
	LoadFrame(ctx context.Context, location string) (Frame, error)
}

// Loader turns mappings into clips and registers them.
type Loader struct {
	source   ImageSource
	registry *Registry
	logger   *log.Logger
}

// NewLoader creates a Loader that decodes through src and registers into reg.
func NewLoader(src ImageSource, reg *Registry, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{source: src, registry: reg, logger: logger}
}

// Load decodes every asset of m concurrently and registers the resulting clip
// under name. It succeeds only if every frame decodes; otherwise it returns an
// *AssetDecodeError naming the failing key and registers nothing.
func (l *Loader) Load(ctx context.Context, name string, m Mapping) (*Clip, error) {
	if len(m) == 0 {
		return nil, &AssetDecodeError{Clip: name, Err: errors.New("empty mapping")}
	}

	frames := make([]Frame, len(m))
	g, gctx := errgroup.WithContext(ctx)
	for i, a := range m {
		g.Go(func() error {
			f, err := l.source.LoadFrame(gctx, a.Location)
			if err != nil {
				return &AssetDecodeError{Clip: name, Path: a.Key, Err: err}
			}
			frames[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	clip := &Clip{Name: name, Frames: frames}
	l.registry.Register(clip)
	l.logger.Printf("deskpet: clip %q loaded %d frames", name, len(frames))
	return clip, nil
}
