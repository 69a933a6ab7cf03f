package main

import (
	"context"
	"io/fs"
	"log"
	"time"

	"github.com/phanxgames/deskpet"
	"github.com/phanxgames/deskpet/hotreload"
)

// reloader re-reads the manifest and reloads every clip after a burst of file
// changes. Clips are decoded on the reloader's goroutine; the anatomy and
// timings are handed to the host thread through post.
type reloader struct {
	fsys     fs.FS
	manifest string
	pet      *deskpet.Pet
	post     func(func())
	logger   *log.Logger
}

func (r *reloader) run(ctx context.Context, events <-chan string, errs <-chan error) {
	var (
		pending []string
		quiet   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if quiet != nil {
			quiet.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case name, ok := <-events:
			if !ok {
				return
			}
			pending = append(pending, name)
			if quiet == nil {
				quiet = time.NewTimer(hotreload.Debounce)
			} else {
				quiet.Reset(hotreload.Debounce)
			}
			fire = quiet.C
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			r.logger.Printf("hotreload: %v", err)
		case <-fire:
			fire = nil
			r.reload(ctx, pending)
			pending = pending[:0]
		}
	}
}

func (r *reloader) reload(ctx context.Context, changed []string) {
	m, err := readManifest(r.fsys, r.manifest)
	if err != nil {
		r.logger.Printf("hotreload: %v", err)
		return
	}
	if err := r.pet.LoadClips(ctx, m, r.fsys); err != nil {
		r.logger.Printf("hotreload: %v", err)
	}
	r.post(func() { r.pet.ApplyManifest(m) })
	r.logger.Printf("hotreload: reloaded %d clips after %d changes", len(m.Clips), len(changed))
}
