// Deskpet runs an animated character in a transparent, always-on-top window.
// Tap its head or body to play a reaction; hold the body to pick it up and
// drag it around the desktop.
//
//	deskpet -assets ./assets -manifest vup.yaml -watch
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/phanxgames/deskpet"
	"github.com/phanxgames/deskpet/ebitenhost"
	"github.com/phanxgames/deskpet/hotreload"
)

const (
	windowTitle   = "deskpet"
	defaultSize   = 500
	defaultScale  = 0.5
	defaultWindow = 100
)

func main() {
	assetsDir := flag.String("assets", "assets", "Directory holding the manifest and frame images")
	manifestName := flag.String("manifest", "pet.yaml", "Manifest path, relative to -assets")
	watch := flag.Bool("watch", false, "Reload clips when the manifest or frame images change")
	debug := flag.Bool("debug", false, "Log lifecycle details and draw an FPS overlay")
	scriptPath := flag.String("script", "", "Optional JSON input script to replay")
	shots := flag.String("shots", "screenshots", "Directory for screenshots taken by -script")
	x := flag.Float64("x", defaultWindow, "Initial window X in screen pixels")
	y := flag.Float64("y", defaultWindow, "Initial window Y in screen pixels")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	fsys := os.DirFS(*assetsDir)

	m, err := readManifest(fsys, *manifestName)
	if err != nil {
		logger.Fatal(err)
	}

	host := ebitenhost.New(hostConfig(m, ebitenhost.Config{
		Position:      deskpet.Vec2{X: *x, Y: *y},
		Assets:        fsys,
		ScreenshotDir: *shots,
		Logger:        logger,
		Debug:         *debug,
	}))

	cfg := m.Config()
	cfg.Logger = logger
	cfg.Debug = *debug
	pet := deskpet.New(host.Collaborators(), deskpet.FSSource{FS: fsys}, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := start(ctx, pet, m, fsys, logger); err != nil {
		logger.Fatal(err)
	}

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			logger.Fatal(err)
		}
		runner, err := ebitenhost.LoadScript(data)
		if err != nil {
			logger.Fatal(err)
		}
		host.SetScript(runner)
	}

	if *watch {
		w, err := hotreload.NewWatcher()
		if err != nil {
			logger.Fatal(err)
		}
		defer w.Close()
		if err := w.AddTree(*assetsDir); err != nil {
			logger.Fatal(err)
		}
		r := &reloader{
			fsys:     fsys,
			manifest: *manifestName,
			pet:      pet,
			post:     host.Post,
			logger:   logger,
		}
		go r.run(ctx, w.Events, w.Errors)
	}

	if err := ebitenhost.Run(host, ebitenhost.RunConfig{Title: windowTitle}); err != nil {
		logger.Fatal(err)
	}
}

func readManifest(fsys fs.FS, name string) (*deskpet.Manifest, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return deskpet.ParseManifest(data)
}

// hostConfig fills the surface size and scale from the manifest.
func hostConfig(m *deskpet.Manifest, cfg ebitenhost.Config) ebitenhost.Config {
	cfg.Width, cfg.Height = m.Size.Width, m.Size.Height
	if cfg.Width == 0 {
		cfg.Width = defaultSize
	}
	if cfg.Height == 0 {
		cfg.Height = defaultSize
	}
	cfg.Scale = m.Scale
	if cfg.Scale == 0 {
		cfg.Scale = defaultScale
	}
	return cfg
}

// start preloads every clip and starts the pet on idle. Clips that fail to
// load are logged; only a missing idle clip is an error.
func start(ctx context.Context, pet *deskpet.Pet, m *deskpet.Manifest, fsys fs.FS, logger *log.Logger) error {
	loadErr := pet.LoadManifest(ctx, m, fsys)
	if err := pet.SetAnimation(deskpet.IdleClip, deskpet.PlayOptions{ApplyNow: true, Loop: true}); err != nil {
		return errors.Join(loadErr, err)
	}
	if loadErr != nil {
		logger.Print(loadErr)
	}
	pet.Start()
	return nil
}
