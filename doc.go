// Package deskpet is the animation and gesture engine of a desktop pet: an
// animated sprite character living on a transparent, always-on-top surface.
//
// The engine plays named clips frame by frame, interprets pointer input on
// the character (tap regions, long-press-to-drag, release-to-drop) and asks
// the host to let pointer events fall through the surface everywhere except
// over the artwork.
//
// # Quick start
//
// A [Pet] is built on a [Host], a set of small interfaces the window layer
// implements. The ebitenhost package provides one for [Ebitengine]:
//
//	host := ebitenhost.New(ebitenhost.Config{Width: 500, Height: 500, Scale: 0.5})
//	pet := deskpet.New(host.Collaborators(), deskpet.FSSource{FS: assets}, deskpet.Config{})
//	if err := pet.LoadManifest(ctx, manifest, assets); err != nil {
//		log.Print(err)
//	}
//	pet.Start()
//	ebitenhost.Run(host, ebitenhost.RunConfig{Title: "deskpet"})
//
// # Clips and playback
//
// A [Clip] is an ordered list of frames. [Loader.Load] decodes every frame
// of a [Mapping] concurrently and registers the clip only if all of them
// decode. [Player] advances the current clip on each host frame using a
// time accumulator, so dropped host frames never slow the animation down.
// One-shot clips queued with [Player.SetAnimation] play in FIFO order; when
// nothing is left the looping "idle" clip takes over.
//
// # Gestures
//
// Pressing the body and holding for [DefaultLongPress] lifts the character
// ("rise") and lets it be dragged; releasing drops it ("down"). A quick tap
// on the head or body plays a touch clip. Hit regions and the rise point are
// part of the clip set's [Anatomy], usually declared in a YAML [Manifest].
//
// [Ebitengine]: https://ebitengine.org
package deskpet
