package deskpet

import "fmt"

// Region names a body part of the character.
type Region uint8

const (
	RegionNone  Region = iota // outside every declared region
	RegionPinch               // cheek, tapped like the head
	RegionHead
	RegionBody
)

// regionPriority is the order ambiguous points are resolved in.
var regionPriority = [...]Region{RegionPinch, RegionHead, RegionBody}

func (r Region) String() string {
	switch r {
	case RegionPinch:
		return "pinch"
	case RegionHead:
		return "head"
	case RegionBody:
		return "body"
	}
	return "none"
}

// ParseRegion maps a region name as used in manifests to a Region.
func ParseRegion(name string) (Region, error) {
	for _, r := range regionPriority {
		if r.String() == name {
			return r, nil
		}
	}
	return RegionNone, fmt.Errorf("deskpet: unknown region %q", name)
}

// HitMap holds the interaction rectangles of a clip set, in surface-local
// pixels. Regions without a rectangle are never hit.
type HitMap map[Region]Rect

// Classify returns the first region containing (x, y), checking pinch, head
// and body in that order. Edges are inclusive.
func (m HitMap) Classify(x, y float64) Region {
	for _, r := range regionPriority {
		if rect, ok := m[r]; ok && rect.Contains(x, y) {
			return r
		}
	}
	return RegionNone
}

// Anatomy is the per-clip-set metadata the gesture controller relies on.
type Anatomy struct {
	Regions HitMap
	// RisePoint is where the character is held from while dragged, in
	// surface-local pixels.
	RisePoint Vec2
}

// DefaultAnatomy returns the regions and rise point of the stock artwork.
func DefaultAnatomy() Anatomy {
	return Anatomy{
		Regions: HitMap{
			RegionPinch: {X: 149, Y: 128, Width: 56, Height: 59},
			RegionHead:  {X: 159, Y: 16, Width: 189, Height: 178},
			RegionBody:  {X: 166, Y: 206, Width: 163, Height: 136},
		},
		RisePoint: Vec2{X: 290, Y: 128},
	}
}
